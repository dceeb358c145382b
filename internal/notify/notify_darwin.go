//go:build darwin

package notify

import (
	"context"
	"fmt"

	"clipregex/internal/command"
)

func systemSend(ctx context.Context, title, message string) error {
	script := fmt.Sprintf(`display notification %q with title %q`, message, title)
	_, err := command.Run(ctx, "osascript", "-e", script)

	return err
}
