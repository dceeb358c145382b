//go:build windows

package startup

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"clipregex/internal/command"
)

func entryPath() (string, error) {
	appData := os.Getenv("APPDATA")
	if appData == "" {
		return "", errors.New("APPDATA is not set")
	}

	return filepath.Join(appData, "Microsoft", "Windows", "Start Menu", "Programs", "Startup", appName+".lnk"), nil
}

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func install(path, exe string) error {
	script := `$WshShell = New-Object -ComObject WScript.Shell; $Shortcut = $WshShell.CreateShortcut(` + psQuote(path) +
		`); $Shortcut.TargetPath = ` + psQuote(exe) + `; $Shortcut.Save()`

	_, err := command.Run(context.Background(), "powershell", "-NoProfile", "-ExecutionPolicy", "Bypass", "-Command", script)

	return errors.Wrap(err, "creating startup shortcut")
}
