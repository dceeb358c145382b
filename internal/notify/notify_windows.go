//go:build windows

package notify

import (
	"context"
	"fmt"
	"strings"

	"clipregex/internal/command"
)

const balloonScript = `Add-Type -AssemblyName System.Windows.Forms, System.Drawing
$n = New-Object System.Windows.Forms.NotifyIcon
$n.Icon = [System.Drawing.SystemIcons]::Information
$n.BalloonTipTitle = '%s'
$n.BalloonTipText = '%s'
$n.Visible = $true
$n.ShowBalloonTip(%d)
Start-Sleep -Milliseconds %d
$n.Dispose()`

func psQuote(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func systemSend(ctx context.Context, title, message string) error {
	script := fmt.Sprintf(balloonScript, psQuote(title), psQuote(message), expireMillis, expireMillis)
	_, err := command.Run(ctx, "powershell", "-NoProfile", "-NonInteractive", "-WindowStyle", "Hidden", "-Command", script)

	return err
}
