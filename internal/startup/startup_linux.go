//go:build linux

package startup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

const desktopEntry = `[Desktop Entry]
Type=Application
Name=clipregex
Comment=Apply regex replacements to the clipboard with a hotkey
Exec=%s
Terminal=false
X-GNOME-Autostart-enabled=true
`

// entryPath follows the XDG autostart layout.
func entryPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "locating home directory")
		}

		dir = filepath.Join(home, ".config")
	}

	return filepath.Join(dir, "autostart", appName+".desktop"), nil
}

func execQuote(s string) string {
	if !strings.ContainsAny(s, " \t\"`$\\") {
		return s
	}

	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", `$`, `\$`)

	return `"` + r.Replace(s) + `"`
}

func install(path, exe string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "creating autostart directory")
	}

	content := fmt.Sprintf(desktopEntry, execQuote(exe))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}

	return nil
}
