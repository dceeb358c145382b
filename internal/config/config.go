package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

const (
	DefaultHotkey = "ctrl+alt+v"

	// EnvPrefix prefixes environment overrides such as CLIPREGEX_HOTKEY.
	EnvPrefix = "CLIPREGEX_"

	// EnvConfigPath names the settings document when --config is not given.
	EnvConfigPath = EnvPrefix + "CONFIG"

	appDir   = "clipregex"
	fileName = "config.json"
)

// Rule is one substitution directive. Rules apply in listed order.
type Rule struct {
	Regex       string `json:"regex" jsonschema:"description=Regular expression matched against the clipboard text" toml:"regex" yaml:"regex"`
	ReplaceWith string `json:"replace_with" jsonschema:"description=Replacement template; may reference capture groups" toml:"replace_with" yaml:"replace_with"`
}

// Config is the validated settings document. A *Config returned by the
// Loader is never mutated afterwards.
type Config struct {
	Hotkey           string `json:"hotkey,omitempty" jsonschema:"default=ctrl+alt+v,description=Global key combination that triggers the replacement" toml:"hotkey" yaml:"hotkey"`
	IconPath         string `json:"icon_path,omitempty" jsonschema:"description=Path to a tray icon image" toml:"icon_path" yaml:"icon_path"`
	UseNotifications bool   `json:"use_notifications,omitempty" jsonschema:"default=false,description=Show desktop notifications after each replacement" toml:"use_notifications" yaml:"use_notifications"`
	Replacements     []Rule `json:"replacements,omitempty" jsonschema:"description=Ordered substitution rules" toml:"replacements" yaml:"replacements"`
}

// Default returns the configuration used when the settings document is
// absent or broken: default hotkey, no notifications, no rules.
func Default() *Config {
	return &Config{
		Hotkey:       DefaultHotkey,
		Replacements: []Rule{},
	}
}

// DefaultPath is <user config dir>/clipregex/config.json.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		homeDir, _ := os.UserHomeDir()
		dir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(dir, appDir, fileName)
}

// ResolvePath picks the settings document: the explicit path if set, then
// $CLIPREGEX_CONFIG, then DefaultPath.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}

	if env := os.Getenv(EnvConfigPath); env != "" {
		return env
	}

	return DefaultPath()
}

// Save writes cfg as indented JSON, creating the parent directory.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "creating config directory for %s", path)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}

	return nil
}
