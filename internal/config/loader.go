package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	tomlparser "github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"

	"clipregex/internal/keycombo"
)

var (
	// ErrConfig marks every failure to produce a Config from the settings document.
	ErrConfig = errors.New("configuration error")

	// ErrNotFound is returned when the settings document does not exist.
	ErrNotFound = errors.New("configuration file not found")
)

const (
	keyHotkey           = "hotkey"
	keyIconPath         = "icon_path"
	keyUseNotifications = "use_notifications"
	keyReplacements     = "replacements"
	keyRegex            = "regex"
	keyReplaceWith      = "replace_with"
)

// Loader reads the settings document at a fixed path. Every call re-reads
// the file; nothing is cached between calls.
type Loader struct {
	path   string
	logger *slog.Logger
}

func NewLoader(path string, logger *slog.Logger) *Loader {
	return &Loader{
		path:   path,
		logger: logger.With("component", "config"),
	}
}

func (l *Loader) Path() string {
	return l.path
}

// Load returns the current configuration. Failures are logged and degrade to
// Default(), which disables substitutions until the document is fixed.
func (l *Loader) Load() *Config {
	cfg, err := l.Read()
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			l.logger.Warn("Config file not found, substitutions disabled", "path", l.path)
		} else {
			l.logger.Error("Failed to load config, substitutions disabled",
				"path", l.path,
				"error", err.Error(),
				"trace", fmt.Sprintf("%+v", err),
			)
		}

		return Default()
	}

	l.logger.Info("Config loaded", "path", l.path, "hotkey", cfg.Hotkey, "rules", len(cfg.Replacements))

	return cfg
}

// Read is the strict form of Load. Errors are marked with ErrConfig.
// Precedence, lowest first: defaults, settings document, CLIPREGEX_* env.
func (l *Loader) Read() (*Config, error) {
	cfg, err := l.read()
	if err != nil {
		return nil, errors.Mark(err, ErrConfig)
	}

	return cfg, nil
}

func (l *Loader) read() (*Config, error) {
	if _, err := os.Stat(l.path); os.IsNotExist(err) {
		return nil, errors.Wrapf(ErrNotFound, "%s", l.path)
	}

	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultsToMap(), "."), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load defaults")
	}

	raw, err := file.Provider(l.path).ReadBytes()
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", l.path)
	}

	doc, err := decode(l.path, raw)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", l.path)
	}

	if err := k.Load(confmap.Provider(doc, ""), nil); err != nil {
		return nil, errors.Wrapf(err, "loading %s", l.path)
	}

	envOpt := env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envTransform,
	}

	if err := k.Load(env.Provider(".", envOpt), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load env vars")
	}

	return fromKoanf(k)
}

// decode parses raw by file extension (.toml, .yaml/.yml, JSON otherwise).
// A bare top-level array is the legacy format: it becomes the replacements
// list with every other field defaulted.
func decode(path string, raw []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errors.New("document is empty")
	}

	var doc any

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		m, err := tomlparser.Parser().Unmarshal(raw)
		if err != nil {
			return nil, errors.Wrap(err, "invalid TOML")
		}

		return m, nil
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, errors.Wrap(err, "invalid YAML")
		}
	default:
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, errors.Wrap(err, "invalid JSON")
		}
	}

	switch v := doc.(type) {
	case map[string]any:
		return v, nil
	case []any:
		return map[string]any{keyReplacements: v}, nil
	default:
		return nil, errors.Newf("top-level value must be an object or an array, got %T", doc)
	}
}

func defaultsToMap() map[string]any {
	return map[string]any{
		keyHotkey:           DefaultHotkey,
		keyUseNotifications: false,
		keyReplacements:     []any{},
	}
}

// envTransform maps CLIPREGEX_USE_NOTIFICATIONS to use_notifications and
// drops variables that are not settings.
func envTransform(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))

	switch key {
	case keyHotkey, keyIconPath, keyUseNotifications:
		return key, value
	default:
		return "", nil
	}
}

func fromKoanf(k *koanf.Koanf) (*Config, error) {
	cfg := Default()

	if v, ok := k.Get(keyHotkey).(string); ok && strings.TrimSpace(v) != "" {
		cfg.Hotkey = strings.TrimSpace(v)
	} else if k.Get(keyHotkey) != nil && !ok {
		return nil, errors.Newf("%s must be a string", keyHotkey)
	}

	if _, err := keycombo.Parse(cfg.Hotkey); err != nil {
		return nil, errors.Wrapf(err, "invalid %s", keyHotkey)
	}

	if k.Exists(keyIconPath) {
		v, ok := k.Get(keyIconPath).(string)
		if !ok {
			return nil, errors.Newf("%s must be a string", keyIconPath)
		}

		cfg.IconPath = v
	}

	switch v := k.Get(keyUseNotifications).(type) {
	case bool:
		cfg.UseNotifications = v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return nil, errors.Newf("%s must be a boolean, got %q", keyUseNotifications, v)
		}

		cfg.UseNotifications = b
	case nil:
	default:
		return nil, errors.Newf("%s must be a boolean, got %T", keyUseNotifications, v)
	}

	rules, err := extractRules(k)
	if err != nil {
		return nil, err
	}

	cfg.Replacements = rules

	return cfg, nil
}

// extractRules walks replacements element by element so that a rule missing
// regex or replace_with is reported instead of silently zero-valued.
func extractRules(k *koanf.Koanf) ([]Rule, error) {
	rawList := k.Get(keyReplacements)
	if rawList == nil {
		return []Rule{}, nil
	}

	items, ok := rawList.([]any)
	if !ok {
		return nil, errors.Newf("%s must be a list, got %T", keyReplacements, rawList)
	}

	for i, item := range items {
		if _, ok := item.(map[string]any); !ok {
			return nil, errors.Newf("%s[%d] must be an object, got %T", keyReplacements, i, item)
		}
	}

	rules := make([]Rule, 0, len(items))

	for i, ruleK := range k.Slices(keyReplacements) {
		regex, err := stringField(ruleK, keyRegex, i)
		if err != nil {
			return nil, err
		}

		replaceWith, err := stringField(ruleK, keyReplaceWith, i)
		if err != nil {
			return nil, err
		}

		rules = append(rules, Rule{Regex: regex, ReplaceWith: replaceWith})
	}

	return rules, nil
}

func stringField(ruleK *koanf.Koanf, key string, index int) (string, error) {
	if !ruleK.Exists(key) {
		return "", errors.Newf("%s[%d] is missing %q", keyReplacements, index, key)
	}

	v, ok := ruleK.Get(key).(string)
	if !ok {
		return "", errors.Newf("%s[%d].%s must be a string, got %T", keyReplacements, index, key, ruleK.Get(key))
	}

	return v, nil
}
