// Package keycombo parses key-combination descriptors such as "ctrl+alt+v".
package keycombo

import (
	"strings"

	"github.com/cockroachdb/errors"
)

type Modifier uint8

const (
	ModCtrl Modifier = 1 << iota
	ModAlt
	ModShift
	ModSuper
)

var modifierNames = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"opt":     ModAlt,
	"shift":   ModShift,
	"super":   ModSuper,
	"win":     ModSuper,
	"windows": ModSuper,
	"cmd":     ModSuper,
	"command": ModSuper,
	"meta":    ModSuper,
}

var keyAliases = map[string]string{
	"return":   "enter",
	"esc":      "escape",
	"del":      "delete",
	"ins":      "insert",
	"pgup":     "pageup",
	"pgdn":     "pagedown",
	"pgdown":   "pagedown",
	"prtsc":    "printscreen",
	"print":    "printscreen",
	"spacebar": "space",
}

// Keys lists every canonical key name Parse accepts besides a-z and 0-9.
var Keys = []string{
	"space", "enter", "tab", "escape", "insert", "delete",
	"home", "end", "pageup", "pagedown",
	"up", "down", "left", "right", "printscreen",
	"f1", "f2", "f3", "f4", "f5", "f6", "f7", "f8", "f9", "f10", "f11", "f12",
}

// Combo is a parsed key combination. Key is the canonical lowercase name.
type Combo struct {
	Mods Modifier
	Key  string
}

// Has reports whether m is part of the combination.
func (c Combo) Has(m Modifier) bool {
	return c.Mods&m != 0
}

// String renders the combination in canonical form, e.g. "ctrl+alt+v".
func (c Combo) String() string {
	parts := make([]string, 0, 5)

	for _, m := range []struct {
		mod  Modifier
		name string
	}{
		{ModCtrl, "ctrl"},
		{ModAlt, "alt"},
		{ModShift, "shift"},
		{ModSuper, "super"},
	} {
		if c.Has(m.mod) {
			parts = append(parts, m.name)
		}
	}

	return strings.Join(append(parts, c.Key), "+")
}

// Parse reads a descriptor made of zero or more modifiers and exactly one key
// joined by "+". Matching is case-insensitive and ignores surrounding spaces.
func Parse(s string) (Combo, error) {
	var combo Combo

	if strings.TrimSpace(s) == "" {
		return combo, errors.New("empty hotkey")
	}

	for _, raw := range strings.Split(s, "+") {
		token := strings.ToLower(strings.TrimSpace(raw))
		if token == "" {
			return Combo{}, errors.Newf("hotkey %q has an empty component", s)
		}

		if mod, ok := modifierNames[token]; ok {
			combo.Mods |= mod

			continue
		}

		if combo.Key != "" {
			return Combo{}, errors.Newf("hotkey %q names more than one key (%s, %s)", s, combo.Key, token)
		}

		key, ok := canonicalKey(token)
		if !ok {
			return Combo{}, errors.Newf("hotkey %q: unknown key %q", s, token)
		}

		combo.Key = key
	}

	if combo.Key == "" {
		return Combo{}, errors.Newf("hotkey %q has no key besides modifiers", s)
	}

	return combo, nil
}

func canonicalKey(token string) (string, bool) {
	if alias, ok := keyAliases[token]; ok {
		token = alias
	}

	if len(token) == 1 {
		c := token[0]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			return token, true
		}

		return "", false
	}

	for _, k := range Keys {
		if k == token {
			return token, true
		}
	}

	return "", false
}
