//go:build linux && cgo

package hotkey

import (
	gohotkey "golang.design/x/hotkey"

	"clipregex/internal/keycombo"
)

// X11 keysyms without a named constant upstream.
var platformKeys = map[string]gohotkey.Key{
	"home":        0xff50,
	"end":         0xff57,
	"pageup":      0xff55,
	"pagedown":    0xff56,
	"insert":      0xff63,
	"printscreen": 0xff61,
}

// Mod1 is Alt and Mod4 is Super under the default X keymap.
func modifiers(combo keycombo.Combo) []gohotkey.Modifier {
	var mods []gohotkey.Modifier

	if combo.Has(keycombo.ModCtrl) {
		mods = append(mods, gohotkey.ModCtrl)
	}

	if combo.Has(keycombo.ModAlt) {
		mods = append(mods, gohotkey.Mod1)
	}

	if combo.Has(keycombo.ModShift) {
		mods = append(mods, gohotkey.ModShift)
	}

	if combo.Has(keycombo.ModSuper) {
		mods = append(mods, gohotkey.Mod4)
	}

	return mods
}
