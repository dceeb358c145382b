//go:build darwin && cgo

package hotkey

import (
	gohotkey "golang.design/x/hotkey"

	"clipregex/internal/keycombo"
)

// Carbon virtual key codes. Mac keyboards have no print screen key.
var platformKeys = map[string]gohotkey.Key{
	"home":     0x73,
	"end":      0x77,
	"pageup":   0x74,
	"pagedown": 0x79,
	"insert":   0x72,
}

func modifiers(combo keycombo.Combo) []gohotkey.Modifier {
	var mods []gohotkey.Modifier

	if combo.Has(keycombo.ModCtrl) {
		mods = append(mods, gohotkey.ModCtrl)
	}

	if combo.Has(keycombo.ModAlt) {
		mods = append(mods, gohotkey.ModOption)
	}

	if combo.Has(keycombo.ModShift) {
		mods = append(mods, gohotkey.ModShift)
	}

	if combo.Has(keycombo.ModSuper) {
		mods = append(mods, gohotkey.ModCmd)
	}

	return mods
}
