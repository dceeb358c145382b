package keycombo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipregex/internal/keycombo"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    keycombo.Combo
		canon   string
		wantErr bool
	}{
		{
			name:  "default hotkey",
			in:    "ctrl+alt+v",
			want:  keycombo.Combo{Mods: keycombo.ModCtrl | keycombo.ModAlt, Key: "v"},
			canon: "ctrl+alt+v",
		},
		{
			name:  "mixed case and spaces",
			in:    " Ctrl + Shift + S ",
			want:  keycombo.Combo{Mods: keycombo.ModCtrl | keycombo.ModShift, Key: "s"},
			canon: "ctrl+shift+s",
		},
		{
			name:  "aliases",
			in:    "cmd+option+Return",
			want:  keycombo.Combo{Mods: keycombo.ModSuper | keycombo.ModAlt, Key: "enter"},
			canon: "alt+super+enter",
		},
		{
			name:  "bare key",
			in:    "PrintScreen",
			want:  keycombo.Combo{Key: "printscreen"},
			canon: "printscreen",
		},
		{
			name:  "function key",
			in:    "ctrl+F12",
			want:  keycombo.Combo{Mods: keycombo.ModCtrl, Key: "f12"},
			canon: "ctrl+f12",
		},
		{name: "empty", in: "", wantErr: true},
		{name: "only modifiers", in: "ctrl+alt", wantErr: true},
		{name: "two keys", in: "ctrl+a+b", wantErr: true},
		{name: "empty component", in: "ctrl++v", wantErr: true},
		{name: "unknown key", in: "ctrl+banana", wantErr: true},
		{name: "non alphanumeric", in: "ctrl+;", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := keycombo.Parse(tc.in)
			if tc.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.canon, got.String())
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	combo, err := keycombo.Parse("shift+ctrl+pgdn")
	require.NoError(t, err)

	again, err := keycombo.Parse(combo.String())
	require.NoError(t, err)
	assert.Equal(t, combo, again)
}
