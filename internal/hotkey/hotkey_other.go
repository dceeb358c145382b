//go:build !windows && !((darwin || linux) && cgo)

package hotkey

import (
	"runtime"

	"github.com/cockroachdb/errors"

	"clipregex/internal/keycombo"
)

func register(keycombo.Combo, func()) (binding, error) {
	return nil, errors.Newf("global hotkeys are not available on %s without cgo", runtime.GOOS)
}
