//go:build (darwin || linux) && cgo

package hotkey

import (
	"runtime"

	"github.com/cockroachdb/errors"
	gohotkey "golang.design/x/hotkey"

	"clipregex/internal/keycombo"
)

var commonKeys = map[string]gohotkey.Key{
	"a": gohotkey.KeyA, "b": gohotkey.KeyB, "c": gohotkey.KeyC, "d": gohotkey.KeyD,
	"e": gohotkey.KeyE, "f": gohotkey.KeyF, "g": gohotkey.KeyG, "h": gohotkey.KeyH,
	"i": gohotkey.KeyI, "j": gohotkey.KeyJ, "k": gohotkey.KeyK, "l": gohotkey.KeyL,
	"m": gohotkey.KeyM, "n": gohotkey.KeyN, "o": gohotkey.KeyO, "p": gohotkey.KeyP,
	"q": gohotkey.KeyQ, "r": gohotkey.KeyR, "s": gohotkey.KeyS, "t": gohotkey.KeyT,
	"u": gohotkey.KeyU, "v": gohotkey.KeyV, "w": gohotkey.KeyW, "x": gohotkey.KeyX,
	"y": gohotkey.KeyY, "z": gohotkey.KeyZ,

	"0": gohotkey.Key0, "1": gohotkey.Key1, "2": gohotkey.Key2, "3": gohotkey.Key3,
	"4": gohotkey.Key4, "5": gohotkey.Key5, "6": gohotkey.Key6, "7": gohotkey.Key7,
	"8": gohotkey.Key8, "9": gohotkey.Key9,

	"f1": gohotkey.KeyF1, "f2": gohotkey.KeyF2, "f3": gohotkey.KeyF3, "f4": gohotkey.KeyF4,
	"f5": gohotkey.KeyF5, "f6": gohotkey.KeyF6, "f7": gohotkey.KeyF7, "f8": gohotkey.KeyF8,
	"f9": gohotkey.KeyF9, "f10": gohotkey.KeyF10, "f11": gohotkey.KeyF11, "f12": gohotkey.KeyF12,

	"space":  gohotkey.KeySpace,
	"enter":  gohotkey.KeyReturn,
	"tab":    gohotkey.KeyTab,
	"escape": gohotkey.KeyEscape,
	"delete": gohotkey.KeyDelete,
	"left":   gohotkey.KeyLeft,
	"right":  gohotkey.KeyRight,
	"up":     gohotkey.KeyUp,
	"down":   gohotkey.KeyDown,
}

func keyCode(name string) (gohotkey.Key, bool) {
	if k, ok := commonKeys[name]; ok {
		return k, true
	}

	k, ok := platformKeys[name]

	return k, ok
}

type unixBinding struct {
	hk   *gohotkey.Hotkey
	done chan struct{}
}

func register(combo keycombo.Combo, fire func()) (binding, error) {
	key, ok := keyCode(combo.Key)
	if !ok {
		return nil, errors.Newf("key %q is not supported on %s", combo.Key, runtime.GOOS)
	}

	hk := gohotkey.New(modifiers(combo), key)
	if err := hk.Register(); err != nil {
		return nil, errors.Wrap(err, "registering with the window system")
	}

	b := &unixBinding{hk: hk, done: make(chan struct{})}
	go b.loop(fire)

	return b, nil
}

func (b *unixBinding) loop(fire func()) {
	keydown := b.hk.Keydown()

	for {
		select {
		case <-b.done:
			return
		case _, ok := <-keydown:
			if !ok {
				return
			}

			fire()
		}
	}
}

func (b *unixBinding) stop() {
	close(b.done)
	_ = b.hk.Unregister()
}
