//go:build windows

package hotkey

import (
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"syscall"
	"time"
	"unsafe"

	"github.com/cockroachdb/errors"
	"golang.org/x/sys/windows"

	"clipregex/internal/keycombo"
)

const (
	MOD_ALT      = 0x0001
	MOD_CONTROL  = 0x0002
	MOD_SHIFT    = 0x0004
	MOD_WIN      = 0x0008
	MOD_NOREPEAT = 0x4000

	WM_HOTKEY = 0x0312
	WM_QUIT   = 0x0012

	stopTimeout = 3 * time.Second
)

var (
	user32                 = windows.NewLazySystemDLL("user32.dll")
	kernel32               = windows.NewLazySystemDLL("kernel32.dll")
	procRegisterHotKey     = user32.NewProc("RegisterHotKey")
	procUnregisterHotKey   = user32.NewProc("UnregisterHotKey")
	procGetMessage         = user32.NewProc("GetMessageW")
	procPostThreadMessage  = user32.NewProc("PostThreadMessageW")
	procGetCurrentThreadId = kernel32.NewProc("GetCurrentThreadId")

	nextID atomic.Int32
)

type POINT struct {
	X, Y int32
}

type MSG struct {
	HWnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      POINT
}

var virtualKeys = map[string]uint32{
	"space":       0x20,
	"enter":       0x0D,
	"tab":         0x09,
	"escape":      0x1B,
	"insert":      0x2D,
	"delete":      0x2E,
	"home":        0x24,
	"end":         0x23,
	"pageup":      0x21,
	"pagedown":    0x22,
	"left":        0x25,
	"up":          0x26,
	"right":       0x27,
	"down":        0x28,
	"printscreen": 0x2C,
}

func virtualKey(name string) (uint32, bool) {
	if vk, ok := virtualKeys[name]; ok {
		return vk, true
	}

	if len(name) == 1 {
		c := name[0]

		switch {
		case c >= 'a' && c <= 'z':
			return uint32(c-'a') + 'A', true
		case c >= '0' && c <= '9':
			return uint32(c), true
		}
	}

	if !strings.HasPrefix(name, "f") {
		return 0, false
	}

	if n, err := strconv.Atoi(name[1:]); err == nil && n >= 1 && n <= 12 {
		return 0x70 + uint32(n) - 1, true
	}

	return 0, false
}

func modifiers(combo keycombo.Combo) uint32 {
	mods := uint32(MOD_NOREPEAT)

	if combo.Has(keycombo.ModCtrl) {
		mods |= MOD_CONTROL
	}

	if combo.Has(keycombo.ModAlt) {
		mods |= MOD_ALT
	}

	if combo.Has(keycombo.ModShift) {
		mods |= MOD_SHIFT
	}

	if combo.Has(keycombo.ModSuper) {
		mods |= MOD_WIN
	}

	return mods
}

// windowsBinding runs RegisterHotKey and its message loop on one locked OS
// thread; WM_HOTKEY is only delivered to the registering thread.
type windowsBinding struct {
	id       int32
	threadID uint32
	done     chan struct{}
}

func register(combo keycombo.Combo, fire func()) (binding, error) {
	vk, ok := virtualKey(combo.Key)
	if !ok {
		return nil, errors.Newf("key %q has no virtual key code", combo.Key)
	}

	b := &windowsBinding{id: nextID.Add(1), done: make(chan struct{})}
	result := make(chan error, 1)

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		defer close(b.done)

		tid, _, _ := procGetCurrentThreadId.Call()
		b.threadID = uint32(tid)

		ret, _, err := procRegisterHotKey.Call(0, uintptr(b.id), uintptr(modifiers(combo)), uintptr(vk))
		if ret == 0 {
			result <- errors.Wrap(err, "RegisterHotKey")

			return
		}

		result <- nil

		messageLoop(fire)
		procUnregisterHotKey.Call(0, uintptr(b.id))
	}()

	if err := <-result; err != nil {
		return nil, err
	}

	return b, nil
}

func messageLoop(fire func()) {
	msg := &MSG{}

	for {
		ret, _, _ := procGetMessage.Call(uintptr(unsafe.Pointer(msg)), 0, 0, 0)
		if ret == 0 || ret == uintptr(syscall.InvalidHandle) {
			return
		}

		switch msg.Message {
		case WM_HOTKEY:
			fire()
		case WM_QUIT:
			return
		}
	}
}

func (b *windowsBinding) stop() {
	procPostThreadMessage.Call(uintptr(b.threadID), WM_QUIT, 0, 0)

	select {
	case <-b.done:
	case <-time.After(stopTimeout):
	}
}
