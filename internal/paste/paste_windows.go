//go:build windows

package paste

import (
	"context"
	"unsafe"

	"github.com/cockroachdb/errors"
	"golang.org/x/sys/windows"
)

const (
	INPUT_KEYBOARD  = 1
	KEYEVENTF_KEYUP = 0x0002

	VK_SHIFT   = 0x10
	VK_CONTROL = 0x11
	VK_MENU    = 0x12
	VK_LWIN    = 0x5B
	VK_RWIN    = 0x5C
	VK_V       = 0x56
)

var (
	user32        = windows.NewLazySystemDLL("user32.dll")
	procSendInput = user32.NewProc("SendInput")
)

type KEYBDINPUT struct {
	Vk        uint16
	Scan      uint16
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
}

// INPUT mirrors the Win32 union layout; the trailing padding makes the
// keyboard variant as large as MOUSEINPUT.
type INPUT struct {
	Type    uint32
	Ki      KEYBDINPUT
	padding uint64
}

type sendInputTrigger struct{}

func newSystem() Trigger {
	return sendInputTrigger{}
}

func key(vk uint16, up bool) INPUT {
	in := INPUT{Type: INPUT_KEYBOARD, Ki: KEYBDINPUT{Vk: vk}}
	if up {
		in.Ki.Flags = KEYEVENTF_KEYUP
	}

	return in
}

// Paste releases modifiers still held from the hotkey, then sends ctrl+v.
func (sendInputTrigger) Paste(context.Context) error {
	inputs := []INPUT{
		key(VK_MENU, true),
		key(VK_SHIFT, true),
		key(VK_LWIN, true),
		key(VK_RWIN, true),
		key(VK_CONTROL, false),
		key(VK_V, false),
		key(VK_V, true),
		key(VK_CONTROL, true),
	}

	sent, _, err := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if int(sent) != len(inputs) {
		return unsupported(errors.Newf("SendInput delivered %d of %d events: %v", sent, len(inputs), err))
	}

	return nil
}
