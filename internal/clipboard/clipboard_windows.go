//go:build windows

package clipboard

import (
	"runtime"
	"time"
	"unsafe"

	"github.com/cockroachdb/errors"
	"golang.org/x/sys/windows"
)

var (
	user32                         = windows.NewLazySystemDLL("user32.dll")
	kernel32                       = windows.NewLazySystemDLL("kernel32.dll")
	procOpenClipboard              = user32.NewProc("OpenClipboard")
	procCloseClipboard             = user32.NewProc("CloseClipboard")
	procEmptyClipboard             = user32.NewProc("EmptyClipboard")
	procGetClipboardData           = user32.NewProc("GetClipboardData")
	procSetClipboardData           = user32.NewProc("SetClipboardData")
	procIsClipboardFormatAvailable = user32.NewProc("IsClipboardFormatAvailable")
	procGlobalAlloc                = kernel32.NewProc("GlobalAlloc")
	procGlobalLock                 = kernel32.NewProc("GlobalLock")
	procGlobalUnlock               = kernel32.NewProc("GlobalUnlock")
	procGlobalFree                 = kernel32.NewProc("GlobalFree")
)

const (
	CF_UNICODETEXT = 13
	GMEM_MOVEABLE  = 0x0002

	openAttempts = 10
	openBackoff  = 20 * time.Millisecond
)

var errNoText = errors.New("clipboard holds no text")

// nativeClipboard talks to the Win32 clipboard directly.
type nativeClipboard struct{}

func newSystem() Clipboard {
	return nativeClipboard{}
}

// openClipboard retries while another process holds the clipboard open.
func openClipboard() error {
	var lastErr error

	for i := 0; i < openAttempts; i++ {
		ret, _, err := procOpenClipboard.Call(0)
		if ret != 0 {
			return nil
		}

		lastErr = err
		time.Sleep(openBackoff)
	}

	return errors.Wrap(lastErr, "failed to open clipboard")
}

func (nativeClipboard) Read() (string, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := openClipboard(); err != nil {
		return "", accessError(err, "read")
	}
	defer procCloseClipboard.Call()

	if ret, _, _ := procIsClipboardFormatAvailable.Call(CF_UNICODETEXT); ret == 0 {
		return "", accessError(errNoText, "read")
	}

	hMem, _, err := procGetClipboardData.Call(CF_UNICODETEXT)
	if hMem == 0 {
		return "", accessError(errors.Wrap(err, "failed to get clipboard data"), "read")
	}

	text, err := globalString(hMem)
	if err != nil {
		return "", accessError(err, "read")
	}

	return text, nil
}

func (nativeClipboard) Write(text string) error {
	data, err := windows.UTF16FromString(text)
	if err != nil {
		return accessError(err, "write")
	}

	hMem, err := globalText(data)
	if err != nil {
		return accessError(err, "write")
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := openClipboard(); err != nil {
		procGlobalFree.Call(hMem)

		return accessError(err, "write")
	}
	defer procCloseClipboard.Call()

	if ret, _, err := procEmptyClipboard.Call(); ret == 0 {
		procGlobalFree.Call(hMem)

		return accessError(errors.Wrap(err, "failed to empty clipboard"), "write")
	}

	// On success the system owns hMem.
	if ret, _, err := procSetClipboardData.Call(CF_UNICODETEXT, hMem); ret == 0 {
		procGlobalFree.Call(hMem)

		return accessError(errors.Wrap(err, "failed to set clipboard data"), "write")
	}

	return nil
}

// globalText copies NUL-terminated UTF-16 data into a movable global block.
// The caller owns the returned handle.
func globalText(data []uint16) (uintptr, error) {
	hMem, _, err := procGlobalAlloc.Call(GMEM_MOVEABLE, uintptr(len(data)*2))
	if hMem == 0 {
		return 0, errors.Wrap(err, "failed to allocate memory")
	}

	pMem, _, err := procGlobalLock.Call(hMem)
	if pMem == 0 {
		procGlobalFree.Call(hMem)

		return 0, errors.Wrap(err, "failed to lock memory")
	}

	copy(unsafe.Slice((*uint16)(unsafe.Pointer(pMem)), len(data)), data)
	procGlobalUnlock.Call(hMem)

	return hMem, nil
}

// globalString reads the NUL-terminated UTF-16 text held by hMem.
func globalString(hMem uintptr) (string, error) {
	pMem, _, err := procGlobalLock.Call(hMem)
	if pMem == 0 {
		return "", errors.Wrap(err, "failed to lock memory")
	}
	defer procGlobalUnlock.Call(hMem)

	return windows.UTF16PtrToString((*uint16)(unsafe.Pointer(pMem))), nil
}
