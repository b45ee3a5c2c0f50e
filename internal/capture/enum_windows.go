//go:build windows

package capture

import (
	"image"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                   = windows.NewLazySystemDLL("user32.dll")
	procEnumWindows          = user32.NewProc("EnumWindows")
	procGetWindowTextW       = user32.NewProc("GetWindowTextW")
	procGetWindowTextLengthW = user32.NewProc("GetWindowTextLengthW")
	procIsWindowVisible      = user32.NewProc("IsWindowVisible")
	procGetWindowRect        = user32.NewProc("GetWindowRect")
)

// EnumWindows callbacks are a limited resource, so one is shared and guarded
var (
	enumMu       sync.Mutex
	enumFound    []WindowInfo
	enumCallback = windows.NewCallback(collectWindow)
)

func platformEnumerator() Enumerator {
	return EnumeratorFunc(win32Windows)
}

// win32Windows lists the visible top-level windows
func win32Windows() ([]WindowInfo, error) {
	enumMu.Lock()
	defer enumMu.Unlock()

	enumFound = nil
	if r, _, err := procEnumWindows.Call(enumCallback, 0); r == 0 {
		return nil, err
	}
	found := enumFound
	enumFound = nil
	return found, nil
}

func collectWindow(hwnd uintptr, _ uintptr) uintptr {
	if visible, _, _ := procIsWindowVisible.Call(hwnd); visible == 0 {
		return 1
	}
	n, _, _ := procGetWindowTextLengthW.Call(hwnd)
	if n == 0 {
		return 1
	}
	buf := make([]uint16, n+1)
	procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))

	var r windows.Rect
	if ok, _, _ := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&r))); ok == 0 {
		return 1
	}
	enumFound = append(enumFound, WindowInfo{
		Title:  windows.UTF16ToString(buf),
		Bounds: image.Rect(int(r.Left), int(r.Top), int(r.Right), int(r.Bottom)),
	})
	return 1
}
