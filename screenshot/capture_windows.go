//go:build windows
// +build windows

package screenshot

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                     = windows.NewLazySystemDLL("user32.dll")
	gdi32                      = windows.NewLazySystemDLL("gdi32.dll")
	procGetDesktopWindow       = user32.NewProc("GetDesktopWindow")
	procGetDC                  = user32.NewProc("GetDC")
	procReleaseDC              = user32.NewProc("ReleaseDC")
	procGetSystemMetrics       = user32.NewProc("GetSystemMetrics")
	procCreateCompatibleDC     = gdi32.NewProc("CreateCompatibleDC")
	procCreateCompatibleBitmap = gdi32.NewProc("CreateCompatibleBitmap")
	procSelectObject           = gdi32.NewProc("SelectObject")
	procBitBlt                 = gdi32.NewProc("BitBlt")
	procGetDIBits              = gdi32.NewProc("GetDIBits")
	procDeleteObject           = gdi32.NewProc("DeleteObject")
	procDeleteDC               = gdi32.NewProc("DeleteDC")
)

const (
	smXVirtualScreen  = 76
	smYVirtualScreen  = 77
	smCXVirtualScreen = 78
	smCYVirtualScreen = 79

	srcCopy    = 0x00CC0020
	captureBlt = 0x40000000

	biRGB        = 0
	dibRGBColors = 0
	gdiError     = 0xffffffff
)

type bitmapInfoHeader struct {
	BiSize          uint32
	BiWidth         int32
	BiHeight        int32
	BiPlanes        uint16
	BiBitCount      uint16
	BiCompression   uint32
	BiSizeImage     uint32
	BiXPelsPerMeter int32
	BiYPelsPerMeter int32
	BiClrUsed       uint32
	BiClrImportant  uint32
}

// capture grabs the full virtual desktop through GDI. The virtual desktop is
// the bounding rectangle of all attached monitors and may start at negative
// coordinates when monitors sit left of or above the primary one. Per-monitor
// selection is not implemented: the screen index is ignored and the whole
// virtual desktop is always captured. That is a known limitation of this
// backend, not an oversight.
func capture(_ int) (*Screenshot, error) {
	hwnd, _, _ := procGetDesktopWindow.Call()
	if hwnd == 0 {
		return nil, fmt.Errorf("failed to get desktop window")
	}

	screenDC, _, _ := procGetDC.Call(hwnd)
	if screenDC == 0 {
		return nil, fmt.Errorf("failed to get desktop device context")
	}
	defer procReleaseDC.Call(hwnd, screenDC)

	width := getSystemMetrics(smCXVirtualScreen)
	height := getSystemMetrics(smCYVirtualScreen)
	originX := getSystemMetrics(smXVirtualScreen)
	originY := getSystemMetrics(smYVirtualScreen)
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid virtual desktop size %dx%d", width, height)
	}

	memDC, _, _ := procCreateCompatibleDC.Call(screenDC)
	if memDC == 0 {
		return nil, fmt.Errorf("failed to create compatible device context")
	}
	defer procDeleteDC.Call(memDC)

	bitmap, _, _ := procCreateCompatibleBitmap.Call(screenDC, uintptr(width), uintptr(height))
	if bitmap == 0 {
		return nil, fmt.Errorf("failed to create compatible bitmap")
	}
	defer procDeleteObject.Call(bitmap)

	prev, _, _ := procSelectObject.Call(memDC, bitmap)
	if prev == 0 || prev == gdiError {
		return nil, fmt.Errorf("failed to select bitmap into device context")
	}
	defer procSelectObject.Call(memDC, prev)

	ret, _, _ := procBitBlt.Call(
		memDC, 0, 0, uintptr(width), uintptr(height),
		screenDC, uintptr(originX), uintptr(originY),
		srcCopy|captureBlt,
	)
	if ret == 0 {
		return nil, fmt.Errorf("failed to copy desktop into bitmap")
	}

	const pixelWidth = 4
	rowLen := int(width) * pixelWidth
	size := rowLen * int(height)

	// A positive biHeight requests the native bottom-up row order; the rows
	// are reversed after the transfer.
	bmi := bitmapInfoHeader{
		BiSize:        uint32(unsafe.Sizeof(bitmapInfoHeader{})),
		BiWidth:       width,
		BiHeight:      height,
		BiPlanes:      1,
		BiBitCount:    8 * pixelWidth,
		BiCompression: biRGB,
		BiSizeImage:   uint32(size),
	}

	raw := make([]byte, size)
	ret, _, _ = procGetDIBits.Call(
		memDC,
		bitmap,
		0,
		uintptr(height),
		uintptr(unsafe.Pointer(&raw[0])),
		uintptr(unsafe.Pointer(&bmi)),
		dibRGBColors,
	)
	if ret == 0 {
		return nil, fmt.Errorf("failed to transfer bitmap bits")
	}

	return &Screenshot{
		data:       flipRows(raw, int(height), rowLen),
		width:      int(width),
		height:     int(height),
		rowLen:     rowLen,
		pixelWidth: pixelWidth,
	}, nil
}

func getSystemMetrics(index int32) int32 {
	ret, _, _ := procGetSystemMetrics.Call(uintptr(index))
	return int32(ret)
}
