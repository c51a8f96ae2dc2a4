//go:build darwin && cgo
// +build darwin,cgo

package screenshot

/*
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation
#include <CoreGraphics/CoreGraphics.h>
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// capture grabs display `screen` through CoreGraphics. The requested index
// is validated against the active display list; out of range is an error.
// CGDisplayCreateImage returns a composited top-down image with a reliable
// alpha channel, so no row reordering or alpha repair is needed. Every Core
// object is released via defer so the error paths cannot leak the image or
// its backing CFData.
func capture(screen int) (*Screenshot, error) {
	var count C.uint32_t
	if C.CGGetActiveDisplayList(0, nil, &count) != C.kCGErrorSuccess {
		return nil, fmt.Errorf("failed to count active displays")
	}
	if screen < 0 || screen >= int(count) {
		return nil, fmt.Errorf("screen %d out of range: %d active display(s)", screen, int(count))
	}

	displays := make([]C.CGDirectDisplayID, int(count))
	if C.CGGetActiveDisplayList(count, &displays[0], &count) != C.kCGErrorSuccess {
		return nil, fmt.Errorf("failed to list active displays")
	}

	img := C.CGDisplayCreateImage(displays[screen])
	if img == nil {
		return nil, fmt.Errorf("failed to create display image")
	}
	defer C.CGImageRelease(img)

	width := int(C.CGImageGetWidth(img))
	height := int(C.CGImageGetHeight(img))
	rowLen := int(C.CGImageGetBytesPerRow(img))
	pixelBits := int(C.CGImageGetBitsPerPixel(img))
	if pixelBits%8 != 0 {
		return nil, fmt.Errorf("pixels aren't integral bytes: %d bits per pixel", pixelBits)
	}
	pixelWidth := pixelBits / 8

	cfData := C.CGDataProviderCopyData(C.CGImageGetDataProvider(img))
	if cfData == nil {
		return nil, fmt.Errorf("failed to copy display image data")
	}
	defer C.CFRelease(C.CFTypeRef(unsafe.Pointer(cfData)))

	rawLen := int(C.CFDataGetLength(cfData))
	if width*height*pixelBits != rawLen*8 {
		return nil, fmt.Errorf("image data is %d bytes, inconsistent with %dx%d at %d bpp",
			rawLen, width, height, pixelBits)
	}

	data := C.GoBytes(unsafe.Pointer(C.CFDataGetBytePtr(cfData)), C.int(rawLen))

	return &Screenshot{
		data:       data,
		width:      width,
		height:     height,
		rowLen:     rowLen,
		pixelWidth: pixelWidth,
	}, nil
}
