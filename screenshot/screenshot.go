// Package screenshot captures a still bitmap of a display and exposes it as a
// platform-independent pixel buffer. One backend per OS is selected at build
// time; all of them produce the same Screenshot layout: 4 bytes per pixel,
// (b, g, r, a) in ascending byte order, rows top-down.
//
// Captures are synchronous and blocking, with no internal timeout, retry, or
// cancellation; a caller that wants a deadline must race the call on its own
// goroutine and accept that an abandoned call holds its native resources
// until it returns. Each call acquires and releases its own native handles,
// so nothing is shared between calls, but whether concurrent captures are
// safe is a native-layer contract: X connections are per-call here, GDI
// tolerates concurrent device contexts, and CoreGraphics serializes
// internally. No capture state survives between calls.
package screenshot

import "runtime"

// Pixel is one decoded pixel of a Screenshot.
type Pixel struct {
	A uint8
	R uint8
	G uint8
	B uint8
}

// Screenshot is a captured bitmap plus its shape metadata. The buffer is an
// owned copy; it never aliases native memory. The shape is immutable once a
// capture returns.
type Screenshot struct {
	data       []byte
	width      int
	height     int
	rowLen     int
	pixelWidth int
}

// Width returns the image width in pixels.
func (s *Screenshot) Width() int {
	return s.width
}

// Height returns the image height in pixels.
func (s *Screenshot) Height() int {
	return s.height
}

// RowLen returns the number of bytes in one row, including any padding, so
// RowLen may exceed Width*PixelWidth.
func (s *Screenshot) RowLen() int {
	return s.rowLen
}

// PixelWidth returns the number of bytes per pixel.
func (s *Screenshot) PixelWidth() int {
	return s.pixelWidth
}

// RawLen returns the total number of bytes in the bitmap.
func (s *Screenshot) RawLen() int {
	return len(s.data)
}

// Data returns the raw bitmap. The slice is a mutable view for in-place
// post-processing by the caller; the shape metadata never changes.
func (s *Screenshot) Data() []byte {
	return s.data
}

// GetPixel returns the pixel at (row, col). An out-of-range position is a
// caller bug and panics rather than returning an error.
func (s *Screenshot) GetPixel(row, col int) Pixel {
	idx := row*s.rowLen + col*s.pixelWidth
	if row < 0 || col < 0 || col >= s.width || idx+s.pixelWidth > len(s.data) {
		panic("screenshot: pixel position out of range")
	}
	return Pixel{
		A: s.data[idx+3],
		R: s.data[idx+2],
		G: s.data[idx+1],
		B: s.data[idx],
	}
}

// Get captures display `screen` (zero-based index into the native display
// list) and returns the normalized bitmap. The call blocks for the duration
// of the native capture, holds no state between calls, and performs no
// retries. On Windows the index is ignored and the full virtual desktop is
// captured; see capture_windows.go.
func Get(screen int) (*Screenshot, error) {
	return capture(screen)
}

// Grabber captures screenshots with logging around each attempt.
type Grabber struct {
	logger interface {
		Info(string, ...interface{})
		Debug(string, ...interface{})
		Error(string, ...interface{})
	}
}

// NewGrabber creates a new screenshot grabber
func NewGrabber(logger interface {
	Info(string, ...interface{})
	Debug(string, ...interface{})
	Error(string, ...interface{})
}) *Grabber {
	return &Grabber{logger: logger}
}

// Capture captures display `screen` and logs the outcome.
func (g *Grabber) Capture(screen int) (*Screenshot, error) {
	g.logger.Debug("capturing display %d on %s", screen, runtime.GOOS)

	img, err := capture(screen)
	if err != nil {
		g.logger.Error("capture failed: %v", err)
		return nil, err
	}

	g.logger.Info("captured display %d: %dx%d, %d bytes", screen, img.Width(), img.Height(), img.RawLen())
	return img, nil
}
