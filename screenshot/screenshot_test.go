package screenshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testImage builds a Screenshot around a synthetic buffer. rowLen may exceed
// width*pixelWidth to simulate native row padding.
func testImage(t *testing.T, width, height, rowLen, pixelWidth int) *Screenshot {
	t.Helper()
	require.GreaterOrEqual(t, rowLen, width*pixelWidth)
	return &Screenshot{
		data:       make([]byte, rowLen*height),
		width:      width,
		height:     height,
		rowLen:     rowLen,
		pixelWidth: pixelWidth,
	}
}

func TestScreenshot_Accessors(t *testing.T) {
	s := testImage(t, 7, 5, 32, 4)

	assert.Equal(t, 7, s.Width())
	assert.Equal(t, 5, s.Height())
	assert.Equal(t, 32, s.RowLen())
	assert.Equal(t, 4, s.PixelWidth())
	assert.Equal(t, 32*5, s.RawLen())
	assert.Len(t, s.Data(), s.RawLen())
}

func TestScreenshot_ShapeInvariants(t *testing.T) {
	s := testImage(t, 7, 5, 32, 4)

	assert.Equal(t, s.RowLen()*s.Height(), s.RawLen())
	assert.GreaterOrEqual(t, s.RowLen(), s.Width()*s.PixelWidth())
}

func TestScreenshot_GetPixel_ByteOrder(t *testing.T) {
	s := testImage(t, 4, 3, 16, 4)

	// Bytes at a pixel offset are (b, g, r, a) in ascending order.
	idx := 1*s.rowLen + 2*s.pixelWidth
	s.data[idx] = 0x10   // b
	s.data[idx+1] = 0x20 // g
	s.data[idx+2] = 0x30 // r
	s.data[idx+3] = 0x40 // a

	p := s.GetPixel(1, 2)
	assert.Equal(t, uint8(0x40), p.A)
	assert.Equal(t, uint8(0x30), p.R)
	assert.Equal(t, uint8(0x20), p.G)
	assert.Equal(t, uint8(0x10), p.B)
}

func TestScreenshot_GetPixel_LastValidPixel(t *testing.T) {
	s := testImage(t, 4, 3, 16, 4)

	// The last (row, col) must be addressable without reading past the end.
	assert.NotPanics(t, func() {
		s.GetPixel(2, 3)
	})
}

func TestScreenshot_GetPixel_OutOfRange(t *testing.T) {
	s := testImage(t, 4, 3, 16, 4)

	assert.Panics(t, func() { s.GetPixel(3, 0) })
	assert.Panics(t, func() { s.GetPixel(0, 4) })
	assert.Panics(t, func() { s.GetPixel(-1, 0) })
	assert.Panics(t, func() { s.GetPixel(0, -1) })
}

func TestScreenshot_Data_MutableView(t *testing.T) {
	s := testImage(t, 2, 2, 8, 4)

	s.Data()[0] = 0xab

	assert.Equal(t, uint8(0xab), s.data[0])
	assert.Equal(t, uint8(0xab), s.GetPixel(0, 0).B)
}
