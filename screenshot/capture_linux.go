//go:build linux
// +build linux

package screenshot

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// capture grabs the root window of X screen `screen` over the X protocol.
// A screen index outside the server's screen list is an error. The X image
// arrives top-down, so no row reordering is needed, but servers often leave
// the alpha plane of a 32-bit ZPixmap as zero-initialized memory; repairAlpha
// handles that after the copy.
func capture(screen int) (*Screenshot, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X display: %w", err)
	}
	defer conn.Close()

	setup := xproto.Setup(conn)
	if screen < 0 || screen >= len(setup.Roots) {
		return nil, fmt.Errorf("screen %d out of range: display has %d screen(s)", screen, len(setup.Roots))
	}
	root := setup.Roots[screen]

	width := int(root.WidthInPixels)
	height := int(root.HeightInPixels)

	img, err := xproto.GetImage(
		conn,
		xproto.ImageFormatZPixmap,
		xproto.Drawable(root.Root),
		0, 0,
		root.WidthInPixels, root.HeightInPixels,
		0xffffffff,
	).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to read root window image: %w", err)
	}

	// The reply reports depth; bits per pixel and row padding come from the
	// server's pixmap format table.
	var pixelBits, scanlinePad int
	for _, f := range setup.PixmapFormats {
		if f.Depth == img.Depth {
			pixelBits = int(f.BitsPerPixel)
			scanlinePad = int(f.ScanlinePad)
			break
		}
	}
	if pixelBits == 0 {
		return nil, fmt.Errorf("no pixmap format for depth %d", img.Depth)
	}
	if pixelBits%8 != 0 {
		return nil, fmt.Errorf("pixels aren't integral bytes: %d bits per pixel", pixelBits)
	}
	pixelWidth := pixelBits / 8

	rowLen := width * pixelBits
	if scanlinePad > 0 {
		rowLen = (rowLen + scanlinePad - 1) / scanlinePad * scanlinePad
	}
	rowLen /= 8

	size := rowLen * height
	if len(img.Data) < size {
		return nil, fmt.Errorf("image data is %d bytes, expected at least %d for %dx%d at %d bpp",
			len(img.Data), size, width, height, pixelBits)
	}

	data := make([]byte, size)
	copy(data, img.Data)

	if pixelWidth == 4 {
		repairAlpha(data)
	}

	return &Screenshot{
		data:       data,
		width:      width,
		height:     height,
		rowLen:     rowLen,
		pixelWidth: pixelWidth,
	}, nil
}
