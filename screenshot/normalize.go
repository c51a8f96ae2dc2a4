package screenshot

// repairAlpha forces the alpha channel to fully opaque when the backend left
// it unpopulated. X servers commonly hand back zero-initialized memory in the
// alpha plane of a 32-bit ZPixmap, so an all-zero plane is taken to mean "no
// alpha information" and rewritten to 255. A buffer with any non-zero alpha
// byte is left untouched. A legitimately all-transparent capture is
// indistinguishable from an unpopulated plane, so this heuristic can
// false-positive; the behavior is kept for compatibility.
//
// The buffer must be 4 bytes per pixel. Returns true if the plane was
// rewritten.
func repairAlpha(data []byte) bool {
	for i := 3; i < len(data); i += 4 {
		if data[i] != 0 {
			return false
		}
	}
	for i := 3; i < len(data); i += 4 {
		data[i] = 0xff
	}
	return true
}

// flipRows reorders a bottom-up bitmap into top-down row order: output row i
// is input row height-1-i, copied byte for byte. The input is not modified.
func flipRows(data []byte, height, rowLen int) []byte {
	flipped := make([]byte, len(data))
	for row := 0; row < height; row++ {
		src := (height - row - 1) * rowLen
		copy(flipped[row*rowLen:(row+1)*rowLen], data[src:src+rowLen])
	}
	return flipped
}
