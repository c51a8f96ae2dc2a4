//go:build !linux && !windows && (!darwin || !cgo)
// +build !linux
// +build !windows
// +build !darwin !cgo

package screenshot

import (
	"fmt"
	"runtime"
)

// capture is the fallback for platforms without a native backend, including
// darwin builds with cgo disabled.
func capture(_ int) (*Screenshot, error) {
	return nil, fmt.Errorf("screen capture not supported on %s", runtime.GOOS)
}
