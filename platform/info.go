// Package platform reports basic host facts recorded alongside captures.
package platform

import (
	"os"
	"runtime"
)

// Hostname returns the system hostname
func Hostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return hostname
}

// OS returns the operating system name
func OS() string {
	return runtime.GOOS
}

// Arch returns the architecture
func Arch() string {
	return runtime.GOARCH
}
