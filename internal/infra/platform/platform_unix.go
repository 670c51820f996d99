//go:build !windows && !darwin

package platform

import (
	"os"
	"runtime"
)

type unix struct{}

func current() Platform { return unix{} }

func (unix) Name() string { return runtime.GOOS }

// DataRoot returns $XDG_DATA_HOME, falling back to ~/.local/share.
func (unix) DataRoot() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir, nil
	}
	return homeRelative(".local", "share")
}
