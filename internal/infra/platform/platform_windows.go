//go:build windows

package platform

import (
	"errors"
	"os"
)

type windows struct{}

func current() Platform { return windows{} }

func (windows) Name() string { return "windows" }

// DataRoot returns %APPDATA%.
func (windows) DataRoot() (string, error) {
	if dir := os.Getenv("APPDATA"); dir != "" {
		return dir, nil
	}
	return "", errors.New("APPDATA is not set")
}
