// Package platform hides the OS-specific bits battalert needs at startup:
// where application data lives and what the platform is called.
package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppName is the directory created under the platform data root.
const AppName = "BatteryAlertApp"

// HomeEnv overrides the whole application directory when set.
const HomeEnv = "BATTALERT_HOME"

// Platform describes the capabilities that differ between operating systems.
type Platform interface {
	// Name is a short human-readable identifier ("linux", "windows", ...).
	Name() string

	// DataRoot is the per-user directory applications keep data under.
	DataRoot() (string, error)
}

// Current returns the implementation for the running OS.
func Current() Platform {
	return current()
}

// AppDir resolves the application directory under p's data root and
// creates it if needed. BATTALERT_HOME takes precedence.
func AppDir(p Platform, app string) (string, error) {
	dir := os.Getenv(HomeEnv)
	if dir == "" {
		root, err := p.DataRoot()
		if err != nil {
			return "", fmt.Errorf("resolve %s data dir: %w", p.Name(), err)
		}
		dir = filepath.Join(root, app)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("create app dir: %w", err)
	}
	return dir, nil
}

// homeRelative joins elem onto the user's home directory.
func homeRelative(elem ...string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{home}, elem...)...), nil
}
