package platform

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type fakePlatform struct {
	root string
	err  error
}

func (f fakePlatform) Name() string              { return "fake" }
func (f fakePlatform) DataRoot() (string, error) { return f.root, f.err }

func TestAppDir_CreatesUnderRoot(t *testing.T) {
	t.Setenv(HomeEnv, "")
	root := t.TempDir()

	dir, err := AppDir(fakePlatform{root: root}, AppName)
	if err != nil {
		t.Fatalf("AppDir() error: %v", err)
	}
	want := filepath.Join(root, AppName)
	if dir != want {
		t.Errorf("AppDir() = %q, want %q", dir, want)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("app dir not created: %v", err)
	}
}

func TestAppDir_EnvOverride(t *testing.T) {
	override := filepath.Join(t.TempDir(), "portable")
	t.Setenv(HomeEnv, override)

	dir, err := AppDir(fakePlatform{err: errors.New("should not be called")}, AppName)
	if err != nil {
		t.Fatalf("AppDir() error: %v", err)
	}
	if dir != override {
		t.Errorf("AppDir() = %q, want %q", dir, override)
	}
	if _, err := os.Stat(override); err != nil {
		t.Errorf("override dir not created: %v", err)
	}
}

func TestAppDir_RootError(t *testing.T) {
	t.Setenv(HomeEnv, "")
	if _, err := AppDir(fakePlatform{err: errors.New("no home")}, AppName); err == nil {
		t.Fatal("AppDir() should propagate DataRoot errors")
	}
}

func TestCurrent(t *testing.T) {
	p := Current()
	if p == nil || p.Name() == "" {
		t.Fatal("Current() should return a named platform")
	}
}
