// Package sounds manages the user's alert sound library: a directory of
// copied .mp3/.wav files under the app data dir, plus the selection stored
// in settings.
package sounds

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/battalert/battalert/internal/domain"
	"github.com/battalert/battalert/internal/infra/sound"
)

// DirName is the library directory inside the app data dir.
const DirName = "sounds"

// Store is the part of the settings store the library needs.
type Store interface {
	LoadSettings() (domain.Settings, error)
	SetSoundFile(path string) error
}

// Library is the sound asset directory.
type Library struct {
	dir   string
	store Store
}

// NewLibrary creates a library rooted at appDir/sounds.
func NewLibrary(appDir string, store Store) *Library {
	return &Library{dir: filepath.Join(appDir, DirName), store: store}
}

// Dir returns the library directory.
func (l *Library) Dir() string { return l.dir }

// List returns the absolute paths of playable files, sorted by name.
// The directory is created on demand.
func (l *Library) List() ([]string, error) {
	if err := l.ensureDir(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("list sounds: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !sound.Supported(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(l.dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Import copies src into the library and returns the library path.
// An existing file of the same name is kept as is.
func (l *Library) Import(src string) (string, error) {
	if !sound.Supported(src) {
		return "", fmt.Errorf("%s: %w", filepath.Base(src), domain.ErrUnsupportedFormat)
	}
	if err := l.ensureDir(); err != nil {
		return "", err
	}

	dst := filepath.Join(l.dir, filepath.Base(src))
	if _, err := os.Stat(dst); err == nil {
		return dst, nil
	}
	if err := copyFile(src, dst); err != nil {
		return "", fmt.Errorf("import %s: %w", filepath.Base(src), err)
	}
	return dst, nil
}

// Resolve maps a bare file name onto the library directory. Paths are
// returned unchanged.
func (l *Library) Resolve(name string) string {
	if name == "" || filepath.IsAbs(name) || filepath.Base(name) != name {
		return name
	}
	return filepath.Join(l.dir, name)
}

// Select persists path (or a library file name) as the alert sound.
func (l *Library) Select(name string) (string, error) {
	path := l.Resolve(name)
	if err := sound.CheckFile(path); err != nil {
		return "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if err := l.store.SetSoundFile(abs); err != nil {
		return "", err
	}
	return abs, nil
}

// Active returns the selected sound path ("" when none).
func (l *Library) Active() (string, error) {
	s, err := l.store.LoadSettings()
	if err != nil {
		return "", err
	}
	return s.SoundFile, nil
}

// Delete removes a library file. If it was the active selection the setting
// is cleared and cleared is true. On failure settings are left unchanged.
func (l *Library) Delete(name string) (cleared bool, err error) {
	path := l.Resolve(name)
	abs, err := filepath.Abs(path)
	if err != nil {
		return false, err
	}
	dir, err := filepath.Abs(l.dir)
	if err != nil {
		return false, err
	}
	if filepath.Dir(abs) != dir {
		return false, fmt.Errorf("%s: %w", path, domain.ErrSoundNotInLibrary)
	}

	if err := os.Remove(abs); err != nil {
		return false, fmt.Errorf("delete sound file: %w", err)
	}

	active, err := l.Active()
	if err != nil {
		return false, err
	}
	if active != abs && active != path {
		return false, nil
	}
	if err := l.store.SetSoundFile(""); err != nil {
		return false, err
	}
	return true, nil
}

func (l *Library) ensureDir() error {
	if err := os.MkdirAll(l.dir, 0700); err != nil {
		return fmt.Errorf("create sounds dir: %w", err)
	}
	return nil
}

// copyFile writes src to a new file dst, removing dst on any failure.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}
	return nil
}
