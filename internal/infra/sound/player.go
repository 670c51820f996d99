// Package sound plays the alert sound. Player tracks the playing flag and
// volume; the audio itself is produced by a Backend.
package sound

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/battalert/battalert/internal/domain"
)

// Backend produces audio for one file at a time.
type Backend interface {
	// Start begins playback of path at the given volume, optionally looping.
	Start(path string, loop bool, volume float64) error

	// Stop halts playback and releases the decoded file.
	Stop()

	// SetVolume changes the volume of the active playback, if any.
	SetVolume(v float64)
}

// Player implements domain.SoundPlayer on top of a Backend.
// The first Play wins until Stop is called.
type Player struct {
	backend Backend
	playing bool
	volume  float64
}

// NewPlayer creates a stopped player at full volume.
func NewPlayer(b Backend) *Player {
	return &Player{backend: b, volume: domain.DefaultVolume}
}

// Play starts playback of path. It is a no-op while already playing.
// Missing or unsupported files return an error and leave the player stopped.
func (p *Player) Play(path string, loop bool) error {
	if p.playing {
		return nil
	}
	if err := CheckFile(path); err != nil {
		return err
	}
	if err := p.backend.Start(path, loop, p.volume); err != nil {
		p.playing = false
		return fmt.Errorf("play %s: %w", filepath.Base(path), err)
	}
	p.playing = true
	return nil
}

// Stop halts playback. Calling it while stopped does nothing.
func (p *Player) Stop() {
	if !p.playing {
		return
	}
	p.backend.Stop()
	p.playing = false
}

// SetVolume clamps v into [0,1] and applies it to current and future playback.
func (p *Player) SetVolume(v float64) {
	p.volume = domain.ClampVolume(v)
	p.backend.SetVolume(p.volume)
}

// IsPlaying reports whether a Play has not yet been stopped.
func (p *Player) IsPlaying() bool { return p.playing }

// Volume returns the current volume in [0,1].
func (p *Player) Volume() float64 { return p.volume }

// Supported reports whether path has a playable extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3", ".wav":
		return true
	default:
		return false
	}
}

// CheckFile verifies that path names an existing, supported sound file.
func CheckFile(path string) error {
	if path == "" {
		return domain.ErrNoSoundSelected
	}
	if !Supported(path) {
		return fmt.Errorf("%s: %w", filepath.Base(path), domain.ErrUnsupportedFormat)
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", path, domain.ErrSoundNotFound)
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s: %w", path, domain.ErrSoundNotFound)
	}
	return nil
}
