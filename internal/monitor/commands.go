package monitor

import (
	"fmt"

	"github.com/battalert/battalert/internal/domain"
	"github.com/battalert/battalert/internal/infra/metrics"
)

// ─── User Commands ──────────────────────────────────────────────────────────
// Called from the same goroutine as Tick.

// TestSound plays the selected sound once. While the test is in progress the
// loop will not stop playback on a non-alert tick.
func (m *Monitor) TestSound() error {
	m.refreshSettings()
	if m.settings.SoundFile == "" {
		return domain.ErrNoSoundSelected
	}
	if err := m.player.Play(m.settings.SoundFile, false); err != nil {
		metrics.PlaybackErrors.Inc()
		return err
	}
	m.state.TestingSound = true
	metrics.SoundPlaying.Set(1)
	return nil
}

// StopSound silences playback and clears both the alert-playing and the
// testing flags.
func (m *Monitor) StopSound() {
	m.player.Stop()
	m.state.Playing = false
	m.state.TestingSound = false
	metrics.SoundPlaying.Set(0)
}

// SetVolume persists v (clamped to [0,1]) and applies it immediately.
func (m *Monitor) SetVolume(v float64) error {
	v = domain.ClampVolume(v)
	if err := m.store.SetVolume(v); err != nil {
		return fmt.Errorf("save volume: %w", err)
	}
	m.player.SetVolume(v)
	m.settings.Volume = v
	return nil
}

// SetAlertPercentage persists a new threshold. It is evaluated from the
// next tick on.
func (m *Monitor) SetAlertPercentage(p int) error {
	if err := domain.ValidateAlertPercentage(p); err != nil {
		return err
	}
	if err := m.store.SetAlertPercentage(p); err != nil {
		return fmt.Errorf("save alert percentage: %w", err)
	}
	m.settings.AlertPercentage = p
	metrics.AlertThreshold.Set(float64(p))
	return nil
}

// ReloadSettings re-reads the store outside of a tick, e.g. after the sound
// library changed the selection.
func (m *Monitor) ReloadSettings() {
	m.refreshSettings()
}

// Settings returns the settings the monitor is currently using.
func (m *Monitor) Settings() domain.Settings { return m.settings }

// State returns the current alert state.
func (m *Monitor) State() State { return m.state }
