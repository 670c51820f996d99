// Package domain holds the battalert data model, sentinel errors and the
// interfaces between the monitor and its collaborators.
package domain

import "path/filepath"

// Setting bounds and defaults.
const (
	MinAlertPercentage     = 10
	MaxAlertPercentage     = 100
	DefaultAlertPercentage = 90
	DefaultVolume          = 1.0
)

// Settings is the single persisted settings record.
type Settings struct {
	SoundFile       string  `json:"sound_file" toml:"sound_file"`
	Volume          float64 `json:"volume" toml:"volume"`
	AlertPercentage int     `json:"alert_percentage" toml:"alert_percentage"`
}

// DefaultSettings returns the record created on first run.
func DefaultSettings() Settings {
	return Settings{
		SoundFile:       "",
		Volume:          DefaultVolume,
		AlertPercentage: DefaultAlertPercentage,
	}
}

// Validate reports whether every field is within its allowed range.
func (s Settings) Validate() error {
	if s.Volume < 0 || s.Volume > 1 {
		return ErrInvalidVolume
	}
	return ValidateAlertPercentage(s.AlertPercentage)
}

// SoundName returns the base name of the selected sound, or "None".
func (s Settings) SoundName() string {
	if s.SoundFile == "" {
		return "None"
	}
	return filepath.Base(s.SoundFile)
}

// ClampVolume forces v into [0,1].
func ClampVolume(v float64) float64 {
	if v < 0 || v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ValidateAlertPercentage rejects thresholds outside [10,100].
func ValidateAlertPercentage(p int) error {
	if p < MinAlertPercentage || p > MaxAlertPercentage {
		return ErrInvalidAlertPercentage
	}
	return nil
}
