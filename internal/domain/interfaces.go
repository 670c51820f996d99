package domain

// ─── Service Interfaces ─────────────────────────────────────────────────────
// Infrastructure implements these; the monitor depends on them.

// SettingsStore persists the singleton settings record.
// Implemented by infra/sqlite.DB.
type SettingsStore interface {
	LoadSettings() (Settings, error)
	SaveSettings(s Settings) error
	SetSoundFile(path string) error
	SetVolume(v float64) error
	SetAlertPercentage(p int) error
}

// BatterySource samples the OS battery API.
// Read returns ErrNoBattery on machines without a battery.
type BatterySource interface {
	Read() (Reading, error)
}

// SoundPlayer plays a single audio file at a time.
type SoundPlayer interface {
	// Play starts playback. No-op while something is already playing.
	Play(path string, loop bool) error

	// Stop halts playback. Safe to call when nothing is playing.
	Stop()

	// SetVolume applies v (clamped to [0,1]) to current and future playback.
	SetVolume(v float64)

	IsPlaying() bool
}

// Notifier shows a transient user notification. It never fails.
type Notifier interface {
	Notify(title, message string)
}
