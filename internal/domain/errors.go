package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors have no infrastructure dependency.

var (
	// Settings errors
	ErrInvalidAlertPercentage = errors.New("alert percentage must be between 10 and 100")
	ErrInvalidVolume          = errors.New("volume must be between 0 and 1")

	// Battery errors
	ErrNoBattery          = errors.New("no battery present")
	ErrBatteryUnsupported = errors.New("battery sensing not supported on this platform")

	// Sound errors
	ErrNoSoundSelected     = errors.New("no alert sound selected")
	ErrSoundNotFound       = errors.New("sound file not found")
	ErrUnsupportedFormat   = errors.New("unsupported sound format (want .mp3 or .wav)")
	ErrSoundNotInLibrary   = errors.New("sound file is not in the sound library")
	ErrPlaybackUnavailable = errors.New("audio output unavailable")
)
