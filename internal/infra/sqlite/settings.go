package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/battalert/battalert/internal/domain"
)

// settingsID is the primary key of the singleton settings row.
const settingsID = 1

// ─── Settings Repository ────────────────────────────────────────────────────

// LoadSettings returns the stored settings, or defaults when no row exists.
func (d *DB) LoadSettings() (domain.Settings, error) {
	var (
		sound  sql.NullString
		volume sql.NullFloat64
		pct    sql.NullInt64
	)
	err := d.db.QueryRow(
		`SELECT sound_file, volume, alert_percentage FROM settings WHERE id = ?`, settingsID,
	).Scan(&sound, &volume, &pct)
	if err == sql.ErrNoRows {
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		return domain.Settings{}, fmt.Errorf("load settings: %w", err)
	}

	s := domain.DefaultSettings()
	if sound.Valid {
		s.SoundFile = sound.String
	}
	if volume.Valid {
		s.Volume = domain.ClampVolume(volume.Float64)
	}
	if pct.Valid && domain.ValidateAlertPercentage(int(pct.Int64)) == nil {
		s.AlertPercentage = int(pct.Int64)
	}
	return s, nil
}

// SaveSettings replaces the singleton row with s.
func (d *DB) SaveSettings(s domain.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	_, err := d.db.Exec(
		`INSERT INTO settings (id, sound_file, volume, alert_percentage)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			sound_file=excluded.sound_file,
			volume=excluded.volume,
			alert_percentage=excluded.alert_percentage`,
		settingsID, s.SoundFile, s.Volume, s.AlertPercentage,
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// AlertPercentage retrieves only the alert threshold.
func (d *DB) AlertPercentage() (int, error) {
	var pct sql.NullInt64
	err := d.db.QueryRow(`SELECT alert_percentage FROM settings WHERE id = ?`, settingsID).Scan(&pct)
	if err == sql.ErrNoRows || (err == nil && !pct.Valid) {
		return domain.DefaultAlertPercentage, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load alert percentage: %w", err)
	}
	return int(pct.Int64), nil
}

// SetSoundFile updates the selected sound path. Empty clears the selection.
func (d *DB) SetSoundFile(path string) error {
	return d.setField("sound_file", path)
}

// SetVolume stores v clamped into [0,1].
func (d *DB) SetVolume(v float64) error {
	return d.setField("volume", domain.ClampVolume(v))
}

// SetAlertPercentage stores p if it lies in [10,100].
func (d *DB) SetAlertPercentage(p int) error {
	if err := domain.ValidateAlertPercentage(p); err != nil {
		return err
	}
	return d.setField("alert_percentage", p)
}

// setField persists a single column. The seeded row makes UPDATE sufficient,
// but a row deleted out from under us is recreated from defaults first.
func (d *DB) setField(column string, value any) error {
	defaults := domain.DefaultSettings()
	if _, err := d.db.Exec(
		`INSERT OR IGNORE INTO settings (id, sound_file, volume, alert_percentage) VALUES (?, ?, ?, ?)`,
		settingsID, defaults.SoundFile, defaults.Volume, defaults.AlertPercentage,
	); err != nil {
		return fmt.Errorf("set %s: %w", column, err)
	}
	// column is one of three constants above, never user input.
	if _, err := d.db.Exec(`UPDATE settings SET `+column+` = ? WHERE id = ?`, value, settingsID); err != nil {
		return fmt.Errorf("set %s: %w", column, err)
	}
	return nil
}
