// Package sqlite provides the SQLite-backed settings store for battalert.
// Uses WAL mode so the dashboard and one-shot CLI commands can share the file.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)

	"github.com/battalert/battalert/internal/domain"
)

// FileName is the database file created inside the app data directory.
const FileName = "battery_alert.db"

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db   *sql.DB
	path string
}

// Open creates or opens the SQLite database at dir/battery_alert.db.
// Enables WAL mode and a 5-second busy timeout, then seeds the default
// settings row.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, FileName)
	dsn := "file:" + dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// SQLite is single-writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	d := &DB{db: db, path: dbPath}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// Path returns the database file location.
func (d *DB) Path() string {
	return d.path
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	defaults := domain.DefaultSettings()
	migrations := []struct {
		sql  string
		args []any
	}{
		{sql: `CREATE TABLE IF NOT EXISTS settings (
			id               INTEGER PRIMARY KEY,
			sound_file       TEXT,
			volume           REAL,
			alert_percentage INTEGER
		)`},
		// Field setters update row 1 in place, so it must exist from the start.
		{
			sql:  `INSERT OR IGNORE INTO settings (id, sound_file, volume, alert_percentage) VALUES (1, ?, ?, ?)`,
			args: []any{defaults.SoundFile, defaults.Volume, defaults.AlertPercentage},
		},
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m.sql, m.args...); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m.sql)
		}
	}
	return nil
}
