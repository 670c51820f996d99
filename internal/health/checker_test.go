package health

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/battalert/battalert/internal/infra/sqlite"
)

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func statusOf(t *testing.T, statuses []Status, name string) Status {
	t.Helper()
	for _, s := range statuses {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("check %q not found in statuses", name)
	return Status{}
}

// ─── Checker Tests ──────────────────────────────────────────────────────────

func TestNewChecker(t *testing.T) {
	db := newTestDB(t)

	c := NewChecker(db, t.TempDir(), 0)
	if c == nil {
		t.Fatal("NewChecker() returned nil")
	}
	if len(c.checks) != 3 {
		t.Errorf("checks = %d, want 3", len(c.checks))
	}
	if c.interval != DefaultInterval {
		t.Errorf("interval = %v, want %v", c.interval, DefaultInterval)
	}
}

func TestChecker_RunAllHealthy(t *testing.T) {
	db := newTestDB(t)

	c := NewChecker(db, t.TempDir(), time.Minute)
	statuses := c.RunOnce(context.Background())

	if len(statuses) != 3 {
		t.Fatalf("RunOnce() = %d statuses, want 3", len(statuses))
	}
	for _, s := range statuses {
		if !s.Healthy {
			t.Errorf("check %q should be healthy, got error: %s", s.Name, s.Error)
		}
	}
	if !c.IsHealthy() {
		t.Error("IsHealthy() should be true when all checks pass")
	}
}

func TestChecker_IsHealthy_BeforeRun(t *testing.T) {
	db := newTestDB(t)
	c := NewChecker(db, t.TempDir(), time.Minute)

	// No statuses yet: vacuously healthy
	if !c.IsHealthy() {
		t.Error("IsHealthy() should be true before first run (no statuses)")
	}
}

func TestChecker_SoundsDirRecovered(t *testing.T) {
	db := newTestDB(t)
	soundsDir := filepath.Join(t.TempDir(), "sounds")

	c := NewChecker(db, soundsDir, time.Minute)
	s := statusOf(t, c.RunOnce(context.Background()), "sounds_dir")

	if !s.Healthy || !s.Recovered {
		t.Errorf("sounds_dir = %+v, want healthy and recovered", s)
	}
	if info, err := os.Stat(soundsDir); err != nil || !info.IsDir() {
		t.Errorf("sounds dir not created: %v", err)
	}
}

func TestChecker_SoundsDirIsFile(t *testing.T) {
	db := newTestDB(t)
	path := filepath.Join(t.TempDir(), "sounds")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := NewChecker(db, path, time.Minute)
	s := statusOf(t, c.RunOnce(context.Background()), "sounds_dir")
	if s.Healthy {
		t.Error("sounds_dir should be unhealthy when the path is a file")
	}
	if c.IsHealthy() {
		t.Error("IsHealthy() should be false")
	}
}

func TestChecker_SoundFileMissing(t *testing.T) {
	db := newTestDB(t)
	if err := db.SetSoundFile(filepath.Join(t.TempDir(), "gone.mp3")); err != nil {
		t.Fatalf("SetSoundFile: %v", err)
	}

	c := NewChecker(db, t.TempDir(), time.Minute)
	s := statusOf(t, c.RunOnce(context.Background()), "sound_file")
	if s.Healthy || s.Error == "" {
		t.Errorf("sound_file = %+v, want unhealthy with error", s)
	}
}

func TestChecker_SoundFilePresent(t *testing.T) {
	db := newTestDB(t)
	path := filepath.Join(t.TempDir(), "alarm.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := db.SetSoundFile(path); err != nil {
		t.Fatalf("SetSoundFile: %v", err)
	}

	c := NewChecker(db, t.TempDir(), time.Minute)
	if s := statusOf(t, c.RunOnce(context.Background()), "sound_file"); !s.Healthy {
		t.Errorf("sound_file should be healthy, got %s", s.Error)
	}
}

func TestChecker_SQLiteClosed(t *testing.T) {
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	db.Close()

	c := NewChecker(db, t.TempDir(), time.Minute)
	if s := statusOf(t, c.RunOnce(context.Background()), "sqlite"); s.Healthy {
		t.Error("sqlite should be unhealthy after Close")
	}
}

func TestChecker_StatusesIsCopy(t *testing.T) {
	db := newTestDB(t)
	c := NewChecker(db, t.TempDir(), time.Minute)
	c.RunOnce(context.Background())

	got := c.Statuses()
	got[0].Healthy = false
	if !c.Statuses()[0].Healthy {
		t.Error("Statuses() should return a copy")
	}
}

func TestChecker_RunStopsOnCancel(t *testing.T) {
	db := newTestDB(t)
	c := NewChecker(db, t.TempDir(), time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if len(c.Statuses()) != 3 {
		t.Errorf("Statuses() = %d, want 3", len(c.Statuses()))
	}
}
