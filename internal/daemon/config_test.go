package daemon

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/battalert/battalert/internal/infra/platform"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Monitor.Interval != "5s" {
		t.Errorf("Monitor.Interval = %q, want %q", cfg.Monitor.Interval, "5s")
	}
	if cfg.Notify.Title != "Battery Full Alert" {
		t.Errorf("Notify.Title = %q, want %q", cfg.Notify.Title, "Battery Full Alert")
	}
	if !cfg.Notify.Toast {
		t.Error("Notify.Toast should default to true")
	}
	if cfg.Sound.SampleRate != 44100 {
		t.Errorf("Sound.SampleRate = %d, want %d", cfg.Sound.SampleRate, 44100)
	}
	if cfg.Metrics.Textfile != "" {
		t.Errorf("Metrics.Textfile = %q, want disabled", cfg.Metrics.Textfile)
	}
	if cfg.TickInterval() != 5*time.Second {
		t.Errorf("TickInterval() = %v, want 5s", cfg.TickInterval())
	}
	if cfg.HealthInterval() != time.Minute {
		t.Errorf("HealthInterval() = %v, want 1m", cfg.HealthInterval())
	}
}

func TestLoadConfig_NoFile(t *testing.T) {
	t.Setenv(platform.HomeEnv, t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadConfig() = %+v, want defaults", cfg)
	}
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv(platform.HomeEnv, home)

	data := `
[monitor]
interval = "2s"

[notify]
toast = false

[metrics]
textfile = "/var/lib/node_exporter/battalert.prom"

[logging]
level = "debug"
`
	if err := os.WriteFile(filepath.Join(home, ConfigFile), []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.TickInterval() != 2*time.Second {
		t.Errorf("TickInterval() = %v, want 2s", cfg.TickInterval())
	}
	if cfg.Notify.Toast {
		t.Error("Notify.Toast should be false")
	}
	if cfg.Notify.Title != "Battery Full Alert" {
		t.Errorf("unset Notify.Title = %q, want default", cfg.Notify.Title)
	}
	if cfg.Metrics.Textfile != "/var/lib/node_exporter/battalert.prom" {
		t.Errorf("Metrics.Textfile = %q", cfg.Metrics.Textfile)
	}
	if !cfg.Debug() {
		t.Error("Debug() should be true for level=debug")
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	home := t.TempDir()
	t.Setenv(platform.HomeEnv, home)
	if err := os.WriteFile(filepath.Join(home, ConfigFile), []byte("[monitor\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig() should fail on malformed TOML")
	}
}

func TestSaveConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv(platform.HomeEnv, home)

	cfg := DefaultConfig()
	cfg.Monitor.Interval = "30s"
	path, err := SaveConfig(cfg)
	if err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}
	if path != filepath.Join(home, ConfigFile) {
		t.Errorf("SaveConfig() path = %q", path)
	}

	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if got.Monitor.Interval != "30s" {
		t.Errorf("Monitor.Interval = %q, want %q", got.Monitor.Interval, "30s")
	}
}

func TestLogFile(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.LogFile("/data"); got != filepath.Join("/data", "battalert.log") {
		t.Errorf("LogFile() = %q", got)
	}

	abs := filepath.Join(t.TempDir(), "x.log")
	cfg.Logging.File = abs
	if got := cfg.LogFile("/data"); got != abs {
		t.Errorf("LogFile() = %q, want %q", got, abs)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"5s", 5 * time.Second},
		{"1m30s", 90 * time.Second},
		{"", time.Minute},     // Default
		{"soon", time.Minute}, // Unparseable
		{"-5s", time.Minute},  // Non-positive
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseDuration(tt.input, time.Minute)
			if got != tt.want {
				t.Errorf("parseDuration(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTickInterval_Minimum(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Monitor.Interval = "10ms"
	if cfg.TickInterval() != time.Second {
		t.Errorf("TickInterval() = %v, want 1s floor", cfg.TickInterval())
	}
}
