// Package health provides periodic health checks with auto-recovery.
package health

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/battalert/battalert/internal/domain"
	"github.com/battalert/battalert/internal/infra/metrics"
	"github.com/battalert/battalert/internal/infra/sound"
)

// DefaultInterval is the time between check rounds.
const DefaultInterval = 60 * time.Second

// Check defines a single health check with optional recovery action.
type Check struct {
	Name      string
	CheckFn   func(ctx context.Context) error
	RecoverFn func(ctx context.Context) error
}

// Status represents the result of a health check.
type Status struct {
	Name      string    `json:"name"`
	Healthy   bool      `json:"healthy"`
	Error     string    `json:"error,omitempty"`
	Recovered bool      `json:"recovered,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// Store is the part of the settings database the checks use.
type Store interface {
	Ping() error
	LoadSettings() (domain.Settings, error)
}

// Checker runs periodic health checks with auto-recovery.
type Checker struct {
	mu       sync.RWMutex
	checks   []Check
	statuses []Status
	interval time.Duration
}

// NewChecker creates a health checker with the standard checks.
func NewChecker(store Store, soundsDir string, interval time.Duration) *Checker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Checker{
		interval: interval,
		checks: []Check{
			{
				Name: "sqlite",
				CheckFn: func(ctx context.Context) error {
					return store.Ping()
				},
			},
			{
				Name: "sounds_dir",
				CheckFn: func(ctx context.Context) error {
					return checkSoundsDir(soundsDir)
				},
				RecoverFn: func(ctx context.Context) error {
					return os.MkdirAll(soundsDir, 0o755)
				},
			},
			{
				Name: "sound_file",
				CheckFn: func(ctx context.Context) error {
					s, err := store.LoadSettings()
					if err != nil {
						return fmt.Errorf("load settings: %w", err)
					}
					return checkSoundFile(s.SoundFile)
				},
			},
		},
	}
}

// Run starts the health check loop. Call in a goroutine.
func (c *Checker) Run(ctx context.Context) {
	c.RunOnce(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.RunOnce(ctx)
		}
	}
}

// RunOnce executes every check once and returns the results. A failing
// check with a recovery action is re-checked after recovery.
func (c *Checker) RunOnce(ctx context.Context) []Status {
	statuses := make([]Status, len(c.checks))
	for i, check := range c.checks {
		s := Status{
			Name:      check.Name,
			CheckedAt: time.Now(),
		}
		err := check.CheckFn(ctx)
		if err != nil && check.RecoverFn != nil {
			if rerr := check.RecoverFn(ctx); rerr == nil {
				metrics.HealthRecoveries.WithLabelValues(check.Name).Inc()
				if err = check.CheckFn(ctx); err == nil {
					s.Recovered = true
					log.Printf("[health] %s recovered", check.Name)
				}
			}
		}
		if err != nil {
			s.Error = err.Error()
			log.Printf("[health] %s: %v", check.Name, err)
		} else {
			s.Healthy = true
		}
		metrics.HealthCheckStatus.WithLabelValues(check.Name).Set(metrics.Bool(s.Healthy))
		statuses[i] = s
	}

	c.mu.Lock()
	c.statuses = statuses
	c.mu.Unlock()

	out := make([]Status, len(statuses))
	copy(out, statuses)
	return out
}

// Statuses returns the latest health check results.
func (c *Checker) Statuses() []Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]Status, len(c.statuses))
	copy(result, c.statuses)
	return result
}

// IsHealthy returns true if all checks pass.
func (c *Checker) IsHealthy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, s := range c.statuses {
		if !s.Healthy {
			return false
		}
	}
	return true
}

// ─── Check Implementations ──────────────────────────────────────────────────

func checkSoundsDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("check sounds dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("sounds path %s is not a directory", dir)
	}
	return nil
}

// checkSoundFile passes when no sound is selected: the alert is then
// notification-only, which is a valid configuration.
func checkSoundFile(path string) error {
	err := sound.CheckFile(path)
	if errors.Is(err, domain.ErrNoSoundSelected) {
		return nil
	}
	return err
}
