// Package monitor implements the battery polling and full-charge alert loop.
//
// Every tick samples the battery, appends to the trend history, re-reads the
// settings and evaluates the alert condition (plugged in and at or above the
// threshold). The first tick of an alert period shows one notification and
// starts the looping alert sound; the first tick after it stops the sound
// unless a manual test is playing.
//
// A Monitor is not safe for concurrent use. Ticks and user commands must come
// from one goroutine: Run for headless use, or the caller's own event loop.
package monitor

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/battalert/battalert/internal/domain"
	"github.com/battalert/battalert/internal/infra/metrics"
)

// Config controls monitor behavior.
type Config struct {
	Interval    time.Duration // Tick period (default: 5s)
	HistorySize int           // Readings kept for the chart (default: 50)
	Title       string        // Notification title
	LogTicks    bool          // Log every reading, not just transitions
}

// DefaultConfig returns the standard 5-second loop.
func DefaultConfig() Config {
	return Config{
		Interval:    5 * time.Second,
		HistorySize: HistorySize,
		Title:       "Battery Full Alert",
	}
}

// State is the transient alert state. It is never persisted and starts
// clear on every process start.
type State struct {
	Playing           bool   `json:"playing"`
	NotificationShown bool   `json:"notification_shown"`
	TestingSound      bool   `json:"testing_sound"`
	AlertID           string `json:"alert_id,omitempty"`
	PlaybackFailed    bool   `json:"playback_failed"`
}

// Firing reports whether an alert period is in progress.
func (s State) Firing() bool { return s.NotificationShown }

// Snapshot is what observers receive after every tick.
type Snapshot struct {
	At         time.Time       `json:"at"`
	Reading    domain.Reading  `json:"reading"`
	HasReading bool            `json:"has_reading"`
	BatteryErr error           `json:"-"`
	History    []int           `json:"history"`
	Settings   domain.Settings `json:"settings"`
	State      State           `json:"state"`
	SoundOn    bool            `json:"sound_on"`
}

// Monitor owns the alert state machine.
type Monitor struct {
	cfg      Config
	store    domain.SettingsStore
	source   domain.BatterySource
	player   domain.SoundPlayer
	notifier domain.Notifier

	history    *History
	settings   domain.Settings
	state      State
	last       domain.Reading
	hasReading bool
	lastErr    error

	observers []func(Snapshot)
	report    func(error)
	now       func() time.Time
	newID     func() string
}

// New creates a monitor and loads the persisted settings. A settings load
// failure is returned: the monitor cannot run without them.
func New(cfg Config, store domain.SettingsStore, source domain.BatterySource,
	player domain.SoundPlayer, notifier domain.Notifier) (*Monitor, error) {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	if cfg.Title == "" {
		cfg.Title = DefaultConfig().Title
	}

	settings, err := store.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	player.SetVolume(settings.Volume)

	m := &Monitor{
		cfg:      cfg,
		store:    store,
		source:   source,
		player:   player,
		notifier: notifier,
		history:  NewHistory(cfg.HistorySize),
		settings: settings,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	m.report = m.logError
	metrics.AlertThreshold.Set(float64(settings.AlertPercentage))
	return m, nil
}

// Interval returns the tick period.
func (m *Monitor) Interval() time.Duration { return m.cfg.Interval }

// OnSnapshot registers fn to be called at the end of every tick.
func (m *Monitor) OnSnapshot(fn func(Snapshot)) {
	m.observers = append(m.observers, fn)
}

// SetReporter sets where playback failures raised by the loop are shown.
func (m *Monitor) SetReporter(fn func(error)) {
	if fn == nil {
		fn = m.logError
	}
	m.report = fn
}

// Run ticks immediately and then every Interval until ctx is cancelled.
// On return the ticker is stopped and any sound is silenced.
func (m *Monitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	log.Printf("[monitor] polling every %s (alert at %d%%)", m.cfg.Interval, m.settings.AlertPercentage)
	m.Tick()

	for {
		select {
		case <-ctx.Done():
			m.StopSound()
			return nil
		case <-ticker.C:
			m.Tick()
		}
	}
}

// Tick performs one evaluation of battery state.
func (m *Monitor) Tick() {
	r, err := m.source.Read()
	if err != nil {
		m.skip(err)
		return
	}
	if m.lastErr != nil {
		log.Printf("[monitor] battery readable again")
		m.lastErr = nil
	}

	m.last, m.hasReading = r, true
	m.history.Push(r.Percent)
	m.refreshSettings()

	if m.cfg.LogTicks {
		log.Printf("[monitor] battery %s, threshold %d%%", r, m.settings.AlertPercentage)
	}

	if domain.AlertCondition(r, m.settings.AlertPercentage) {
		m.onAlert(r)
	} else {
		m.onClear()
	}

	metrics.Ticks.WithLabelValues("ok").Inc()
	metrics.BatteryPercent.Set(float64(r.Percent))
	metrics.PluggedIn.Set(metrics.Bool(r.PluggedIn))
	metrics.HistoryLength.Set(float64(m.history.Len()))
	m.publish()
}

// Snapshot returns the current view of the monitor.
func (m *Monitor) Snapshot() Snapshot {
	return Snapshot{
		At:         m.now(),
		Reading:    m.last,
		HasReading: m.hasReading,
		BatteryErr: m.lastErr,
		History:    m.history.Values(),
		Settings:   m.settings,
		State:      m.state,
		SoundOn:    m.player.IsPlaying(),
	}
}

// skip leaves all state untouched; the error is logged once per change.
func (m *Monitor) skip(err error) {
	if m.lastErr == nil || m.lastErr.Error() != err.Error() {
		log.Printf("[monitor] battery unavailable, skipping: %v", err)
	}
	m.lastErr = err
	metrics.Ticks.WithLabelValues("skipped").Inc()
	m.publish()
}

func (m *Monitor) onAlert(r domain.Reading) {
	if !m.state.NotificationShown {
		m.state.AlertID = m.newID()
		log.Printf("[monitor] alert %s: battery at %d%% (threshold %d%%)",
			m.state.AlertID, r.Percent, m.settings.AlertPercentage)
		m.notifier.Notify(m.cfg.Title,
			fmt.Sprintf("Battery at %d%%. Please unplug the charger.", r.Percent))
		m.state.NotificationShown = true
		metrics.AlertPeriods.Inc()
	}
	if !m.state.Playing {
		m.playAlert()
	}
	metrics.AlertFiring.Set(1)
}

func (m *Monitor) onClear() {
	if m.state.NotificationShown {
		log.Printf("[monitor] alert %s cleared", m.state.AlertID)
	}
	m.state.NotificationShown = false
	m.state.PlaybackFailed = false
	m.state.AlertID = ""
	if !m.state.TestingSound {
		m.StopSound()
	}
	metrics.AlertFiring.Set(0)
}

// playAlert starts the looping alert sound. Without a selected sound the
// alert is notification-only.
func (m *Monitor) playAlert() {
	if m.settings.SoundFile == "" {
		return
	}
	if err := m.player.Play(m.settings.SoundFile, true); err != nil {
		m.state.Playing = false
		metrics.PlaybackErrors.Inc()
		if !m.state.PlaybackFailed {
			m.state.PlaybackFailed = true
			m.report(err)
		}
		return
	}
	m.state.Playing = true
	metrics.SoundPlaying.Set(1)
}

// refreshSettings re-reads the store so changes made elsewhere take effect
// within one tick. The last known settings are kept on error.
func (m *Monitor) refreshSettings() {
	s, err := m.store.LoadSettings()
	if err != nil {
		log.Printf("[monitor] reload settings: %v (keeping previous)", err)
		return
	}
	if s.Volume != m.settings.Volume {
		m.player.SetVolume(s.Volume)
	}
	m.settings = s
	metrics.AlertThreshold.Set(float64(s.AlertPercentage))
}

func (m *Monitor) publish() {
	if len(m.observers) == 0 {
		return
	}
	snap := m.Snapshot()
	for _, fn := range m.observers {
		fn(snap)
	}
}

func (m *Monitor) logError(err error) {
	log.Printf("[monitor] %v", err)
}
