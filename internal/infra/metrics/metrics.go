// Package metrics provides Prometheus collectors for battalert.
// There is no HTTP endpoint; WriteTextfile dumps the registry for the
// node_exporter textfile collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Battery ────────────────────────────────────────────────────────────────

// BatteryPercent tracks the last sampled charge level.
var BatteryPercent = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "battalert",
	Name:      "battery_percent",
	Help:      "Last sampled battery charge percentage.",
})

// PluggedIn tracks AC state (1=plugged in, 0=on battery).
var PluggedIn = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "battalert",
	Name:      "plugged_in",
	Help:      "Whether AC power was connected at the last sample (1=yes).",
})

// HistoryLength tracks how many readings the trend buffer holds.
var HistoryLength = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "battalert",
	Name:      "history_length",
	Help:      "Number of readings held in the in-memory history.",
})

// Ticks counts monitor ticks by result (ok, skipped).
var Ticks = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "battalert",
	Name:      "ticks_total",
	Help:      "Monitor ticks by result.",
}, []string{"result"})

// ─── Alerting ───────────────────────────────────────────────────────────────

// AlertThreshold tracks the configured alert percentage.
var AlertThreshold = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "battalert",
	Name:      "alert_threshold_percent",
	Help:      "Configured full-charge alert percentage.",
})

// AlertFiring is 1 while the alert condition holds.
var AlertFiring = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "battalert",
	Name:      "alert_firing",
	Help:      "Whether the full-charge alert condition currently holds (1=yes).",
})

// AlertPeriods counts distinct alert periods.
var AlertPeriods = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "battalert",
	Name:      "alert_periods_total",
	Help:      "Number of contiguous alert periods started.",
})

// Notifications counts delivered notifications by channel (toast, balloon).
var Notifications = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "battalert",
	Name:      "notifications_total",
	Help:      "Notifications delivered by channel.",
}, []string{"channel"})

// ─── Sound ──────────────────────────────────────────────────────────────────

// SoundPlaying is 1 while the player is active.
var SoundPlaying = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "battalert",
	Name:      "sound_playing",
	Help:      "Whether a sound is currently playing (1=yes).",
})

// PlaybackErrors counts failed playback attempts.
var PlaybackErrors = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "battalert",
	Name:      "playback_errors_total",
	Help:      "Failed attempts to start sound playback.",
})

// ─── Health ─────────────────────────────────────────────────────────────────

// HealthCheckStatus tracks health check results (1=healthy, 0=unhealthy).
var HealthCheckStatus = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "battalert",
	Name:      "health_check_status",
	Help:      "Health check result per component (1=healthy, 0=unhealthy).",
}, []string{"check"})

// HealthRecoveries tracks auto-recovery attempts.
var HealthRecoveries = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "battalert",
	Name:      "health_recoveries_total",
	Help:      "Total auto-recovery attempts per check.",
}, []string{"check"})

// ─── Export ─────────────────────────────────────────────────────────────────

// WriteTextfile writes every registered metric to path in the text
// exposition format. The file is replaced atomically.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}

// Bool converts a flag to a gauge value.
func Bool(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
