package daemon

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/battalert/battalert/internal/app/sounds"
	"github.com/battalert/battalert/internal/health"
	"github.com/battalert/battalert/internal/infra/battery"
	"github.com/battalert/battalert/internal/infra/metrics"
	"github.com/battalert/battalert/internal/infra/notify"
	"github.com/battalert/battalert/internal/infra/sound"
	"github.com/battalert/battalert/internal/infra/sqlite"
	"github.com/battalert/battalert/internal/monitor"
)

// Daemon is the battalert runtime. It wires together all services.
type Daemon struct {
	Config   Config
	Home     string
	DB       *sqlite.DB
	Library  *sounds.Library
	Battery  *battery.Source
	Player   *sound.Player
	Notifier *notify.Notifier
	Monitor  *monitor.Monitor
	Health   *health.Checker
	cancel   context.CancelFunc
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration. Failing to
// open the settings database is fatal.
func NewWithConfig(cfg Config) (*Daemon, error) {
	home, err := Home()
	if err != nil {
		return nil, err
	}

	db, err := sqlite.Open(home)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	d := &Daemon{
		Config:  cfg,
		Home:    home,
		DB:      db,
		Library: sounds.NewLibrary(home, db),
		Battery: battery.NewSource(),
		Player:  sound.NewPlayer(sound.NewSpeaker(cfg.Sound.SampleRate)),
		Notifier: notify.New(notify.Options{
			Icon:     cfg.Notify.Icon,
			Duration: cfg.BalloonDuration(),
			Toast:    cfg.Notify.Toast,
		}, notify.TerminalBalloon{W: os.Stderr}),
	}

	monCfg := monitor.DefaultConfig()
	monCfg.Interval = cfg.TickInterval()
	monCfg.LogTicks = cfg.Debug()
	if cfg.Notify.Title != "" {
		monCfg.Title = cfg.Notify.Title
	}
	d.Monitor, err = monitor.New(monCfg, db, d.Battery, d.Player, d.Notifier)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	d.Monitor.SetReporter(func(err error) {
		d.Notifier.Notify("Sound error", err.Error())
	})
	if cfg.Metrics.Textfile != "" {
		d.Monitor.OnSnapshot(d.exportMetrics)
	}

	d.Health = health.NewChecker(db, d.Library.Dir(), cfg.HealthInterval())

	return d, nil
}

// Serve runs the headless monitor and blocks until ctx is cancelled or a
// termination signal arrives.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	defer cancel()

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			log.Printf("[daemon] %s received, shutting down", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	go d.Health.Run(ctx)

	s := d.Monitor.Settings()
	fmt.Printf("battalert monitoring every %s (alert at %d%%, sound: %s)\n",
		d.Monitor.Interval(), s.AlertPercentage, s.SoundName())
	if d.Config.Metrics.Textfile != "" {
		fmt.Printf("  Metrics: %s\n", d.Config.Metrics.Textfile)
	}

	return d.Monitor.Run(ctx)
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.Player != nil {
		d.Player.Stop()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}

// exportMetrics rewrites the Prometheus textfile after each tick.
func (d *Daemon) exportMetrics(monitor.Snapshot) {
	if err := metrics.WriteTextfile(d.Config.Metrics.Textfile); err != nil {
		log.Printf("[daemon] write metrics: %v", err)
	}
}
