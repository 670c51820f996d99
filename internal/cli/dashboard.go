package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
	"github.com/spf13/cobra"

	"github.com/battalert/battalert/internal/daemon"
	"github.com/battalert/battalert/internal/domain"
	"github.com/battalert/battalert/internal/monitor"
)

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"ui"},
	Short:   "Monitor the battery with an interactive terminal dashboard",
	Long: `Show the battery trend chart, charge and volume gauges and the sound
library while monitoring.

Keys:
  t          test the selected sound
  s          stop the sound
  + / -      volume up / down
  ] / [      alert percentage up / down
  j k ↑ ↓    move in the sound list
  enter      use the highlighted sound
  q          quit`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

const (
	volumeStep     = 0.1
	thresholdStep  = 5
	errorNoticeFor = 10 * time.Second
)

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := daemon.LoadConfig()
	if err != nil {
		return err
	}
	d, err := daemon.NewWithConfig(cfg)
	if err != nil {
		return err
	}
	defer d.Close()

	// The terminal belongs to the UI; logs go to the file only.
	logs := daemon.SetupLogging(cfg, d.Home, false)
	defer logs.Close()

	if err := ui.Init(); err != nil {
		return fmt.Errorf("init terminal UI: %w", err)
	}
	defer ui.Close()

	v := newDashboard(d)
	d.Notifier.SetBalloon(v)
	d.Monitor.SetReporter(v.reportError)
	d.Monitor.OnSnapshot(v.update)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go d.Health.Run(ctx)

	v.loadSounds()
	d.Monitor.Tick()

	uiEvents := ui.PollEvents()
	ticker := time.NewTicker(d.Monitor.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.Monitor.StopSound()
			return nil
		case e := <-uiEvents:
			if v.handle(e) {
				d.Monitor.StopSound()
				return nil
			}
		case <-ticker.C:
			d.Monitor.Tick()
		}
	}
}

// dashboard owns the widgets. All methods run on the event loop goroutine.
type dashboard struct {
	d *daemon.Daemon

	grid   *ui.Grid
	chart  *widgets.Plot
	info   *widgets.List
	sounds *widgets.List
	charge *widgets.Gauge
	volume *widgets.Gauge
	status *widgets.Paragraph

	soundFiles  []string
	notice      string
	noticeUntil time.Time
}

func newDashboard(d *daemon.Daemon) *dashboard {
	v := &dashboard{d: d}

	v.chart = widgets.NewPlot()
	v.chart.Title = "Battery (%)"
	v.chart.Data = [][]float64{chartSeries(nil)}
	v.chart.MaxVal = 100
	v.chart.AxesColor = ui.ColorWhite
	v.chart.LineColors[0] = ui.ColorGreen

	v.info = widgets.NewList()
	v.info.Title = "Status"

	v.sounds = widgets.NewList()
	v.sounds.Title = "Sounds (enter to use)"
	v.sounds.SelectedRowStyle = ui.NewStyle(ui.ColorBlack, ui.ColorCyan)

	v.charge = widgets.NewGauge()
	v.charge.Title = "Charge"

	v.volume = widgets.NewGauge()
	v.volume.Title = "Volume"
	v.volume.BarColor = ui.ColorBlue

	v.status = widgets.NewParagraph()
	v.status.Title = "t test  s stop  +/- volume  [/] alert at  q quit"

	v.grid = ui.NewGrid()
	w, h := ui.TerminalDimensions()
	v.grid.SetRect(0, 0, w, h)
	v.grid.Set(
		ui.NewRow(0.5, ui.NewCol(1.0, v.chart)),
		ui.NewRow(0.38,
			ui.NewCol(0.35, v.info),
			ui.NewCol(0.35, v.sounds),
			ui.NewCol(0.3,
				ui.NewRow(0.5, v.charge),
				ui.NewRow(0.5, v.volume),
			),
		),
		ui.NewRow(0.12, ui.NewCol(1.0, v.status)),
	)
	return v
}

// Show implements notify.Balloon.
func (v *dashboard) Show(title, message string, d time.Duration) {
	v.notice = fmt.Sprintf("%s: %s", title, message)
	v.noticeUntil = time.Now().Add(d)
}

func (v *dashboard) reportError(err error) {
	v.Show("Sound error", err.Error(), errorNoticeFor)
}

// update redraws everything from a monitor snapshot.
func (v *dashboard) update(s monitor.Snapshot) {
	v.chart.Data[0] = chartSeries(s.History)

	v.info.Rows = infoRows(s)

	v.charge.Percent = s.Reading.Percent
	v.charge.Label = fmt.Sprintf("%d%% %s", s.Reading.Percent, s.Reading.ChargingStatus())
	v.charge.BarColor = chargeColor(s)

	v.volume.Percent = volumePercent(s.Settings.Volume)

	if v.notice != "" && time.Now().After(v.noticeUntil) {
		v.notice = ""
	}
	v.status.Text = v.notice

	v.render()
}

func (v *dashboard) render() {
	ui.Render(v.grid)
}

func (v *dashboard) loadSounds() {
	files, err := v.d.Library.List()
	if err != nil {
		v.reportError(err)
		return
	}
	active := v.d.Monitor.Settings().SoundFile
	v.soundFiles = files
	v.sounds.Rows = make([]string, len(files))
	for i, f := range files {
		marker := "  "
		if f == active {
			marker = "* "
		}
		v.sounds.Rows[i] = marker + filepath.Base(f)
	}
	if v.sounds.SelectedRow >= len(files) {
		v.sounds.SelectedRow = 0
	}
}

// handle applies one UI event and reports whether to quit.
func (v *dashboard) handle(e ui.Event) bool {
	mon := v.d.Monitor
	switch e.ID {
	case "q", "<C-c>":
		return true
	case "t":
		if err := mon.TestSound(); err != nil {
			v.reportError(err)
		}
	case "s":
		mon.StopSound()
	case "+", "=":
		v.check(mon.SetVolume(mon.Settings().Volume + volumeStep))
	case "-":
		v.check(mon.SetVolume(mon.Settings().Volume - volumeStep))
	case "]":
		v.check(mon.SetAlertPercentage(nextThreshold(mon.Settings().AlertPercentage, thresholdStep)))
	case "[":
		v.check(mon.SetAlertPercentage(nextThreshold(mon.Settings().AlertPercentage, -thresholdStep)))
	case "j", "<Down>":
		if len(v.soundFiles) > 0 {
			v.sounds.ScrollDown()
		}
	case "k", "<Up>":
		if len(v.soundFiles) > 0 {
			v.sounds.ScrollUp()
		}
	case "<Enter>":
		v.useHighlighted()
	case "<Resize>":
		payload := e.Payload.(ui.Resize)
		v.grid.SetRect(0, 0, payload.Width, payload.Height)
		ui.Clear()
	default:
		return false
	}
	v.update(mon.Snapshot())
	return false
}

func (v *dashboard) useHighlighted() {
	if len(v.soundFiles) == 0 {
		v.Show("Sounds", "library is empty; add files with 'battalert sounds add'", errorNoticeFor)
		return
	}
	path := v.soundFiles[v.sounds.SelectedRow]
	if _, err := v.d.Library.Select(path); err != nil {
		v.reportError(err)
		return
	}
	v.d.Monitor.ReloadSettings()
	v.loadSounds()
	v.Show("Sound", filepath.Base(path)+" selected", 3*time.Second)
}

func (v *dashboard) check(err error) {
	if err != nil {
		v.Show("Error", err.Error(), errorNoticeFor)
	}
}

// ─── View Helpers ───────────────────────────────────────────────────────────

// chartSeries converts history into plot data. The plot widget needs at
// least two points, so short histories are padded.
func chartSeries(history []int) []float64 {
	switch len(history) {
	case 0:
		return []float64{0, 0}
	case 1:
		return []float64{float64(history[0]), float64(history[0])}
	}
	out := make([]float64, len(history))
	for i, p := range history {
		out[i] = float64(p)
	}
	return out
}

func infoRows(s monitor.Snapshot) []string {
	battery := describeReading(s.Reading, s.BatteryErr)
	if !s.HasReading && s.BatteryErr == nil {
		battery = "waiting for first reading"
	} else if s.BatteryErr != nil && errors.Is(s.BatteryErr, domain.ErrNoBattery) {
		battery = "no battery found"
	}

	alert := "idle"
	if s.State.Firing() {
		alert = "FIRING"
	}

	return []string{
		"Battery:   " + battery,
		fmt.Sprintf("Alert at:  %d%%", s.Settings.AlertPercentage),
		"Alert:     " + alert,
		"Sound:     " + s.Settings.SoundName(),
		"Playing:   " + yesNo(s.SoundOn),
		"Testing:   " + yesNo(s.State.TestingSound),
		"Updated:   " + s.At.Format("15:04:05"),
	}
}

func chargeColor(s monitor.Snapshot) ui.Color {
	switch {
	case s.State.Firing():
		return ui.ColorRed
	case s.Reading.Percent >= s.Settings.AlertPercentage:
		return ui.ColorYellow
	default:
		return ui.ColorGreen
	}
}

// nextThreshold steps p by delta within the accepted range.
func nextThreshold(p, delta int) int {
	return min(domain.MaxAlertPercentage, max(domain.MinAlertPercentage, p+delta))
}
