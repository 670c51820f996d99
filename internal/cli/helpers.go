package cli

import (
	"fmt"
	"math"

	"github.com/battalert/battalert/internal/daemon"
	"github.com/battalert/battalert/internal/domain"
)

// openDaemon loads config and wires the runtime for one-shot commands.
// These never toast: output goes to the terminal.
func openDaemon() (*daemon.Daemon, error) {
	cfg, err := daemon.LoadConfig()
	if err != nil {
		return nil, err
	}
	cfg.Notify.Toast = false
	return daemon.NewWithConfig(cfg)
}

// volumePercent renders a [0,1] volume as a whole percentage.
func volumePercent(v float64) int {
	return int(math.Round(domain.ClampVolume(v) * 100))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// describeReading formats a sample or the reason there is none.
func describeReading(r domain.Reading, err error) string {
	if err != nil {
		return fmt.Sprintf("unavailable (%v)", err)
	}
	return fmt.Sprintf("%d%% (%s)", r.Percent, r.ChargingStatus())
}
