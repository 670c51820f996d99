package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/battalert/battalert/internal/daemon"
)

func init() {
	runCmd.Flags().DurationVar(&runInterval, "interval", 0, "Polling interval (overrides config)")
	runCmd.Flags().BoolVar(&runNoToast, "no-toast", false, "Skip OS notifications and print alerts to the terminal")
	rootCmd.AddCommand(runCmd)
}

var (
	runInterval time.Duration
	runNoToast  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Monitor the battery in the foreground without a UI",
	Long: `Poll the battery every few seconds and raise the full-charge alert.
Stops on Ctrl-C or SIGTERM.`,
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := daemon.LoadConfig()
	if err != nil {
		return err
	}

	// Override config from flags
	if runInterval > 0 {
		cfg.Monitor.Interval = runInterval.String()
	}
	if runNoToast {
		cfg.Notify.Toast = false
	}

	d, err := daemon.NewWithConfig(cfg)
	if err != nil {
		return err
	}
	defer d.Close()

	logs := daemon.SetupLogging(cfg, d.Home, true)
	defer logs.Close()

	return d.Serve(context.Background())
}
