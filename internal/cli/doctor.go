package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run health checks against the local installation",
	Args:  cobra.NoArgs,
	RunE:  runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	d, err := openDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	statuses := d.Health.RunOnce(context.Background())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CHECK\tSTATUS\tDETAIL")
	failed := 0
	for _, s := range statuses {
		status, detail := "ok", ""
		if s.Recovered {
			detail = "repaired"
		}
		if !s.Healthy {
			status, detail = "FAIL", s.Error
			failed++
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.Name, status, detail)
	}

	// Absence of a battery is tolerated, so it is reported but not failed.
	r, readErr := d.Battery.Read()
	batteryStatus := "ok"
	if readErr != nil {
		batteryStatus = "warn"
	}
	fmt.Fprintf(w, "battery\t%s\t%s\n", batteryStatus, describeReading(r, readErr))
	if err := w.Flush(); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d health check(s) failed", failed)
	}
	return nil
}
