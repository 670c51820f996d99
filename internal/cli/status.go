package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/battalert/battalert/internal/domain"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the battery reading and alert settings",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	d, err := openDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	s, err := d.DB.LoadSettings()
	if err != nil {
		return err
	}
	r, readErr := d.Battery.Read()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Battery:\t%s\n", describeReading(r, readErr))
	fmt.Fprintf(w, "Alert at:\t%d%%\n", s.AlertPercentage)
	fmt.Fprintf(w, "Sound:\t%s\n", s.SoundName())
	fmt.Fprintf(w, "Volume:\t%d%%\n", volumePercent(s.Volume))
	fmt.Fprintf(w, "Would alert:\t%s\n", yesNo(readErr == nil && domain.AlertCondition(r, s.AlertPercentage)))
	fmt.Fprintf(w, "Data dir:\t%s\n", d.Home)
	return w.Flush()
}
