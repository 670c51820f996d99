package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	testSoundCmd.Flags().DurationVar(&testFor, "for", 5*time.Second, "How long to let the sound play")
	rootCmd.AddCommand(testSoundCmd)
}

var testFor time.Duration

var testSoundCmd = &cobra.Command{
	Use:   "test-sound",
	Short: "Play the selected alert sound once",
	Args:  cobra.NoArgs,
	RunE:  runTestSound,
}

func runTestSound(cmd *cobra.Command, args []string) error {
	d, err := openDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.Monitor.TestSound(); err != nil {
		return err
	}
	fmt.Printf("Playing %s (Ctrl-C to stop)\n", d.Monitor.Settings().SoundName())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
	case <-time.After(testFor):
	}
	d.Monitor.StopSound()
	return nil
}
