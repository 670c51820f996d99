package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	settingsSetCmd.Flags().Float64Var(&setVolume, "volume", 0, "Playback volume from 0.0 to 1.0")
	settingsSetCmd.Flags().IntVar(&setAlertPercentage, "alert-percentage", 0, "Alert threshold from 10 to 100")
	settingsSetCmd.Flags().StringVar(&setSound, "sound", "", "Sound file from the library, or \"\" for none")
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

var (
	setVolume          float64
	setAlertPercentage int
	setSound           string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the persisted alert settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change alert settings",
	Long: `Change one or more alert settings. Each value is saved immediately and
picked up by a running monitor on its next tick.`,
	Example: `  battalert settings set --alert-percentage 85
  battalert settings set --volume 0.4 --sound chime.wav`,
	Args: cobra.NoArgs,
	RunE: runSettingsSet,
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	d, err := openDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	s, err := d.DB.LoadSettings()
	if err != nil {
		return err
	}
	fmt.Printf("Sound file:        %s\n", s.SoundName())
	fmt.Printf("Volume:            %d%%\n", volumePercent(s.Volume))
	fmt.Printf("Alert percentage:  %d%%\n", s.AlertPercentage)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if !flags.Changed("volume") && !flags.Changed("alert-percentage") && !flags.Changed("sound") {
		return fmt.Errorf("nothing to set: pass --volume, --alert-percentage or --sound")
	}

	d, err := openDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	if flags.Changed("alert-percentage") {
		if err := d.Monitor.SetAlertPercentage(setAlertPercentage); err != nil {
			return err
		}
		fmt.Printf("Alert percentage set to %d%%\n", setAlertPercentage)
	}
	if flags.Changed("volume") {
		if err := d.Monitor.SetVolume(setVolume); err != nil {
			return err
		}
		fmt.Printf("Volume set to %d%%\n", volumePercent(setVolume))
	}
	if flags.Changed("sound") {
		if setSound == "" {
			if err := d.DB.SetSoundFile(""); err != nil {
				return err
			}
			fmt.Println("Sound cleared; alerts will be notification-only")
		} else {
			path, err := d.Library.Select(setSound)
			if err != nil {
				return err
			}
			fmt.Printf("Sound set to %s\n", path)
		}
	}
	return nil
}
