package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func init() {
	soundsAddCmd.Flags().BoolVar(&addUse, "use", false, "Select the sound after importing it")
	soundsCmd.AddCommand(soundsListCmd, soundsAddCmd, soundsUseCmd, soundsRmCmd)
	rootCmd.AddCommand(soundsCmd)
}

var addUse bool

var soundsCmd = &cobra.Command{
	Use:   "sounds",
	Short: "Manage the alert sound library",
}

var soundsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List sounds in the library",
	Args:    cobra.NoArgs,
	RunE:    runSoundsList,
}

var soundsAddCmd = &cobra.Command{
	Use:   "add FILE",
	Short: "Copy an .mp3 or .wav file into the library",
	Args:  cobra.ExactArgs(1),
	RunE:  runSoundsAdd,
}

var soundsUseCmd = &cobra.Command{
	Use:   "use NAME",
	Short: "Select the alert sound",
	Args:  cobra.ExactArgs(1),
	RunE:  runSoundsUse,
}

var soundsRmCmd = &cobra.Command{
	Use:     "rm NAME",
	Aliases: []string{"delete"},
	Short:   "Delete a sound from the library",
	Args:    cobra.ExactArgs(1),
	RunE:    runSoundsRm,
}

func runSoundsList(cmd *cobra.Command, args []string) error {
	d, err := openDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	files, err := d.Library.List()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("No sounds yet. Run 'battalert sounds add <file>' to import one.")
		return nil
	}

	active, err := d.Library.Active()
	if err != nil {
		return err
	}
	for _, f := range files {
		marker := " "
		if f == active {
			marker = "*"
		}
		fmt.Printf("%s %s\n", marker, filepath.Base(f))
	}
	return nil
}

func runSoundsAdd(cmd *cobra.Command, args []string) error {
	d, err := openDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	dst, err := d.Library.Import(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Added %s\n", filepath.Base(dst))

	if addUse {
		if _, err := d.Library.Select(dst); err != nil {
			return err
		}
		fmt.Printf("Selected %s\n", filepath.Base(dst))
	}
	return nil
}

func runSoundsUse(cmd *cobra.Command, args []string) error {
	d, err := openDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	path, err := d.Library.Select(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Selected %s\n", filepath.Base(path))
	return nil
}

func runSoundsRm(cmd *cobra.Command, args []string) error {
	d, err := openDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	cleared, err := d.Library.Delete(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Removed %s\n", args[0])
	if cleared {
		fmt.Println("It was the selected sound; alerts are now notification-only.")
	}
	return nil
}
