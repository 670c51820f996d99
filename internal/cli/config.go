package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/battalert/battalert/internal/daemon"
)

func init() {
	configCmd.Flags().BoolVar(&configWrite, "write", false, "Write the effective config to config.toml")
	rootCmd.AddCommand(configCmd)
}

var configWrite bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := daemon.LoadConfig()
	if err != nil {
		return err
	}

	if configWrite {
		path, err := daemon.SaveConfig(cfg)
		if err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	}

	path, err := daemon.ConfigPath()
	if err != nil {
		return err
	}
	fmt.Printf("# %s\n", path)
	return toml.NewEncoder(os.Stdout).Encode(cfg)
}
