package main

import (
	"fmt"
	"os"

	"github.com/recera/panzoom/cmd/panzoom/internal/config"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-preview"
	commit  = "dev"
	date    = "unknown"
)

// rootFlags are shared by every subcommand.
type rootFlags struct {
	configPath string
	debug      bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	var rootCmd = &cobra.Command{
		Use:   "panzoom",
		Short: "Panzoom - pan and zoom viewer",
		Long: `Panzoom hosts a pan/zoom viewport over a piece of content: in the
terminal with "panzoom view", or for browser clients over a live
WebSocket session with "panzoom serve".`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", config.FileName, "Path to the config file")
	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "Enable debug logging")

	// Add commands
	rootCmd.AddCommand(newViewCommand(flags))
	rootCmd.AddCommand(newServeCommand(flags))

	return rootCmd
}

// loadConfig reads the config file named by --config. A missing file yields
// the defaults.
func (f *rootFlags) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", f.configPath, err)
	}
	return cfg, nil
}
