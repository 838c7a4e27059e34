package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/recera/panzoom/cmd/panzoom/internal/ui"
	"github.com/spf13/cobra"
)

const debugLogFile = "panzoom-debug.log"

func newViewCommand(flags *rootFlags) *cobra.Command {
	var noWatch bool

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Open a file in the terminal viewer",
		Long: `Opens a text file (or a built-in sample diagram) in a full-screen
viewer. Scroll to zoom toward the pointer, drag to pan, esc to close.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}

			opts := ui.RunOptions{
				Title:  "sample",
				Lines:  ui.SampleContent(),
				Config: cfg,
			}
			if len(args) == 1 {
				data, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", args[0], err)
				}
				opts.Title = filepath.Base(args[0])
				opts.Lines = ui.SplitContent(string(data))
			}
			if !noWatch {
				opts.ConfigPath = flags.configPath
			}
			if flags.debug {
				opts.DebugLog = debugLogFile
			}

			return ui.RunViewer(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload the config file when it changes")

	return cmd
}
