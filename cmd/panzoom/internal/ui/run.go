package ui

import (
	"context"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/recera/panzoom/cmd/panzoom/internal/config"
	"github.com/recera/panzoom/pkg/debug"
)

// RunOptions configures RunViewer.
type RunOptions struct {
	Title      string
	Lines      []string
	Config     *config.Config
	ConfigPath string

	// DebugLog, when set, receives the debug hooks and the standard log.
	DebugLog string
}

// RunViewer runs the viewer until the user quits. When ConfigPath is set the
// file is watched and changes are applied to the running viewer.
func RunViewer(ctx context.Context, opts RunOptions) error {
	if opts.DebugLog != "" {
		f, err := tea.LogToFile(opts.DebugLog, "panzoom")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
		debug.EnableLogging(nil)
		defer debug.DisableLogging()
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	m := NewModel(opts.Title, opts.Lines, cfg.ViewportOptions())
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	if opts.ConfigPath != "" {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			err := config.Watch(watchCtx, opts.ConfigPath, func(c *config.Config) {
				p.Send(ConfigMsg{Options: c.ViewportOptions()})
			})
			if err != nil {
				log.Printf("[Viewer] Config watch stopped: %v", err)
			}
		}()
	}

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}
