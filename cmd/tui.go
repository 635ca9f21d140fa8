package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sopheara/klyr/internal/shared"
	"github.com/sopheara/klyr/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive collection browser.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.sess == nil || r.theme == nil {
		return fmt.Errorf("%w: preferences database not initialized, run 'klyr setup'", shared.ErrStoreUnavailable)
	}
	if r.lib == nil {
		return fmt.Errorf("%w: song store not configured", shared.ErrStoreUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/klyr-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.lib, r.sess, r.theme, fileLogger)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"ui"},
		Usage:   "Browse the collection interactively",
		Action:  r.TUI,
	}
}
