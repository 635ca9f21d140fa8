package main

import (
	"context"
	"fmt"

	"github.com/sopheara/klyr/internal/shared"
	"github.com/urfave/cli/v3"
)

// ThemeShow prints the active theme.
func (r *Runner) ThemeShow(ctx context.Context, cmd *cli.Command) error {
	if r.theme == nil {
		return fmt.Errorf("%w: preferences database unavailable", shared.ErrStoreUnavailable)
	}

	return r.writePlain("Theme: %s\n", r.theme.Current())
}

// ThemeToggle flips between light and dark and persists the choice.
func (r *Runner) ThemeToggle(ctx context.Context, cmd *cli.Command) error {
	if r.theme == nil {
		return fmt.Errorf("%w: preferences database unavailable", shared.ErrStoreUnavailable)
	}

	next := r.theme.Toggle()
	r.logger.Info("theme changed", "theme", next)
	return r.writePlain("Theme: %s\n", next)
}

func themeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "theme",
		Usage: "Show or toggle the color theme",
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Print the active theme",
				Action: r.ThemeShow,
			},
			{
				Name:   "toggle",
				Usage:  "Switch between light and dark",
				Action: r.ThemeToggle,
			},
		},
	}
}
