package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/sopheara/klyr/internal/models"
	"github.com/sopheara/klyr/internal/repositories"
	"github.com/sopheara/klyr/internal/services"
	"github.com/sopheara/klyr/internal/session"
	"github.com/sopheara/klyr/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	service := services.NewHTTPService(services.HTTPServiceOpts{
		BaseURL:           config.Store.BaseURL,
		Timeout:           time.Duration(config.Store.TimeoutSeconds) * time.Second,
		RequestsPerSecond: config.Store.RequestsPerSecond,
	})

	opts := RunnerOpts{
		Config:  config,
		Service: service,
		Logger:  logger,
	}

	// Preferences live in a local sqlite file; session and theme state
	// survive restarts through it. Commands degrade to an unauthenticated
	// session when the database cannot be opened.
	if db, err := shared.NewDatabase(config.Database.Path); err == nil {
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		if err := shared.RunMigrations(db); err != nil {
			logger.Warn("failed to run migrations", "error", err)
		} else {
			prefs := repositories.NewPrefRepository(db)
			creds := models.Credentials{Username: config.Auth.Username, Password: config.Auth.Password}
			sess := session.NewManager(prefs, creds, logger)
			sess.Initialize()
			theme := session.NewThemeController(prefs)
			theme.Initialize()

			opts.Prefs = prefs
			opts.Sess = sess
			opts.Theme = theme
		}
	} else {
		logger.Warn("failed to open preferences database", "error", err)
	}

	runner := NewRunner(opts)
	app := newApp(runner)

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}

func newApp(runner *Runner) *cli.Command {
	return &cli.Command{
		Name:     "klyr",
		Usage:    "Personal Khmer lyrics collection",
		Version:  "0.3.0",
		Commands: runner.register(),
	}
}
