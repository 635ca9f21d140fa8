package main

import (
	"context"
	"fmt"

	"github.com/sopheara/klyr/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin checks the provided credentials against the configured pair and
// persists the session flag on success. With --remember the pair is also
// saved for pre-filling later logins.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if r.sess == nil {
		return fmt.Errorf("%w: preferences database unavailable", shared.ErrStoreUnavailable)
	}

	username := cmd.StringArg("username")
	password := cmd.StringArg("password")
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", shared.ErrMissingArgument)
	}

	if !r.sess.Login(username, password, cmd.Bool("remember")) {
		return fmt.Errorf("%w: invalid username or password", shared.ErrInvalidCredentials)
	}

	r.logger.Info("signed in", "user", username)
	return r.writePlain("✓ Signed in\n")
}

// AuthLogout clears the session flag. A saved login pair is kept so the next
// sign-in can be pre-filled.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if r.sess == nil {
		return fmt.Errorf("%w: preferences database unavailable", shared.ErrStoreUnavailable)
	}

	r.sess.Logout()
	return r.writePlain("✓ Signed out\n")
}

// AuthStatus reports the current session state.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if r.sess == nil {
		return fmt.Errorf("%w: preferences database unavailable", shared.ErrStoreUnavailable)
	}

	if r.sess.IsAuthenticated() {
		r.writePlain("Session: ✓ Signed in\n")
	} else {
		r.writePlain("Session: ✗ Signed out\n")
	}

	if saved, ok := r.sess.SavedLogin(); ok {
		r.writePlain("Saved login: %s\n", saved.Username)
	}
	return nil
}

func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the local session",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Sign in with a username and password",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "username"},
					&cli.StringArg{Name: "password"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "remember",
						Aliases: []string{"r"},
						Usage:   "Save the login pair for next time",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Sign out of the current session",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Show session state",
				Action: r.AuthStatus,
			},
		},
	}
}
