package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/sopheara/klyr/internal/library"
	"github.com/sopheara/klyr/internal/models"
	"github.com/sopheara/klyr/internal/shared"
	"github.com/sopheara/klyr/internal/tasks"
	"github.com/urfave/cli/v3"
)

// songFlags builds the draft-field flags shared by add and edit. Each call
// returns fresh flag instances because cli flags hold parse state; sharing
// one set between commands leaks IsSet across invocations.
func songFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Song title"},
		&cli.StringFlag{Name: "artist", Aliases: []string{"a"}, Usage: "Artist name"},
		&cli.StringFlag{Name: "url", Usage: "YouTube video link"},
		&cli.StringFlag{Name: "khmer", Usage: "Khmer lyrics"},
		&cli.StringFlag{Name: "romanized", Usage: "Romanized lyrics"},
		&cli.StringFlag{Name: "english", Usage: "English lyrics"},
	}
}

// draftFlagNames pairs each flag with the draft field it sets.
var draftFlagNames = map[string]models.FieldName{
	"title":     models.FieldTitle,
	"artist":    models.FieldArtist,
	"url":       models.FieldYoutubeURL,
	"khmer":     models.FieldLyricsKhmer,
	"romanized": models.FieldLyricsRomanized,
	"english":   models.FieldLyricsEnglish,
}

// applyDraftFlags copies set flags onto a draft, leaving unset fields alone.
func applyDraftFlags(cmd *cli.Command, draft *models.Draft) error {
	for flag, field := range draftFlagNames {
		if !cmd.IsSet(flag) {
			continue
		}
		if err := draft.SetField(field, cmd.String(flag)); err != nil {
			return err
		}
	}
	return nil
}

// SongsList prints the collection newest first, optionally filtered by a
// search term against title and artist.
func (r *Runner) SongsList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAuth(); err != nil {
		return err
	}

	songs, err := r.lib.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load songs: %w", err)
	}

	if term := cmd.String("search"); term != "" {
		songs = library.Search(songs, term)
	}

	if cmd.Bool("json") {
		return r.writeJSON(songs, cmd.Bool("pretty"))
	}

	if len(songs) == 0 {
		return r.writePlain("No songs found.\n")
	}

	r.writePlain("%d song(s)\n\n", len(songs))
	for _, song := range songs {
		tags := ""
		if t := song.LyricTags(); len(t) > 0 {
			tags = " [" + strings.Join(t, ", ") + "]"
		}
		r.writePlain("%s  %s — %s%s\n", song.ID, song.Title, song.DisplayArtist(), tags)
	}
	return nil
}

// SongsShow prints a single song with its lyrics sections.
func (r *Runner) SongsShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAuth(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: song id is required", shared.ErrMissingArgument)
	}

	song, err := r.service.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load song: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(song, cmd.Bool("pretty"))
	}

	r.writePlain("%s\n%s\n", song.Title, song.DisplayArtist())
	if song.YoutubeURL != "" {
		r.writePlain("%s\n", song.YoutubeURL)
	}

	sections := []struct {
		label string
		body  string
	}{
		{"Khmer", song.LyricsKhmer},
		{"Romanized", song.LyricsRomanized},
		{"English", song.LyricsEnglish},
	}
	for _, sec := range sections {
		if sec.body == "" {
			continue
		}
		r.writePlainln("%s:\n%s", sec.label, sec.body)
	}
	return nil
}

// SongsAdd creates a song from flags. Title is required, everything else
// defaults to empty.
func (r *Runner) SongsAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAuth(); err != nil {
		return err
	}

	var draft models.Draft
	if err := applyDraftFlags(cmd, &draft); err != nil {
		return err
	}

	id, err := r.lib.Create(ctx, draft)
	if err != nil {
		return fmt.Errorf("failed to add song: %w", err)
	}

	r.logger.Info("song added", "id", id)
	return r.writePlain("✓ Added song %s\n", id)
}

// SongsEdit loads a song, applies the set flags on top of its current
// fields, and saves the result.
func (r *Runner) SongsEdit(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAuth(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: song id is required", shared.ErrMissingArgument)
	}

	song, err := r.service.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load song: %w", err)
	}

	draft := models.DraftFromSong(*song)
	if err := applyDraftFlags(cmd, &draft); err != nil {
		return err
	}

	if err := r.lib.Update(ctx, id, draft); err != nil {
		return fmt.Errorf("failed to update song: %w", err)
	}

	r.logger.Info("song updated", "id", id)
	return r.writePlain("✓ Updated song %s\n", id)
}

// SongsDelete removes a song. Requires --yes; deleting an already missing
// song succeeds.
func (r *Runner) SongsDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAuth(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: song id is required", shared.ErrMissingArgument)
	}

	if !cmd.Bool("yes") {
		return r.writePlain("Deleting cannot be undone. Re-run with --yes to confirm.\n")
	}

	if err := r.lib.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}

	r.logger.Info("song deleted", "id", id)
	return r.writePlain("✓ Deleted song %s\n", id)
}

// SongsExport writes the collection to local files, one per song, plus a
// collection index and a manifest.
func (r *Runner) SongsExport(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAuth(); err != nil {
		return err
	}

	engine := tasks.NewExportEngine(r.service)
	progress := make(chan tasks.ProgressUpdate, 32)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Info(update.Message, "phase", update.Phase, "step", update.Step, "total", update.Total)
		}
	}()

	result, err := engine.Run(ctx, progress, tasks.ExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("output"),
		NumWorkers: int(cmd.Int("workers")),
	})
	close(progress)
	<-done

	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	r.writePlain("✓ Exported %d/%d song(s) to %s\n", result.SuccessCount, result.TotalSongs, result.OutputDirectory)
	if result.FailedCount > 0 {
		r.writePlain("✗ %d song(s) failed, see %s\n", result.FailedCount, result.ManifestPath)
	}
	return nil
}

// SongsOpen opens a song's video link in the default browser.
func (r *Runner) SongsOpen(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAuth(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: song id is required", shared.ErrMissingArgument)
	}

	song, err := r.service.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load song: %w", err)
	}

	if song.YoutubeURL == "" {
		return r.writePlain("No video link saved for %q.\n", song.Title)
	}

	if err := shared.OpenBrowser(song.YoutubeURL); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return r.writePlain("✓ Opened %s\n", song.YoutubeURL)
}

func songsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "songs",
		Aliases: []string{"s"},
		Usage:   "Browse and edit the lyrics collection",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List songs, newest first",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "search",
						Aliases: []string{"s"},
						Usage:   "Filter by title or artist",
					},
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
				},
				Action: r.SongsList,
			},
			{
				Name:  "show",
				Usage: "Show a song with its lyrics",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
				},
				Action: r.SongsShow,
			},
			{
				Name:   "add",
				Usage:  "Add a song to the collection",
				Flags:  songFlags(),
				Action: r.SongsAdd,
			},
			{
				Name:  "edit",
				Usage: "Update fields of an existing song",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  songFlags(),
				Action: r.SongsEdit,
			},
			{
				Name:  "delete",
				Usage: "Delete a song",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Skip the confirmation prompt",
					},
				},
				Action: r.SongsDelete,
			},
			{
				Name:  "export",
				Usage: "Export the collection to local files",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: json, csv, markdown, txt",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent export workers",
						Value: 4,
					},
				},
				Action: r.SongsExport,
			},
			{
				Name:  "open",
				Usage: "Open a song's video link in the browser",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.SongsOpen,
			},
		},
	}
}
