package library

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/sopheara/klyr/internal/models"
	"github.com/sopheara/klyr/internal/services"
	"github.com/sopheara/klyr/internal/shared"
)

// Library is the song repository views talk to.
type Library struct {
	service services.SongService
	logger  *log.Logger
}

// NewLibrary creates a Library over the given song service.
func NewLibrary(service services.SongService, logger *log.Logger) *Library {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Library{service: service, logger: logger}
}

// LoadAll fetches the whole collection, newest first. On failure it returns
// an empty slice together with the error so the view can show an empty
// collection while still surfacing that the load failed.
func (l *Library) LoadAll(ctx context.Context) ([]models.Song, error) {
	songs, err := l.service.List(ctx)
	if err != nil {
		l.logger.Error("failed to load songs", "store", l.service.Name(), "err", err)
		return []models.Song{}, err
	}

	return songs, nil
}

// Search filters songs by a case-insensitive substring match against title
// or artist. An empty term returns the input unchanged. A song without an
// artist never matches a non-empty term on the artist side.
func Search(songs []models.Song, term string) []models.Song {
	if term == "" {
		return songs
	}

	needle := strings.ToLower(term)
	matched := make([]models.Song, 0, len(songs))
	for _, song := range songs {
		if strings.Contains(strings.ToLower(song.Title), needle) ||
			(song.Artist != "" && strings.Contains(strings.ToLower(song.Artist), needle)) {
			matched = append(matched, song)
		}
	}

	return matched
}

// LoadOne fetches a single song. The second return is the redirect signal:
// when true the caller should navigate back to the collection view instead
// of rendering, covering both a missing song and an unreachable store.
// Detail and edit views never show a "song missing" state.
func (l *Library) LoadOne(ctx context.Context, id string) (*models.Song, bool) {
	song, err := l.service.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, shared.ErrSongNotFound) {
			l.logger.Error("failed to load song", "id", id, "err", err)
		}
		return nil, true
	}

	return song, false
}

// Create validates the draft and stores it as a new song, returning the
// assigned ID. An invalid draft is rejected before the adapter is called.
// On a store failure the caller keeps the draft for retry.
func (l *Library) Create(ctx context.Context, draft models.Draft) (string, error) {
	if err := draft.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}

	id, err := l.service.Create(ctx, draft)
	if err != nil {
		l.logger.Error("failed to create song", "err", err)
		return "", fmt.Errorf("%w: %v", shared.ErrPersistence, err)
	}

	return id, nil
}

// Update validates the draft and replaces the song's editable fields.
// Same validation and failure shape as Create.
func (l *Library) Update(ctx context.Context, id string, draft models.Draft) error {
	if err := draft.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}

	if err := l.service.Update(ctx, id, draft); err != nil {
		l.logger.Error("failed to update song", "id", id, "err", err)
		return fmt.Errorf("%w: %v", shared.ErrPersistence, err)
	}

	return nil
}

// Delete removes a song. On failure the caller keeps its confirmation
// state open for retry. A song that is already gone counts as deleted.
func (l *Library) Delete(ctx context.Context, id string) error {
	err := l.service.Delete(ctx, id)
	if err != nil && !errors.Is(err, shared.ErrSongNotFound) {
		l.logger.Error("failed to delete song", "id", id, "err", err)
		return fmt.Errorf("%w: %v", shared.ErrPersistence, err)
	}

	return nil
}
