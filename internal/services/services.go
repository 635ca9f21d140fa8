package services

import (
	"context"

	"github.com/sopheara/klyr/internal/models"
)

// SongService defines the operations available on the remote songs collection.
//
// Every operation is single-shot: no automatic retry, no batching. Failures
// map onto [shared.ErrStoreUnavailable] and [shared.ErrSongNotFound] so callers
// can branch without inspecting transport details.
type SongService interface {
	// List retrieves all songs ordered by creation time, newest first.
	List(ctx context.Context) ([]models.Song, error)

	// Get retrieves a single song by its store-assigned ID.
	Get(ctx context.Context, id string) (*models.Song, error)

	// Create stores a new song from draft fields and returns the assigned ID.
	// The store assigns createdAt and updatedAt.
	Create(ctx context.Context, draft models.Draft) (string, error)

	// Update replaces an existing song's editable fields.
	// The store refreshes updatedAt only.
	Update(ctx context.Context, id string, draft models.Draft) error

	// Delete removes a song by ID.
	Delete(ctx context.Context, id string) error

	// Name returns the name of the backing store, for logs.
	Name() string
}
