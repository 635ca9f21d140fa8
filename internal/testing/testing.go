// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/sopheara/klyr/internal/models"
	"github.com/sopheara/klyr/internal/shared"
)

// MockSongService is an in-memory test double for [services.SongService].
//
// It assigns uuid IDs and timestamps the way the real store does, and can be
// switched into a failing mode to exercise error paths. The Calls counter
// lets tests assert that an operation never reached the adapter.
type MockSongService struct {
	mu      sync.Mutex
	songs   map[string]models.Song
	Failing bool
	Calls   int
	// Clock returns the store's notion of now; overridable for timestamp tests.
	Clock func() time.Time
}

func NewMockSongService() *MockSongService {
	return &MockSongService{
		songs: map[string]models.Song{},
		Clock: time.Now,
	}
}

// Seed inserts a song directly, bypassing the service contract.
func (m *MockSongService) Seed(song models.Song) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.songs[song.ID] = song
}

func (m *MockSongService) List(ctx context.Context) ([]models.Song, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++

	if m.Failing {
		return nil, shared.ErrStoreUnavailable
	}

	songs := make([]models.Song, 0, len(m.songs))
	for _, song := range m.songs {
		songs = append(songs, song)
	}
	sort.Slice(songs, func(i, j int) bool {
		return songs[i].CreatedAt.After(songs[j].CreatedAt)
	})

	return songs, nil
}

func (m *MockSongService) Get(ctx context.Context, id string) (*models.Song, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++

	if m.Failing {
		return nil, shared.ErrStoreUnavailable
	}

	song, ok := m.songs[id]
	if !ok {
		return nil, shared.ErrSongNotFound
	}

	return &song, nil
}

func (m *MockSongService) Create(ctx context.Context, draft models.Draft) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++

	if m.Failing {
		return "", shared.ErrStoreUnavailable
	}

	now := m.Clock()
	song := models.Song{
		ID:              shared.GenerateID(),
		Title:           draft.Title,
		Artist:          draft.Artist,
		YoutubeURL:      draft.YoutubeURL,
		LyricsKhmer:     draft.LyricsKhmer,
		LyricsRomanized: draft.LyricsRomanized,
		LyricsEnglish:   draft.LyricsEnglish,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	m.songs[song.ID] = song

	return song.ID, nil
}

func (m *MockSongService) Update(ctx context.Context, id string, draft models.Draft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++

	if m.Failing {
		return shared.ErrStoreUnavailable
	}

	song, ok := m.songs[id]
	if !ok {
		return shared.ErrSongNotFound
	}

	song.Title = draft.Title
	song.Artist = draft.Artist
	song.YoutubeURL = draft.YoutubeURL
	song.LyricsKhmer = draft.LyricsKhmer
	song.LyricsRomanized = draft.LyricsRomanized
	song.LyricsEnglish = draft.LyricsEnglish
	song.UpdatedAt = m.Clock()
	m.songs[id] = song

	return nil
}

func (m *MockSongService) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++

	if m.Failing {
		return shared.ErrStoreUnavailable
	}

	delete(m.songs, id)
	return nil
}

func (m *MockSongService) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
