package library

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sopheara/klyr/internal/models"
	"github.com/sopheara/klyr/internal/shared"
	tu "github.com/sopheara/klyr/internal/testing"
)

func TestLoadAll(t *testing.T) {
	t.Run("returns songs newest first", func(t *testing.T) {
		svc := tu.NewMockSongService()
		svc.Seed(models.Song{ID: "a", Title: "Old", CreatedAt: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)})
		svc.Seed(models.Song{ID: "b", Title: "New", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)})

		lib := NewLibrary(svc, nil)
		songs, err := lib.LoadAll(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(songs) != 2 || songs[0].ID != "b" {
			t.Errorf("expected newest first, got %v", songs)
		}
	})

	t.Run("failure yields empty slice and load error", func(t *testing.T) {
		svc := tu.NewMockSongService()
		svc.Failing = true

		lib := NewLibrary(svc, nil)
		songs, err := lib.LoadAll(context.Background())
		if err == nil {
			t.Error("expected a load error")
		}
		if songs == nil || len(songs) != 0 {
			t.Errorf("expected empty non-nil slice, got %v", songs)
		}
	})
}

func TestSearch(t *testing.T) {
	songs := []models.Song{
		{ID: "1", Title: "Champa Battambang", Artist: "Sinn Sisamouth"},
		{ID: "2", Title: "Sabay", Artist: ""},
		{ID: "3", Title: "Stung Khiev", Artist: "Ros Serey Sothea"},
	}

	t.Run("empty term is identity", func(t *testing.T) {
		got := Search(songs, "")
		if len(got) != len(songs) {
			t.Fatalf("expected %d songs, got %d", len(songs), len(got))
		}
		for i := range songs {
			if got[i].ID != songs[i].ID {
				t.Errorf("expected input unchanged at %d", i)
			}
		}
	})

	t.Run("matches title case-insensitively", func(t *testing.T) {
		got := Search(songs, "CHAMPA")
		if len(got) != 1 || got[0].ID != "1" {
			t.Errorf("expected song 1, got %v", got)
		}
	})

	t.Run("matches artist case-insensitively", func(t *testing.T) {
		got := Search(songs, "sothea")
		if len(got) != 1 || got[0].ID != "3" {
			t.Errorf("expected song 3, got %v", got)
		}
	})

	t.Run("substring matches count", func(t *testing.T) {
		got := Search(songs, "s")
		// "s" appears in every title or artist here.
		if len(got) != 3 {
			t.Errorf("expected 3 matches, got %d", len(got))
		}
	})

	t.Run("missing artist never matches a non-empty term", func(t *testing.T) {
		got := Search(songs, "nobody")
		if len(got) != 0 {
			t.Errorf("expected no matches, got %v", got)
		}
	})
}

func TestLoadOne(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := tu.NewMockSongService()
		svc.Seed(models.Song{ID: "abc", Title: "Sabay"})

		lib := NewLibrary(svc, nil)
		song, redirect := lib.LoadOne(context.Background(), "abc")
		if redirect {
			t.Fatal("expected no redirect")
		}
		if song.Title != "Sabay" {
			t.Errorf("expected Sabay, got %s", song.Title)
		}
	})

	t.Run("missing song signals redirect", func(t *testing.T) {
		lib := NewLibrary(tu.NewMockSongService(), nil)
		song, redirect := lib.LoadOne(context.Background(), "missing")
		if !redirect || song != nil {
			t.Error("expected redirect signal for missing song")
		}
	})

	t.Run("store failure signals redirect", func(t *testing.T) {
		svc := tu.NewMockSongService()
		svc.Failing = true

		lib := NewLibrary(svc, nil)
		if _, redirect := lib.LoadOne(context.Background(), "abc"); !redirect {
			t.Error("expected redirect signal on store failure")
		}
	})
}

func TestCreate(t *testing.T) {
	t.Run("empty title rejected before any store call", func(t *testing.T) {
		svc := tu.NewMockSongService()
		lib := NewLibrary(svc, nil)

		_, err := lib.Create(context.Background(), models.Draft{Title: "   "})
		if !errors.Is(err, shared.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
		if svc.Calls != 0 {
			t.Errorf("adapter must not be invoked, saw %d calls", svc.Calls)
		}
	})

	t.Run("created song has store-assigned timestamps and empty optionals", func(t *testing.T) {
		svc := tu.NewMockSongService()
		lib := NewLibrary(svc, nil)

		id, err := lib.Create(context.Background(), models.Draft{Title: "Sabay"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		song, redirect := lib.LoadOne(context.Background(), id)
		if redirect {
			t.Fatal("expected to fetch the created song")
		}
		if song.Artist != "" || song.YoutubeURL != "" ||
			song.LyricsKhmer != "" || song.LyricsRomanized != "" || song.LyricsEnglish != "" {
			t.Error("expected all optional fields empty")
		}
		if !song.CreatedAt.Equal(song.UpdatedAt) {
			t.Errorf("expected createdAt == updatedAt, got %v / %v", song.CreatedAt, song.UpdatedAt)
		}
	})

	t.Run("store failure maps to persistence error", func(t *testing.T) {
		svc := tu.NewMockSongService()
		svc.Failing = true

		lib := NewLibrary(svc, nil)
		_, err := lib.Create(context.Background(), models.Draft{Title: "Sabay"})
		if !errors.Is(err, shared.ErrPersistence) {
			t.Errorf("expected ErrPersistence, got %v", err)
		}
	})
}

func TestUpdate(t *testing.T) {
	t.Run("refreshes updatedAt only", func(t *testing.T) {
		svc := tu.NewMockSongService()
		base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		svc.Clock = func() time.Time { return base }

		lib := NewLibrary(svc, nil)
		id, err := lib.Create(context.Background(), models.Draft{Title: "Sabay"})
		if err != nil {
			t.Fatalf("failed to create: %v", err)
		}

		svc.Clock = func() time.Time { return base.Add(time.Hour) }
		draft := models.Draft{Title: "Sabay", Artist: "Sinn Sisamouth"}
		if err := lib.Update(context.Background(), id, draft); err != nil {
			t.Fatalf("failed to update: %v", err)
		}

		song, _ := lib.LoadOne(context.Background(), id)
		if !song.CreatedAt.Equal(base) {
			t.Errorf("createdAt must not change, got %v", song.CreatedAt)
		}
		if song.UpdatedAt.Before(song.CreatedAt) {
			t.Errorf("updatedAt must not be earlier than before, got %v", song.UpdatedAt)
		}
		if song.Artist != "Sinn Sisamouth" {
			t.Errorf("expected updated artist, got %s", song.Artist)
		}
	})

	t.Run("validates before calling the adapter", func(t *testing.T) {
		svc := tu.NewMockSongService()
		lib := NewLibrary(svc, nil)

		err := lib.Update(context.Background(), "any", models.Draft{})
		if !errors.Is(err, shared.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
		if svc.Calls != 0 {
			t.Errorf("adapter must not be invoked, saw %d calls", svc.Calls)
		}
	})
}

func TestDelete(t *testing.T) {
	t.Run("deleted song is gone from fetch and list", func(t *testing.T) {
		svc := tu.NewMockSongService()
		lib := NewLibrary(svc, nil)

		id, err := lib.Create(context.Background(), models.Draft{Title: "Sabay"})
		if err != nil {
			t.Fatalf("failed to create: %v", err)
		}

		if err := lib.Delete(context.Background(), id); err != nil {
			t.Fatalf("failed to delete: %v", err)
		}

		if _, redirect := lib.LoadOne(context.Background(), id); !redirect {
			t.Error("expected redirect signal for deleted song")
		}

		songs, err := lib.LoadAll(context.Background())
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		for _, song := range songs {
			if song.ID == id {
				t.Error("deleted song still present in list")
			}
		}
	})

	t.Run("store failure maps to persistence error", func(t *testing.T) {
		svc := tu.NewMockSongService()
		svc.Failing = true

		lib := NewLibrary(svc, nil)
		if err := lib.Delete(context.Background(), "abc"); !errors.Is(err, shared.ErrPersistence) {
			t.Errorf("expected ErrPersistence, got %v", err)
		}
	})
}
