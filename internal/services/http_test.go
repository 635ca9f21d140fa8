package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sopheara/klyr/internal/models"
	"github.com/sopheara/klyr/internal/shared"
)

func newTestService(url string) *HTTPService {
	// High request rate so the limiter never delays a test.
	return NewHTTPService(HTTPServiceOpts{BaseURL: url, RequestsPerSecond: 1000})
}

func TestHTTPService(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		t.Run("With Empty BaseURL", func(t *testing.T) {
			srv := NewHTTPService(HTTPServiceOpts{})
			if srv.baseURL != "http://localhost:8090" {
				t.Errorf("expected default baseURL, got %s", srv.baseURL)
			}
		})

		t.Run("With Custom Client", func(t *testing.T) {
			client := &http.Client{}
			srv := NewHTTPService(HTTPServiceOpts{HTTPClient: client})
			if srv.httpClient != client {
				t.Error("expected custom client to be used")
			}
		})
	})

	t.Run("List", func(t *testing.T) {
		t.Run("Orders Newest First", func(t *testing.T) {
			older := models.Song{ID: "a", Title: "First", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
			newer := models.Song{ID: "b", Title: "Second", CreatedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/songs" {
					t.Errorf("expected path /songs, got %s", r.URL.Path)
				}
				// Deliberately out of order to exercise the client-side sort.
				json.NewEncoder(w).Encode([]models.Song{older, newer})
			}))
			defer server.Close()

			songs, err := newTestService(server.URL).List(context.Background())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(songs) != 2 {
				t.Fatalf("expected 2 songs, got %d", len(songs))
			}
			if songs[0].ID != "b" {
				t.Errorf("expected newest song first, got %s", songs[0].ID)
			}
		})

		t.Run("Server Error Maps To StoreUnavailable", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer server.Close()

			_, err := newTestService(server.URL).List(context.Background())
			if !errors.Is(err, shared.ErrStoreUnavailable) {
				t.Errorf("expected ErrStoreUnavailable, got %v", err)
			}
		})

		t.Run("Unreachable Server Maps To StoreUnavailable", func(t *testing.T) {
			srv := newTestService("http://127.0.0.1:1")
			_, err := srv.List(context.Background())
			if !errors.Is(err, shared.ErrStoreUnavailable) {
				t.Errorf("expected ErrStoreUnavailable, got %v", err)
			}
		})

		t.Run("Malformed Body Maps To StoreUnavailable", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			}))
			defer server.Close()

			_, err := newTestService(server.URL).List(context.Background())
			if !errors.Is(err, shared.ErrStoreUnavailable) {
				t.Errorf("expected ErrStoreUnavailable, got %v", err)
			}
		})
	})

	t.Run("Get", func(t *testing.T) {
		t.Run("Found", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/songs/abc" {
					t.Errorf("expected path /songs/abc, got %s", r.URL.Path)
				}
				json.NewEncoder(w).Encode(models.Song{ID: "abc", Title: "Sabay"})
			}))
			defer server.Close()

			song, err := newTestService(server.URL).Get(context.Background(), "abc")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if song.Title != "Sabay" {
				t.Errorf("expected title Sabay, got %s", song.Title)
			}
		})

		t.Run("Missing Maps To SongNotFound", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			}))
			defer server.Close()

			_, err := newTestService(server.URL).Get(context.Background(), "missing")
			if !errors.Is(err, shared.ErrSongNotFound) {
				t.Errorf("expected ErrSongNotFound, got %v", err)
			}
		})
	})

	t.Run("Create", func(t *testing.T) {
		t.Run("Posts Draft Fields Without Timestamps", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST, got %s", r.Method)
				}

				var doc map[string]string
				if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
					t.Fatalf("failed to decode body: %v", err)
				}
				if doc["title"] != "Sabay" {
					t.Errorf("expected title Sabay, got %s", doc["title"])
				}
				if _, ok := doc["createdAt"]; ok {
					t.Error("client must not send createdAt")
				}

				w.WriteHeader(http.StatusCreated)
				json.NewEncoder(w).Encode(createResponse{ID: "new-id"})
			}))
			defer server.Close()

			id, err := newTestService(server.URL).Create(context.Background(), models.Draft{Title: "Sabay"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if id != "new-id" {
				t.Errorf("expected id new-id, got %s", id)
			}
		})

		t.Run("Failure Maps To StoreUnavailable", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			}))
			defer server.Close()

			_, err := newTestService(server.URL).Create(context.Background(), models.Draft{Title: "Sabay"})
			if !errors.Is(err, shared.ErrStoreUnavailable) {
				t.Errorf("expected ErrStoreUnavailable, got %v", err)
			}
		})
	})

	t.Run("Update", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPatch {
				t.Errorf("expected PATCH, got %s", r.Method)
			}
			if r.URL.Path != "/songs/abc" {
				t.Errorf("expected path /songs/abc, got %s", r.URL.Path)
			}
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		err := newTestService(server.URL).Update(context.Background(), "abc", models.Draft{Title: "Sabay"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodDelete {
					t.Errorf("expected DELETE, got %s", r.Method)
				}
				w.WriteHeader(http.StatusNoContent)
			}))
			defer server.Close()

			if err := newTestService(server.URL).Delete(context.Background(), "abc"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})

		t.Run("Missing Maps To SongNotFound", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			}))
			defer server.Close()

			err := newTestService(server.URL).Delete(context.Background(), "gone")
			if !errors.Is(err, shared.ErrSongNotFound) {
				t.Errorf("expected ErrSongNotFound, got %v", err)
			}
		})
	})

	t.Run("Respects Context Cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		srv := NewHTTPService(HTTPServiceOpts{BaseURL: "http://127.0.0.1:1", RequestsPerSecond: 0.001})
		if _, err := srv.List(ctx); err == nil {
			t.Error("expected error for cancelled context")
		}
	})
}
