// HTTP implementation of [SongService] for the songs document API
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/sopheara/klyr/internal/models"
	"github.com/sopheara/klyr/internal/shared"
	"golang.org/x/time/rate"
)

const defaultRequestsPerSecond = 5.0

// HTTPService talks JSON over HTTP to the remote songs collection.
//
// Documents are shaped exactly like [models.Song]; id, createdAt and updatedAt
// are assigned server-side. A token-bucket limiter paces requests so rapid
// navigation cannot hammer the backend.
type HTTPService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// HTTPServiceOpts contains settings for creating an [HTTPService].
type HTTPServiceOpts struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	HTTPClient        *http.Client
}

// NewHTTPService creates an HTTP-backed song service.
func NewHTTPService(opts HTTPServiceOpts) *HTTPService {
	if opts.BaseURL == "" {
		opts.BaseURL = "http://localhost:8090"
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = defaultRequestsPerSecond
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}

	return &HTTPService{
		baseURL:    opts.BaseURL,
		httpClient: opts.HTTPClient,
		limiter:    rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1),
	}
}

// createResponse is the body returned by the API on document creation.
type createResponse struct {
	ID string `json:"id"`
}

// List retrieves all songs, newest first.
func (s *HTTPService) List(ctx context.Context) ([]models.Song, error) {
	body, err := s.do(ctx, http.MethodGet, "/songs?orderBy=createdAt&direction=desc", nil)
	if err != nil {
		return nil, err
	}

	var songs []models.Song
	if err := json.Unmarshal(body, &songs); err != nil {
		return nil, fmt.Errorf("%w: malformed list response: %v", shared.ErrStoreUnavailable, err)
	}

	// The API already orders by creation time; keep the contract even if a
	// backend ignores the query parameters.
	sort.SliceStable(songs, func(i, j int) bool {
		return songs[i].CreatedAt.After(songs[j].CreatedAt)
	})

	return songs, nil
}

// Get retrieves one song by ID.
func (s *HTTPService) Get(ctx context.Context, id string) (*models.Song, error) {
	body, err := s.do(ctx, http.MethodGet, "/songs/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var song models.Song
	if err := json.Unmarshal(body, &song); err != nil {
		return nil, fmt.Errorf("%w: malformed song response: %v", shared.ErrStoreUnavailable, err)
	}

	return &song, nil
}

// Create stores a new song and returns the server-assigned ID.
func (s *HTTPService) Create(ctx context.Context, draft models.Draft) (string, error) {
	payload, err := json.Marshal(draftDocument(draft))
	if err != nil {
		return "", fmt.Errorf("failed to marshal song: %w", err)
	}

	body, err := s.do(ctx, http.MethodPost, "/songs", payload)
	if err != nil {
		return "", err
	}

	var created createResponse
	if err := json.Unmarshal(body, &created); err != nil || created.ID == "" {
		return "", fmt.Errorf("%w: malformed create response", shared.ErrStoreUnavailable)
	}

	return created.ID, nil
}

// Update replaces a song's editable fields; the server refreshes updatedAt.
func (s *HTTPService) Update(ctx context.Context, id string, draft models.Draft) error {
	payload, err := json.Marshal(draftDocument(draft))
	if err != nil {
		return fmt.Errorf("failed to marshal song: %w", err)
	}

	_, err = s.do(ctx, http.MethodPatch, "/songs/"+url.PathEscape(id), payload)
	return err
}

// Delete removes a song by ID.
func (s *HTTPService) Delete(ctx context.Context, id string) error {
	_, err := s.do(ctx, http.MethodDelete, "/songs/"+url.PathEscape(id), nil)
	return err
}

func (s *HTTPService) Name() string { return "songs API" }

// draftDocument shapes a draft as the API's document body. Timestamps are
// intentionally absent: the server assigns them.
func draftDocument(draft models.Draft) map[string]string {
	return map[string]string{
		"title":           draft.Title,
		"artist":          draft.Artist,
		"youtubeUrl":      draft.YoutubeURL,
		"lyricsKhmer":     draft.LyricsKhmer,
		"lyricsRomanized": draft.LyricsRomanized,
		"lyricsEnglish":   draft.LyricsEnglish,
	}
}

// do performs one paced HTTP request and maps failures onto the store's
// sentinel errors.
func (s *HTTPService) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, shared.ErrSongNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: unexpected status %d", shared.ErrStoreUnavailable, resp.StatusCode)
	}

	return body, nil
}
