// package tasks implements long-running operations over the song collection.
package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sopheara/klyr/internal/formatter"
	"github.com/sopheara/klyr/internal/models"
	"github.com/sopheara/klyr/internal/services"
	"github.com/sopheara/klyr/internal/shared"
	"golang.org/x/time/rate"
)

// SongExportResult records the outcome of exporting a single song.
type SongExportResult struct {
	SongID string `json:"song_id"`
	Title  string `json:"title"`
	File   string `json:"file,omitempty"`
	Error  error  `json:"-"`
}

// ExportResult summarizes a collection export.
type ExportResult struct {
	TotalSongs      int                `json:"total_songs"`
	SuccessCount    int                `json:"success_count"`
	FailedCount     int                `json:"failed_count"`
	OutputDirectory string             `json:"output_directory"`
	ManifestPath    string             `json:"manifest_path,omitempty"`
	Songs           []SongExportResult `json:"songs"`
}

// ExportOpts contains configuration for collection exports.
type ExportOpts struct {
	Format     string  // Export format: json, csv, markdown, txt
	OutputDir  string  // Base output directory (default: klyr_export_{epoch})
	NumWorkers int     // Concurrent workers (default: 4)
	RateLimit  float64 // File writes per second, 0 disables pacing
}

// ExportEngine exports the song collection to local files.
type ExportEngine struct {
	service services.SongService
}

// NewExportEngine creates a new ExportEngine over the provided store.
func NewExportEngine(service services.SongService) *ExportEngine {
	return &ExportEngine{service: service}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *ExportEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Run exports every song in the collection plus a collection-level CSV and a
// JSON manifest. Songs are exported concurrently; a song that fails to write
// is recorded in the result without aborting the rest.
func (e *ExportEngine) Run(ctx context.Context, progress chan<- ProgressUpdate, opts ExportOpts) (*ExportResult, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: song store not initialized", shared.ErrStoreUnavailable)
	}

	if opts.Format == "" {
		opts.Format = "json"
	}
	if !formatter.ValidFormat(opts.Format) {
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, opts.Format)
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("klyr_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 8 {
		opts.NumWorkers = 8
	}

	e.sendProgress(progress, fetchCollectionUpdate())

	songs, err := e.service.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &ExportResult{
		TotalSongs:      len(songs),
		OutputDirectory: opts.OutputDir,
		Songs:           []SongExportResult{},
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	jobs := make(chan models.Song, len(songs))
	results := make(chan SongExportResult, len(songs))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, limiter, opts)
	}

	for _, song := range songs {
		jobs <- song
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	step := 0
	for res := range results {
		step++
		if res.Error != nil {
			result.FailedCount++
			e.sendProgress(progress, exportFailedUpdate(step, len(songs), res.Title, res.Error))
		} else {
			result.SuccessCount++
			e.sendProgress(progress, exportSongUpdate(step, len(songs), res.Title))
		}
		result.Songs = append(result.Songs, res)
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	csvPath := filepath.Join(opts.OutputDir, "collection.csv")
	if data, err := formatter.ExportToCSV(songs); err == nil {
		if err := os.WriteFile(csvPath, data, 0644); err != nil {
			return result, fmt.Errorf("export completed but failed to write collection index: %w", err)
		}
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	data, err := shared.MarshalJSON(result, true)
	if err != nil {
		return result, fmt.Errorf("export completed but failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath, data, 0644); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath

	e.sendProgress(progress, exportCompletedUpdate(len(songs), len(songs), result.SuccessCount))
	return result, nil
}

// exportWorker is a worker goroutine that exports songs from the jobs channel.
func (e *ExportEngine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan models.Song,
	results chan<- SongExportResult,
	limiter *rate.Limiter,
	opts ExportOpts,
) {
	defer wg.Done()

	for song := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return
			}
		}

		results <- e.exportSong(song, opts)
	}
}

// exportSong writes a single song file named by its ID.
func (e *ExportEngine) exportSong(song models.Song, opts ExportOpts) SongExportResult {
	result := SongExportResult{SongID: song.ID, Title: song.Title}

	path := filepath.Join(opts.OutputDir, song.ID+formatter.Extension(opts.Format))
	file, err := formatter.WriteSongExport(song, opts.Format, path)
	if err != nil {
		result.Error = err
		return result
	}

	result.File = file
	return result
}
