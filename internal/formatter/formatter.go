// package formatter provides functions to export songs to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sopheara/klyr/internal/models"
	"github.com/sopheara/klyr/internal/shared"
)

// Formats lists the supported export formats.
var Formats = []string{"json", "csv", "markdown", "txt"}

// ValidFormat reports whether format names a supported exporter.
func ValidFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// ExportToCSV converts a song collection to CSV with columns: ID, Title, Artist, YouTube URL, Lyrics, Added
func ExportToCSV(songs []models.Song) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "YouTube URL", "Lyrics", "Added"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range songs {
		record := []string{
			song.ID,
			song.Title,
			song.DisplayArtist(),
			song.YoutubeURL,
			strings.Join(song.LyricTags(), "; "),
			song.CreatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record for %s: %w", song.ID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV writer: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders a single song as a lyric sheet with one section
// per language that has content.
func ExportToMarkdown(song models.Song) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", song.Title)
	fmt.Fprintf(&buf, "**Artist:** %s\n\n", song.DisplayArtist())
	if song.YoutubeURL != "" {
		fmt.Fprintf(&buf, "**Video:** <%s>\n\n", song.YoutubeURL)
	}
	fmt.Fprintf(&buf, "**Added:** %s\n", song.CreatedAt.Format("2006-01-02"))

	sections := []struct {
		heading string
		body    string
	}{
		{"Khmer", song.LyricsKhmer},
		{"Romanized", song.LyricsRomanized},
		{"English", song.LyricsEnglish},
	}
	for _, sec := range sections {
		if sec.body == "" {
			continue
		}
		fmt.Fprintf(&buf, "\n## %s\n\n%s\n", sec.heading, sec.body)
	}

	return buf.Bytes()
}

// ExportToText renders a single song as a plain text lyric sheet.
func ExportToText(song models.Song) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s\n%s\n", song.Title, song.DisplayArtist())
	if song.YoutubeURL != "" {
		fmt.Fprintf(&buf, "%s\n", song.YoutubeURL)
	}

	sections := []struct {
		heading string
		body    string
	}{
		{"Khmer", song.LyricsKhmer},
		{"Romanized", song.LyricsRomanized},
		{"English", song.LyricsEnglish},
	}
	for _, sec := range sections {
		if sec.body == "" {
			continue
		}
		fmt.Fprintf(&buf, "\n--- %s ---\n%s\n", sec.heading, sec.body)
	}

	return buf.Bytes()
}

// WriteSongExport writes one song to path in the given format and returns
// the written path.
func WriteSongExport(song models.Song, format, path string) (string, error) {
	var data []byte
	var err error

	switch format {
	case "csv":
		data, err = ExportToCSV([]models.Song{song})
		if err != nil {
			return "", err
		}
	case "markdown":
		data = ExportToMarkdown(song)
	case "txt":
		data = ExportToText(song)
	case "json":
		data, err = shared.MarshalJSON(song, true)
		if err != nil {
			return "", fmt.Errorf("failed to marshal song %s: %w", song.ID, err)
		}
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}

// Extension returns the file extension for an export format.
func Extension(format string) string {
	switch format {
	case "csv":
		return ".csv"
	case "markdown":
		return ".md"
	case "txt":
		return ".txt"
	default:
		return ".json"
	}
}
