package models

import (
	"fmt"
	"strings"
	"time"
)

// Song represents a stored song document from the remote songs collection.
//
// ID, CreatedAt and UpdatedAt are assigned by the store on creation; CreatedAt
// is never modified afterwards, UpdatedAt is refreshed on every update.
type Song struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Artist          string    `json:"artist,omitempty"`
	YoutubeURL      string    `json:"youtubeUrl,omitempty"`
	LyricsKhmer     string    `json:"lyricsKhmer,omitempty"`
	LyricsRomanized string    `json:"lyricsRomanized,omitempty"`
	LyricsEnglish   string    `json:"lyricsEnglish,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// DisplayArtist returns the artist name or a placeholder when absent.
func (s Song) DisplayArtist() string {
	if s.Artist == "" {
		return "Unknown Artist"
	}
	return s.Artist
}

// LyricTags lists which lyric variants are present, in display order.
func (s Song) LyricTags() []string {
	var tags []string
	if s.LyricsKhmer != "" {
		tags = append(tags, "ខ្មែរ")
	}
	if s.LyricsRomanized != "" {
		tags = append(tags, "Romanized")
	}
	if s.LyricsEnglish != "" {
		tags = append(tags, "English")
	}
	return tags
}

// FieldName identifies one editable Song field on a [Draft].
type FieldName string

const (
	FieldTitle           FieldName = "title"
	FieldArtist          FieldName = "artist"
	FieldYoutubeURL      FieldName = "youtubeUrl"
	FieldLyricsKhmer     FieldName = "lyricsKhmer"
	FieldLyricsRomanized FieldName = "lyricsRomanized"
	FieldLyricsEnglish   FieldName = "lyricsEnglish"
)

// Fields lists every editable field in form order.
var Fields = []FieldName{
	FieldTitle,
	FieldArtist,
	FieldYoutubeURL,
	FieldLyricsKhmer,
	FieldLyricsRomanized,
	FieldLyricsEnglish,
}

// Draft holds in-progress edits for a create or edit form. It mirrors Song's
// editable fields; ID and timestamps stay with the store.
type Draft struct {
	Title           string
	Artist          string
	YoutubeURL      string
	LyricsKhmer     string
	LyricsRomanized string
	LyricsEnglish   string
}

// DraftFromSong pre-fills a Draft with an existing song's editable fields.
func DraftFromSong(song Song) Draft {
	return Draft{
		Title:           song.Title,
		Artist:          song.Artist,
		YoutubeURL:      song.YoutubeURL,
		LyricsKhmer:     song.LyricsKhmer,
		LyricsRomanized: song.LyricsRomanized,
		LyricsEnglish:   song.LyricsEnglish,
	}
}

// SetField mutates a single field by name. Unknown names return an error so a
// typo in a caller surfaces instead of silently dropping input.
func (d *Draft) SetField(name FieldName, value string) error {
	switch name {
	case FieldTitle:
		d.Title = value
	case FieldArtist:
		d.Artist = value
	case FieldYoutubeURL:
		d.YoutubeURL = value
	case FieldLyricsKhmer:
		d.LyricsKhmer = value
	case FieldLyricsRomanized:
		d.LyricsRomanized = value
	case FieldLyricsEnglish:
		d.LyricsEnglish = value
	default:
		return fmt.Errorf("unknown field: %s", name)
	}
	return nil
}

// Field returns a single field's current value by name.
func (d Draft) Field(name FieldName) string {
	switch name {
	case FieldTitle:
		return d.Title
	case FieldArtist:
		return d.Artist
	case FieldYoutubeURL:
		return d.YoutubeURL
	case FieldLyricsKhmer:
		return d.LyricsKhmer
	case FieldLyricsRomanized:
		return d.LyricsRomanized
	case FieldLyricsEnglish:
		return d.LyricsEnglish
	}
	return ""
}

// Validate checks the single submission rule: title must be non-empty after
// trimming whitespace.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("title is required")
	}
	return nil
}

// Credentials is a username/password pair for the login gate. Saved login
// pairs are stored as plain JSON; the gate is deliberately weak.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
