package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/sopheara/klyr/internal/models"
)

var _ list.Item = songItem{}

// songItem wraps [models.Song] to implement [list.Item].
type songItem struct {
	song models.Song
}

func (i songItem) FilterValue() string { return i.song.Title + " " + i.song.Artist }
func (i songItem) Title() string       { return i.song.Title }
func (i songItem) Description() string {
	desc := i.song.DisplayArtist()
	if tags := i.song.LyricTags(); len(tags) > 0 {
		desc += " • " + strings.Join(tags, " · ")
	}
	return desc
}

// songItems converts songs into list items, preserving order.
func songItems(songs []models.Song) []list.Item {
	items := make([]list.Item, len(songs))
	for i, song := range songs {
		items[i] = songItem{song: song}
	}
	return items
}
