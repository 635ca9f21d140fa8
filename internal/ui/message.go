package ui

import (
	"github.com/sopheara/klyr/internal/models"
)

// Messages produced by remote commands. Each carries the navigation epoch
// it was issued under; the Update loop drops messages from earlier epochs
// so a response arriving after the user navigated away is ignored.

// songsLoadedMsg delivers the collection list, or the load failure.
type songsLoadedMsg struct {
	epoch int
	songs []models.Song
	err   error
}

// songFetchedMsg delivers one song for the detail or edit view. redirect
// set means the song is gone and the view should fall back to the list.
type songFetchedMsg struct {
	epoch    int
	song     *models.Song
	redirect bool
	forEdit  bool
}

// submitDoneMsg delivers a create or update outcome.
type submitDoneMsg struct {
	epoch int
	id    string
	err   error
}

// deleteDoneMsg delivers a delete outcome.
type deleteDoneMsg struct {
	epoch int
	err   error
}

// loginDoneMsg delivers the gate's verdict after the brief submit delay.
type loginDoneMsg struct {
	epoch int
	ok    bool
}
