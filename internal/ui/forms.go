package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sopheara/klyr/internal/library"
	"github.com/sopheara/klyr/internal/models"
)

const formFieldCount = 6

var formLabels = map[models.FieldName]string{
	models.FieldTitle:           "Title *",
	models.FieldArtist:          "Artist",
	models.FieldYoutubeURL:      "YouTube URL",
	models.FieldLyricsKhmer:     "Lyrics (ខ្មែរ)",
	models.FieldLyricsRomanized: "Lyrics (Romanized)",
	models.FieldLyricsEnglish:   "Lyrics (English)",
}

// songForm is the shared add/edit form: three single-line inputs followed by
// three lyric textareas, in [models.Fields] order, wrapped around a
// [library.Submission] that owns the draft and the submit lifecycle.
type songForm struct {
	sub    *library.Submission
	inputs []textinput.Model
	areas  []textarea.Model
	focus  int
}

// newSongForm builds a form pre-filled from draft.
func newSongForm(draft models.Draft) *songForm {
	f := &songForm{sub: library.NewSubmission(draft)}

	for _, name := range models.Fields[:3] {
		in := textinput.New()
		in.Prompt = "> "
		in.CharLimit = 0
		in.SetValue(draft.Field(name))
		f.inputs = append(f.inputs, in)
	}

	for _, name := range models.Fields[3:] {
		area := textarea.New()
		area.SetHeight(4)
		area.CharLimit = 0
		area.SetValue(draft.Field(name))
		f.areas = append(f.areas, area)
	}

	f.inputs[0].Focus()
	return f
}

// Submission exposes the underlying submit state machine.
func (f *songForm) Submission() *library.Submission { return f.sub }

// focusField moves focus to field index i, blurring everything else.
func (f *songForm) focusField(i int) tea.Cmd {
	f.focus = (i + formFieldCount) % formFieldCount

	var cmd tea.Cmd
	for n := range f.inputs {
		if n == f.focus {
			cmd = f.inputs[n].Focus()
		} else {
			f.inputs[n].Blur()
		}
	}
	for n := range f.areas {
		if n+len(f.inputs) == f.focus {
			cmd = f.areas[n].Focus()
		} else {
			f.areas[n].Blur()
		}
	}

	return cmd
}

// Update routes a message to the focused widget and mirrors its value into
// the submission draft. Widgets stay read-only while a submit is in flight.
func (f *songForm) Update(msg tea.Msg) tea.Cmd {
	if f.sub.InFlight() {
		return nil
	}

	var cmd tea.Cmd
	if f.focus < len(f.inputs) {
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	} else {
		n := f.focus - len(f.inputs)
		f.areas[n], cmd = f.areas[n].Update(msg)
	}

	f.syncDraft()
	return cmd
}

// syncDraft copies every widget value into the submission draft.
func (f *songForm) syncDraft() {
	for i, name := range models.Fields[:3] {
		f.sub.SetField(name, f.inputs[i].Value())
	}
	for i, name := range models.Fields[3:] {
		f.sub.SetField(name, f.areas[i].Value())
	}
}

// View renders the form with the given stylesheet.
func (f *songForm) View(p *Palette) string {
	var out string

	for i, name := range models.Fields[:3] {
		out += p.label.Render(formLabels[name]) + "\n" + f.inputs[i].View() + "\n\n"
	}
	for i, name := range models.Fields[3:] {
		out += p.label.Render(formLabels[name]) + "\n" + f.areas[i].View() + "\n\n"
	}

	if msg := f.sub.ErrMessage(); msg != "" {
		out += p.err.Render(msg) + "\n"
	}
	if f.sub.InFlight() {
		out += p.subtitle.Render("Saving…") + "\n"
	}

	return out
}

// loginForm is the credential form with a remember-me toggle.
type loginForm struct {
	username   textinput.Model
	password   textinput.Model
	remember   bool
	focus      int
	errMsg     string
	submitting bool
}

// newLoginForm builds the form, pre-filled when a saved login pair exists.
func newLoginForm(savedUser, savedPass string, remembered bool) *loginForm {
	user := textinput.New()
	user.Prompt = "> "
	user.Placeholder = "username"
	user.SetValue(savedUser)
	user.Focus()

	pass := textinput.New()
	pass.Prompt = "> "
	pass.Placeholder = "password"
	pass.EchoMode = textinput.EchoPassword
	pass.SetValue(savedPass)

	return &loginForm{username: user, password: pass, remember: remembered}
}

// focusField moves focus between the two inputs.
func (f *loginForm) focusField(i int) tea.Cmd {
	f.focus = (i + 2) % 2
	if f.focus == 0 {
		f.password.Blur()
		return f.username.Focus()
	}
	f.username.Blur()
	return f.password.Focus()
}

// toggleEcho flips password visibility, the terminal stand-in for the web
// client's eye icon.
func (f *loginForm) toggleEcho() {
	if f.password.EchoMode == textinput.EchoPassword {
		f.password.EchoMode = textinput.EchoNormal
	} else {
		f.password.EchoMode = textinput.EchoPassword
	}
}

// Update routes a message to the focused input.
func (f *loginForm) Update(msg tea.Msg) tea.Cmd {
	if f.submitting {
		return nil
	}

	var cmd tea.Cmd
	if f.focus == 0 {
		f.username, cmd = f.username.Update(msg)
	} else {
		f.password, cmd = f.password.Update(msg)
	}
	return cmd
}

// View renders the login card.
func (f *loginForm) View(p *Palette) string {
	check := "[ ]"
	if f.remember {
		check = "[x]"
	}

	out := p.title.Render("Khmer Lyrics") + "\n"
	out += p.subtitle.Render("Your personal lyrics collection") + "\n\n"

	if f.errMsg != "" {
		out += p.err.Render(f.errMsg) + "\n\n"
	}

	out += p.label.Render("Username") + "\n" + f.username.View() + "\n\n"
	out += p.label.Render("Password") + "\n" + f.password.View() + "\n\n"
	out += fmt.Sprintf("%s Remember me\n\n", check)

	if f.submitting {
		out += p.subtitle.Render("Signing in…") + "\n"
	}

	return out
}
