package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/sopheara/klyr/internal/library"
	"github.com/sopheara/klyr/internal/models"
	"github.com/sopheara/klyr/internal/session"
	"github.com/sopheara/klyr/internal/shared"
)

// loginDelay approximates the web client's short sign-in pause.
const loginDelay = 400 * time.Millisecond

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	lib    *library.Library
	sess   *session.Manager
	theme  *session.ThemeController
	logger *log.Logger

	route session.Route
	// epoch increments on every navigation; async responses stamped with an
	// older epoch are dropped instead of mutating a view the user left.
	epoch  int
	width  int
	height int

	// home
	songList   list.Model
	songs      []models.Song
	search     textinput.Model
	listReady  bool
	loadFailed bool

	// detail / edit
	currentID        string
	current          *models.Song
	confirmingDelete bool
	deleteErr        string

	// add / edit form
	form *songForm

	login *loginForm

	spin    spinner.Model
	loading bool

	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model with the provided dependencies. Session
// and theme state must already be initialized.
func NewModel(ctx context.Context, lib *library.Library, sess *session.Manager, theme *session.ThemeController, logger *log.Logger) *Model {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search songs by title or artist..."

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		ctx:    ctx,
		lib:    lib,
		sess:   sess,
		theme:  theme,
		logger: logger,
		search: search,
		spin:   sp,
		help:   help.New(),
		keys:   newKeyMap(),
	}
}

// Init requests the home view; the guard lands unauthenticated users on login.
func (m *Model) Init() tea.Cmd {
	return m.navigate(session.RouteHome)
}

// navigate runs the guard for the requested route and prepares that view.
// It is the only place the route changes.
func (m *Model) navigate(route session.Route) tea.Cmd {
	switch session.Resolve(m.sess.IsAuthenticated(), route) {
	case session.RedirectLogin:
		m.logger.Debug("guard redirect", "from", route, "to", session.RouteLogin)
		route = session.RouteLogin
	case session.RedirectHome:
		m.logger.Debug("guard redirect", "from", route, "to", session.RouteHome)
		route = session.RouteHome
	}

	m.epoch++
	m.route = route
	m.confirmingDelete = false
	m.deleteErr = ""

	switch route {
	case session.RouteLogin:
		var user, pass string
		var remembered bool
		if saved, ok := m.sess.SavedLogin(); ok {
			user, pass, remembered = saved.Username, saved.Password, true
		}
		m.login = newLoginForm(user, pass, remembered)
		return textinput.Blink

	case session.RouteHome:
		m.loading = true
		return tea.Batch(m.loadSongs(m.epoch), m.spin.Tick)

	case session.RouteSongDetail:
		m.current = nil
		m.loading = true
		return tea.Batch(m.fetchSong(m.currentID, m.epoch, false), m.spin.Tick)

	case session.RouteAddSong:
		m.form = newSongForm(models.Draft{})
		return textinput.Blink

	case session.RouteEditSong:
		m.form = nil
		m.loading = true
		return tea.Batch(m.fetchSong(m.currentID, m.epoch, true), m.spin.Tick)
	}

	return nil
}

// navigateSong opens a song-scoped route.
func (m *Model) navigateSong(route session.Route, id string) tea.Cmd {
	m.currentID = id
	return m.navigate(route)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.listReady {
			m.songList.SetSize(msg.Width-4, msg.Height-10)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch m.route {
		case session.RouteLogin:
			return m.handleLoginKeys(msg)
		case session.RouteHome:
			return m.handleHomeKeys(msg)
		case session.RouteSongDetail:
			return m.handleDetailKeys(msg)
		case session.RouteAddSong, session.RouteEditSong:
			return m.handleFormKeys(msg)
		}

	case songsLoadedMsg:
		if msg.epoch != m.epoch {
			return m, nil
		}
		m.loading = false
		m.songs = msg.songs
		m.loadFailed = msg.err != nil
		m.rebuildList()
		return m, nil

	case songFetchedMsg:
		if msg.epoch != m.epoch {
			return m, nil
		}
		m.loading = false
		if msg.redirect {
			return m, m.navigate(session.RouteHome)
		}
		if msg.forEdit {
			m.form = newSongForm(models.DraftFromSong(*msg.song))
			return m, textinput.Blink
		}
		m.current = msg.song
		return m, nil

	case submitDoneMsg:
		if msg.epoch != m.epoch {
			return m, nil
		}
		if m.form == nil {
			return m, nil
		}
		m.form.Submission().Complete(msg.err)
		if msg.err != nil {
			return m, nil
		}
		if m.route == session.RouteEditSong {
			return m, m.navigateSong(session.RouteSongDetail, m.currentID)
		}
		return m, m.navigate(session.RouteHome)

	case deleteDoneMsg:
		if msg.epoch != m.epoch {
			return m, nil
		}
		if msg.err != nil {
			// Keep the confirmation open so the user can retry.
			m.deleteErr = "Failed to delete song. Please try again."
			return m, nil
		}
		return m, m.navigate(session.RouteHome)

	case loginDoneMsg:
		if msg.epoch != m.epoch {
			return m, nil
		}
		m.login.submitting = false
		if !msg.ok {
			m.login.errMsg = "Invalid username or password"
			return m, nil
		}
		return m, m.navigate(session.RouteHome)
	}

	return m.updateWidgets(msg)
}

// View renders the UI based on the current route.
func (m *Model) View() string {
	p := paletteFor(m.theme.Current())

	switch m.route {
	case session.RouteLogin:
		return m.renderLogin(p)
	case session.RouteHome:
		return m.renderHome(p)
	case session.RouteSongDetail:
		return m.renderDetail(p)
	case session.RouteAddSong:
		return m.renderForm(p, "Add New Song")
	case session.RouteEditSong:
		return m.renderForm(p, "Edit Song")
	default:
		return ""
	}
}

func (m *Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab", "shift+tab":
		return m, m.login.focusField(m.login.focus + 1)
	case "ctrl+r":
		m.login.remember = !m.login.remember
		return m, nil
	case "ctrl+p":
		m.login.toggleEcho()
		return m, nil
	case "enter":
		if m.login.submitting {
			return m, nil
		}
		m.login.errMsg = ""
		m.login.submitting = true
		ok := m.sess.Login(m.login.username.Value(), m.login.password.Value(), m.login.remember)
		epoch := m.epoch
		return m, tea.Tick(loginDelay, func(time.Time) tea.Msg {
			return loginDoneMsg{epoch: epoch, ok: ok}
		})
	}

	return m, m.login.Update(msg)
}

func (m *Model) handleHomeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.search.Focused() {
		switch msg.String() {
		case "esc", "enter":
			m.search.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			m.applyFilter()
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.search):
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.add):
		return m, m.navigate(session.RouteAddSong)
	case key.Matches(msg, m.keys.theme):
		m.theme.Toggle()
		return m, nil
	case key.Matches(msg, m.keys.logout):
		m.sess.Logout()
		return m, m.navigate(session.RouteLogin)
	case key.Matches(msg, m.keys.enter):
		if !m.listReady {
			return m, nil
		}
		if item, ok := m.songList.SelectedItem().(songItem); ok {
			return m, m.navigateSong(session.RouteSongDetail, item.song.ID)
		}
		return m, nil
	}

	return m.updateWidgets(msg)
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmingDelete {
		switch msg.String() {
		case "y":
			epoch := m.epoch
			id := m.currentID
			return m, func() tea.Msg {
				return deleteDoneMsg{epoch: epoch, err: m.lib.Delete(m.ctx, id)}
			}
		case "n", "esc":
			m.confirmingDelete = false
			m.deleteErr = ""
			return m, nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		return m, m.navigate(session.RouteHome)
	case key.Matches(msg, m.keys.edit):
		return m, m.navigateSong(session.RouteEditSong, m.currentID)
	case key.Matches(msg, m.keys.delete):
		m.confirmingDelete = true
		return m, nil
	case key.Matches(msg, m.keys.open):
		if m.current != nil && m.current.YoutubeURL != "" {
			if err := shared.OpenBrowser(m.current.YoutubeURL); err != nil {
				m.logger.Warn("failed to open video link", "err", err)
			}
		}
		return m, nil
	case key.Matches(msg, m.keys.theme):
		m.theme.Toggle()
		return m, nil
	}

	return m, nil
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		if msg.String() == "esc" {
			return m, m.navigate(session.RouteHome)
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.route == session.RouteEditSong {
			return m, m.navigateSong(session.RouteSongDetail, m.currentID)
		}
		return m, m.navigate(session.RouteHome)
	case "tab":
		return m, m.form.focusField(m.form.focus + 1)
	case "shift+tab":
		return m, m.form.focusField(m.form.focus - 1)
	case "ctrl+s":
		return m, m.submitForm()
	}

	return m, m.form.Update(msg)
}

// submitForm starts the submission state machine and issues the remote write.
func (m *Model) submitForm() tea.Cmd {
	sub := m.form.Submission()
	if !sub.Begin() {
		return nil
	}

	epoch := m.epoch
	draft := sub.Draft()

	if m.route == session.RouteEditSong {
		id := m.currentID
		return func() tea.Msg {
			return submitDoneMsg{epoch: epoch, id: id, err: m.lib.Update(m.ctx, id, draft)}
		}
	}

	return func() tea.Msg {
		id, err := m.lib.Create(m.ctx, draft)
		return submitDoneMsg{epoch: epoch, id: id, err: err}
	}
}

// updateWidgets forwards messages to the active view's widgets.
func (m *Model) updateWidgets(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.route {
	case session.RouteHome:
		if m.listReady {
			m.songList, cmd = m.songList.Update(msg)
		}
	case session.RouteLogin:
		if m.login != nil {
			cmd = m.login.Update(msg)
		}
	case session.RouteAddSong, session.RouteEditSong:
		if m.form != nil {
			cmd = m.form.Update(msg)
		}
	}
	return m, cmd
}

// rebuildList recreates the home list from the current songs and search term.
func (m *Model) rebuildList() {
	items := songItems(library.Search(m.songs, m.search.Value()))
	if !m.listReady {
		m.songList = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-10)
		m.songList.SetShowTitle(false)
		m.songList.SetShowFilter(false)
		m.songList.SetFilteringEnabled(false)
		m.listReady = true
		return
	}
	m.songList.SetItems(items)
}

// applyFilter re-filters the visible list without refetching.
func (m *Model) applyFilter() {
	if m.listReady {
		m.songList.SetItems(songItems(library.Search(m.songs, m.search.Value())))
	}
}

func (m *Model) loadSongs(epoch int) tea.Cmd {
	return func() tea.Msg {
		songs, err := m.lib.LoadAll(m.ctx)
		return songsLoadedMsg{epoch: epoch, songs: songs, err: err}
	}
}

func (m *Model) fetchSong(id string, epoch int, forEdit bool) tea.Cmd {
	return func() tea.Msg {
		song, redirect := m.lib.LoadOne(m.ctx, id)
		return songFetchedMsg{epoch: epoch, song: song, redirect: redirect, forEdit: forEdit}
	}
}

func (m *Model) renderLogin(p *Palette) string {
	out := m.login.View(p)
	out += p.help.Render("enter sign in • tab switch field • ctrl+r remember • ctrl+p show/hide • ctrl+c quit")
	return out
}

func (m *Model) renderHome(p *Palette) string {
	header := p.title.Render("My Collection")
	count := p.subtitle.Render(fmt.Sprintf("%d %s saved", len(m.songs), pluralize(len(m.songs), "song")))

	if m.loading {
		return fmt.Sprintf("%s\n%s Loading your collection...\n", header, m.spin.View())
	}

	var notice string
	if m.loadFailed {
		notice = "\n" + p.err.Render("Couldn't reach the song store — showing an empty collection.")
	}

	var body string
	switch {
	case len(m.songs) == 0:
		body = p.subtitle.Render("No songs yet. Start building your lyrics collection — press a to add one.")
	case m.listReady && len(m.songList.Items()) == 0:
		body = p.subtitle.Render("No songs found. Try a different search term.")
	case m.listReady:
		body = m.songList.View()
	}

	helpView := m.help.ShortHelpView([]key.Binding{
		m.keys.enter, m.keys.search, m.keys.add, m.keys.theme, m.keys.logout, m.keys.quit,
	})

	return fmt.Sprintf("%s\n%s%s\n\n%s\n\n%s\n%s", header, count, notice, m.search.View(), body, helpView)
}

func (m *Model) renderDetail(p *Palette) string {
	if m.loading || m.current == nil {
		return fmt.Sprintf("%s Loading song...\n", m.spin.View())
	}

	song := m.current
	out := p.title.Render(song.Title) + "\n"
	out += p.subtitle.Render(song.DisplayArtist()) + "\n"
	if song.YoutubeURL != "" {
		out += p.subtitle.Render(song.YoutubeURL) + "\n"
	}
	out += "\n"

	sections := []struct {
		label string
		body  string
	}{
		{"ខ្មែរ", song.LyricsKhmer},
		{"Romanized", song.LyricsRomanized},
		{"English", song.LyricsEnglish},
	}
	for _, sec := range sections {
		if sec.body == "" {
			continue
		}
		out += p.tag.Render(sec.label) + "\n" + sec.body + "\n\n"
	}

	if m.confirmingDelete {
		modal := "Delete this song?\nThis cannot be undone.\n\ny delete • n cancel"
		if m.deleteErr != "" {
			modal = p.err.Render(m.deleteErr) + "\n\n" + modal
		}
		out += "\n" + p.modal.Render(modal) + "\n"
		return out
	}

	helpView := m.help.ShortHelpView([]key.Binding{
		m.keys.edit, m.keys.delete, m.keys.open, m.keys.back, m.keys.quit,
	})

	return out + "\n" + helpView
}

func (m *Model) renderForm(p *Palette, title string) string {
	if m.form == nil {
		return fmt.Sprintf("%s Loading song...\n", m.spin.View())
	}

	helpView := m.help.ShortHelpView([]key.Binding{
		m.keys.submit, m.keys.next, m.keys.back,
	})

	return p.title.Render(title) + "\n" + m.form.View(p) + "\n" + helpView
}

func pluralize(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
