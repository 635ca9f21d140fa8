// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI mirrors the archive's navigable routes:
//  1. [session.RouteLogin] : Credential form with remember-me
//  2. [session.RouteHome] : Collection list with live search
//  3. [session.RouteSongDetail] : Lyric variants plus the delete confirm modal
//  4. [session.RouteAddSong] / [session.RouteEditSong] : Draft forms
//
// Every navigation passes through the route guard, so an expired session
// lands on the login view and a logged-in user never sees it. Remote calls
// run as bubbletea commands; responses carry a navigation epoch and are
// dropped when they arrive after the user has moved on.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
