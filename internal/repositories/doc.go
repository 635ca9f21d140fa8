// Package repositories provides the persisted key-value store backing
// session and theme state.
//
// [PrefRepository] stores string-keyed entries (the authentication flag,
// the theme preference, and the saved login JSON) in a local SQLite
// database, surviving restarts the way browser local storage would.
package repositories
