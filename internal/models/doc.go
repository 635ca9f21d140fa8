// Package models defines the domain entities for the klyr lyrics archive.
//
// The package contains two categories of types:
//
// 1. Remote documents: records owned by the songs collection
//   - [Song] : A stored song with three parallel lyric variants
//
// 2. View-local state: in-progress data that never leaves the process until submitted
//   - [Draft] : Editable Song fields held by create/edit forms
//   - [Credentials] : A username/password pair for the login gate
//
// Song identity (ID) and both timestamps are assigned by the store; a Draft
// carries every Song field except those three.
package models
