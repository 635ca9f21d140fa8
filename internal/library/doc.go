// Package library mediates between views and the remote songs collection.
//
// [Library] wraps a [services.SongService] and translates adapter failures
// into the outcomes views act on: an empty list plus a load error, a
// redirect signal for missing songs, or a retained draft with an inline
// message for failed submissions. [Submission] tracks one form's progress
// through validate and submit so a second submission cannot start while
// one is in flight.
package library
