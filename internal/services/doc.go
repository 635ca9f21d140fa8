// Package services implements the remote document store adapter for the
// songs collection.
//
// [SongService] is the contract; [HTTPService] is the JSON-over-HTTP
// implementation used in production. Tests and offline commands use the
// in-memory double from internal/testing.
package services
