package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Session errors
	ErrInvalidCredentials = fmt.Errorf("invalid username or password")
	ErrNotAuthenticated   = fmt.Errorf("not authenticated")

	// Remote store errors
	ErrStoreUnavailable = fmt.Errorf("song store unavailable")
	ErrSongNotFound     = fmt.Errorf("song not found")

	// Submission errors
	ErrValidation  = fmt.Errorf("validation failed")
	ErrPersistence = fmt.Errorf("failed to persist song")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
