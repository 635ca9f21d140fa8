package library

import (
	"errors"

	"github.com/sopheara/klyr/internal/models"
	"github.com/sopheara/klyr/internal/shared"
)

// SubmitState is one form submission's position in its lifecycle.
type SubmitState int

const (
	// Idle: nothing in flight; the draft is editable.
	Idle SubmitState = iota
	// Validating: the draft is being checked locally.
	Validating
	// Submitting: the remote write is in flight; a second submission
	// cannot start and the draft must not change.
	Submitting
)

// Submission tracks one create or edit form through
// Idle → Validating → (rejected: Idle+error) | Submitting →
// (success: navigate) | (failure: Idle+error, draft preserved).
// There is no partial success: a submission either fully succeeds or
// fully fails with the draft intact.
type Submission struct {
	state  SubmitState
	draft  models.Draft
	errMsg string
}

// NewSubmission creates an Idle submission around the given draft.
func NewSubmission(draft models.Draft) *Submission {
	return &Submission{draft: draft}
}

// State returns the current lifecycle position.
func (s *Submission) State() SubmitState { return s.state }

// InFlight reports whether a remote write is pending.
func (s *Submission) InFlight() bool { return s.state == Submitting }

// ErrMessage returns the inline error to show, or "".
func (s *Submission) ErrMessage() string { return s.errMsg }

// Draft returns the current draft value.
func (s *Submission) Draft() models.Draft { return s.draft }

// SetField edits one draft field. Edits are ignored while a write is in
// flight so a late response cannot race the form.
func (s *Submission) SetField(name models.FieldName, value string) error {
	if s.state == Submitting {
		return nil
	}
	return s.draft.SetField(name, value)
}

// Begin validates the draft and, when it passes, moves to Submitting.
// It returns false when the draft is rejected (the inline error is set and
// the state returns to Idle) or when a submission is already in flight.
func (s *Submission) Begin() bool {
	if s.state == Submitting {
		return false
	}

	s.state = Validating
	if err := s.draft.Validate(); err != nil {
		s.state = Idle
		s.errMsg = "Please enter a song title"
		return false
	}

	s.state = Submitting
	s.errMsg = ""
	return true
}

// Complete records the remote outcome. On failure the draft is preserved and
// an inline message set; on success the submission returns to Idle clean and
// the caller navigates away.
func (s *Submission) Complete(err error) {
	s.state = Idle
	if err == nil {
		s.errMsg = ""
		return
	}

	switch {
	case errors.Is(err, shared.ErrValidation):
		s.errMsg = "Please enter a song title"
	default:
		s.errMsg = "Failed to save song. Please try again."
	}
}
