package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	FetchCollection Phase = iota
	ExportSong
	ExportCompleted
	ExportFailed
)

func (p Phase) String() string {
	switch p {
	case FetchCollection:
		return "fetch_collection"
	case ExportSong:
		return "export_song"
	case ExportCompleted:
		return "export_completed"
	case ExportFailed:
		return "export_failed"
	default:
		return ""
	}
}

func fetchCollectionUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchCollection,
		Step:    1,
		Total:   1,
		Message: "Loading song collection...",
	}
}

func exportSongUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportSong,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Exported %q (%d/%d)", title, step, total),
	}
}

func exportFailedUpdate(step, total int, title string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportFailed,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Failed to export %q: %v", title, err),
	}
}

func exportCompletedUpdate(step, total, succeeded int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportCompleted,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Export complete: %d song(s) written", succeeded),
	}
}
