package tasks

import (
	"fmt"

	"github.com/desertthunder/tidyx/internal/models"
)

// ProgressUpdate represents a progress event during an organize run.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Files processed so far
	Total   int    // Files in this run
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data (the [models.Result] of the file just processed)
}

// Fraction returns Step/Total clamped to [0,1]. Updates without files (already empty) report 1.
func (u ProgressUpdate) Fraction() float64 {
	if u.Total <= 0 {
		return 1
	}
	f := float64(u.Step) / float64(u.Total)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}

// Operation phase enumeration
type Phase int

const (
	MoveFiles Phase = iota
	AlreadyEmpty
	Complete
	Canceled
)

func (p Phase) String() string {
	switch p {
	case MoveFiles:
		return "move_files"
	case AlreadyEmpty:
		return "already_empty"
	case Complete:
		return "complete"
	case Canceled:
		return "canceled"
	default:
		return ""
	}
}

func emptyUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   AlreadyEmpty,
		Message: "Folder is already empty!",
	}
}

func movingUpdate(step, total int, res models.Result) ProgressUpdate {
	return ProgressUpdate{
		Phase:   MoveFiles,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Moving: %s...", res.File.Name),
		Data:    res,
	}
}

func completeUpdate(r *RunResult) ProgressUpdate {
	msg := fmt.Sprintf("Success! Organized %d files.", r.Moved)
	if r.DryRun {
		msg = fmt.Sprintf("Dry run: %d files would be organized.", r.Planned)
	}
	return ProgressUpdate{
		Phase:   Complete,
		Step:    r.Total,
		Total:   r.Total,
		Message: msg,
		Data:    r.Summary(),
	}
}

func canceledUpdate(processed int, r *RunResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Canceled,
		Step:    processed,
		Total:   r.Total,
		Message: fmt.Sprintf("Canceled after %d of %d files (%d moved).", processed, r.Total, r.Moved),
		Data:    r.Summary(),
	}
}
