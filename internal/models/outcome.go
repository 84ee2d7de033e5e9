package models

import "fmt"

// FileEntry is an immediate regular file of the target directory.
type FileEntry struct {
	Name string `json:"name"` // Base name as listed
	Ext  string `json:"ext"`  // Lowercase extension with leading dot, empty when none
	Path string `json:"path"` // Full path at listing time
	Size int64  `json:"size"` // Size in bytes at listing time
}

// OutcomeKind enumerates what happened to a single file.
type OutcomeKind int

const (
	Moved OutcomeKind = iota
	Skipped
	Failed
	Empty
	Planned
)

func (k OutcomeKind) String() string {
	switch k {
	case Moved:
		return "moved"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	case Empty:
		return "empty"
	case Planned:
		return "planned"
	default:
		return ""
	}
}

// MarshalText renders the kind by name in JSON output.
func (k OutcomeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Outcome is the per-file result of an organize run.
type Outcome struct {
	Kind      OutcomeKind `json:"kind"`
	Category  string      `json:"category,omitempty"`
	FinalName string      `json:"final_name,omitempty"`
	Reason    string      `json:"reason,omitempty"`
	Err       error       `json:"-"`
}

// MovedTo builds a [Moved] outcome.
func MovedTo(category, finalName string) Outcome {
	return Outcome{Kind: Moved, Category: category, FinalName: finalName}
}

// PlannedFor builds a [Planned] outcome used by dry runs.
func PlannedFor(category, finalName string) Outcome {
	return Outcome{Kind: Planned, Category: category, FinalName: finalName}
}

// SkippedNoMatch builds a [Skipped] outcome for files whose extension is not in the table.
func SkippedNoMatch() Outcome {
	return Outcome{Kind: Skipped, Reason: "no category match"}
}

// FailedWith builds a [Failed] outcome from err.
func FailedWith(category string, err error) Outcome {
	return Outcome{Kind: Failed, Category: category, Reason: err.Error(), Err: err}
}

// AlreadyEmpty builds the informational [Empty] outcome.
func AlreadyEmpty() Outcome {
	return Outcome{Kind: Empty, Reason: "already empty"}
}

func (o Outcome) String() string {
	switch o.Kind {
	case Moved, Planned:
		return fmt.Sprintf("%s(%s, %s)", o.Kind, o.Category, o.FinalName)
	case Skipped, Failed, Empty:
		return fmt.Sprintf("%s(%s)", o.Kind, o.Reason)
	default:
		return o.Kind.String()
	}
}

// Result pairs a file with what happened to it.
type Result struct {
	File    FileEntry `json:"file"`
	Outcome Outcome   `json:"outcome"`
}
