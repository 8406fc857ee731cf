// internal/event/event.go
package event

import "github.com/SEPLEMBER/Oxy-test/internal/buffer"

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Document events
	TypeBufferModified // buffer content changed
	TypeBufferLoaded   // a file was opened or a new document started
	TypeBufferSaved    // the document was written
	TypeHistoryChanged // undo/redo availability changed
	TypeMatchesChanged // search results or the current match changed
	TypeStatusChanged  // the status summary was recomputed

	// Batch jobs
	TypeJobProgress
	TypeJobFinished

	TypeThemeChanged
)

func (t Type) String() string {
	switch t {
	case TypeBufferModified:
		return "BufferModified"
	case TypeBufferLoaded:
		return "BufferLoaded"
	case TypeBufferSaved:
		return "BufferSaved"
	case TypeHistoryChanged:
		return "HistoryChanged"
	case TypeMatchesChanged:
		return "MatchesChanged"
	case TypeStatusChanged:
		return "StatusChanged"
	case TypeJobProgress:
		return "JobProgress"
	case TypeJobFinished:
		return "JobFinished"
	case TypeThemeChanged:
		return "ThemeChanged"
	}
	return "Unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// BufferModifiedData carries the replacement that was applied.
type BufferModifiedData struct {
	Delta buffer.Delta
}

// BufferLoadedData names the loaded document; empty for a new one.
type BufferLoadedData struct {
	FilePath string
}

// BufferSavedData contains info about the saved buffer.
type BufferSavedData struct {
	FilePath string
}

// HistoryChangedData reports which history steps are available.
type HistoryChangedData struct {
	CanUndo bool
	CanRedo bool
}

// MatchesChangedData is the current match (0-based, -1 when none) and
// the match count.
type MatchesChangedData struct {
	Index int
	Total int
}

// StatusChangedData is the recomputed summary line.
type StatusChangedData struct {
	Summary string
}

// ThemeChangedData names the active theme.
type ThemeChangedData struct {
	Name string
}

// JobProgressData is a live snapshot of a batch job's counters.
type JobProgressData struct {
	JobID             string
	FilesScanned      int
	MatchesFound      int
	FilesChanged      int
	ReplacementsTotal int
}

// JobFinishedData is the terminal report of a batch job.
type JobFinishedData struct {
	JobID   string
	Outcome string // completed, cancelled or failed
	Summary string
	Err     error
}
