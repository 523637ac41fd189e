// Package history persists interactive line history between sessions.
//
// The on-disk format is one entry per line, oldest first, which is also
// what liner's ReadHistory and WriteHistory use.
package history

// HistoryManager defines the interface for managing line history.
// This interface enables dependency injection and easier testing.
type HistoryManager interface {
	// Load reads the history from disk
	Load() error

	// Save writes the history to disk
	Save() error

	// Add records a line, skipping blanks and immediate repeats
	Add(line string) bool

	// Lines returns every entry, oldest first
	Lines() []string

	// Last returns the most recent entry, or "" when empty
	Last() string

	// Len returns the number of entries
	Len() int

	// Clear removes all entries
	Clear()
}

// Ensure concrete type implements the interface
var _ HistoryManager = (*History)(nil)
