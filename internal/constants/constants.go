// Package constants provides shared constants used across the application
// to avoid circular dependencies between packages.
package constants

// AppName names the binary, the config directory and the env prefix.
const AppName = "cmdtree"

// Interpreter defaults
const (
	// DefaultPrompt is shown before every interactive line
	DefaultPrompt = "cmdtree> "
	// DefaultDelimiters separate tokens on a line
	DefaultDelimiters = " \t\r\n"
	// DefaultCommentMarker starts a comment token
	DefaultCommentMarker = "#"
	// DefaultMaxDepth bounds nested dispatch (source calling source ...)
	DefaultMaxDepth = 32
)

// Editors selectable with the editor setting
const (
	EditorPrompt = "prompt"
	EditorLiner  = "liner"
)

// DefaultEditor is the line editor used for interactive sessions
const DefaultEditor = EditorPrompt

// History defaults
const (
	// HistoryFileName is the file under the config directory holding line history
	HistoryFileName = "history"
	// DefaultHistoryLimit caps the number of lines kept on disk
	DefaultHistoryLimit = 1000
)
