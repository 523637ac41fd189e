package command

import (
	"errors"

	"github.com/quocvuong92/cmdtree/internal/logging"
)

// Status codes the tree itself produces. Handlers may return any other value;
// the tree propagates it unchanged.
const (
	StatusOK      = 0
	StatusFailure = -1
)

// Errors
var (
	ErrEmptyKeyword      = errors.New("command keyword cannot be empty")
	ErrDuplicateKeyword  = errors.New("keyword already registered")
	ErrNotFound          = errors.New("command not found")
	ErrDestroyed         = errors.New("command destroyed or never initialized")
	ErrNoHandler         = errors.New("command has no handler")
	ErrMissingSubcommand = errors.New("missing sub-command")
)

var logger = logging.DefaultLogger.WithFields(logging.Fields{"component": "command"})

// SetLogger routes the tree's diagnostics through l.
func SetLogger(l *logging.Logger) {
	if l == nil {
		l = logging.DefaultLogger
	}
	logger = l.WithFields(logging.Fields{"component": "command"})
}
