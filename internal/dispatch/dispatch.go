// Package dispatch turns input lines into command executions.
//
// A Dispatcher tokenizes a line, drops everything from the first comment
// token on, looks the first token up among the root's children and runs
// the matching command. Handlers may call Dispatch again (a "source"
// command running a script, for instance); a depth counter shared by all
// those nested calls bounds the recursion.
package dispatch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/quocvuong92/cmdtree/internal/command"
	"github.com/quocvuong92/cmdtree/internal/complete"
	"github.com/quocvuong92/cmdtree/internal/constants"
	"github.com/quocvuong92/cmdtree/internal/logging"
)

// Defaults - re-exported from constants for convenience
const (
	DefaultDelimiters    = constants.DefaultDelimiters
	DefaultCommentMarker = constants.DefaultCommentMarker
	DefaultMaxDepth      = constants.DefaultMaxDepth
)

// Errors
var (
	ErrCommandNotFound = errors.New("command not found")
	ErrRecursionLimit  = errors.New("dispatch recursion limit exceeded")
)

// Dispatcher resolves and runs lines against a root command.
type Dispatcher struct {
	root     *command.Node
	delims   string
	comment  string
	maxDepth int
	depth    int
	logger   *logging.FieldLogger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithDelimiters sets the runes that separate tokens.
func WithDelimiters(delims string) Option {
	return func(d *Dispatcher) {
		if delims != "" {
			d.delims = delims
		}
	}
}

// WithCommentMarker sets the prefix that starts a comment token. An empty
// marker disables comments.
func WithCommentMarker(marker string) Option {
	return func(d *Dispatcher) {
		d.comment = marker
	}
}

// WithMaxDepth bounds nested dispatch.
func WithMaxDepth(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.maxDepth = n
		}
	}
}

// WithLogger sets the logger used for dispatch diagnostics.
func WithLogger(l *logging.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l.WithFields(logging.Fields{"component": "dispatch"})
		}
	}
}

// New creates a Dispatcher for root's children.
func New(root *command.Node, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		root:     root,
		delims:   DefaultDelimiters,
		comment:  DefaultCommentMarker,
		maxDepth: DefaultMaxDepth,
		logger:   logging.DefaultLogger.WithFields(logging.Fields{"component": "dispatch"}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Root returns the command tree root.
func (d *Dispatcher) Root() *command.Node { return d.root }

// Delimiters returns the token delimiter set.
func (d *Dispatcher) Delimiters() string { return d.delims }

// Depth returns the current nesting depth; 0 when no dispatch is running.
func (d *Dispatcher) Depth() int { return d.depth }

// MaxDepth returns the nesting limit.
func (d *Dispatcher) MaxDepth() int { return d.maxDepth }

// Tokenize splits line and drops the comment token and everything after it.
func (d *Dispatcher) Tokenize(line string) []string {
	tokens := complete.Split(line, d.delims)
	if d.comment == "" {
		return tokens
	}
	for i, tok := range tokens {
		if strings.HasPrefix(tok, d.comment) {
			return tokens[:i]
		}
	}
	return tokens
}

// Dispatch runs line. Blank and comment-only lines succeed without running
// anything. The handler's status is returned unchanged; failures of the
// dispatcher itself return command.StatusFailure and an error.
func (d *Dispatcher) Dispatch(line string) (int, error) {
	d.depth++
	defer func() { d.depth-- }()

	if d.depth > d.maxDepth {
		d.logger.Error("refusing to dispatch", ErrRecursionLimit, logging.Fields{
			"depth": d.depth,
			"max":   d.maxDepth,
		})
		return command.StatusFailure, fmt.Errorf("%w (max %d)", ErrRecursionLimit, d.maxDepth)
	}

	tokens := d.Tokenize(line)
	if len(tokens) == 0 {
		return command.StatusOK, nil
	}

	node := d.root.FindByKeyword(tokens[0])
	if node == nil {
		d.logger.Warn("command not found", logging.Fields{"keyword": tokens[0]})
		return command.StatusFailure, fmt.Errorf("%w: %s", ErrCommandNotFound, tokens[0])
	}

	d.logger.Debug("dispatch", logging.Fields{"keyword": tokens[0], "argc": len(tokens), "depth": d.depth})
	return node.Exec(tokens), nil
}
