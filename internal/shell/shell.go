// Package shell runs the interpreter: it owns the command tree, the
// dispatcher and the line history, and feeds lines to them from an
// interactive editor, a script or a plain reader.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/quocvuong92/cmdtree/internal/builtins"
	"github.com/quocvuong92/cmdtree/internal/command"
	"github.com/quocvuong92/cmdtree/internal/config"
	"github.com/quocvuong92/cmdtree/internal/constants"
	"github.com/quocvuong92/cmdtree/internal/dispatch"
	"github.com/quocvuong92/cmdtree/internal/display"
	"github.com/quocvuong92/cmdtree/internal/history"
	"github.com/quocvuong92/cmdtree/internal/logging"
)

// ContinuationMarker at the end of a line joins it with the next one.
const ContinuationMarker = `\`

// Options configures a Shell.
type Options struct {
	// Config supplies prompt, delimiters, comment marker, depth limit,
	// history file, editor and rendering. Defaults when nil.
	Config *config.Config
	// Logger is the logger the log builtin adjusts. DefaultLogger when nil.
	Logger *logging.Logger
	// Out receives command output. os.Stdout when nil.
	Out io.Writer
	// History stores entered lines. A file-backed history at
	// Config.HistoryFile when nil.
	History history.HistoryManager
}

// Shell is an interpreter session. It implements builtins.Host.
type Shell struct {
	cfg        *config.Config
	root       *command.Node
	dispatcher *dispatch.Dispatcher
	logger     *logging.Logger
	log        *logging.FieldLogger
	sessionID  string
	history    history.HistoryManager
	renderer   *display.Renderer
	out        io.Writer

	quit       bool
	pending    []string
	lastStatus int
}

var _ builtins.Host = (*Shell)(nil)

// New creates a Shell with the builtins registered and history loaded.
func New(opts Options) (*Shell, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.DefaultLogger
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	s := &Shell{
		cfg:       cfg,
		logger:    logger,
		sessionID: uuid.New().String(),
		out:       out,
	}
	s.log = logger.WithFields(logging.Fields{"component": "shell", "session": s.sessionID})
	command.SetLogger(logger)

	root, err := command.New(nil, nil, constants.AppName, "", "")
	if err != nil {
		return nil, err
	}
	s.root = root
	if err := builtins.Register(root, s); err != nil {
		return nil, err
	}

	s.dispatcher = dispatch.New(root,
		dispatch.WithDelimiters(cfg.Delimiters),
		dispatch.WithCommentMarker(cfg.Comment),
		dispatch.WithMaxDepth(cfg.MaxDepth),
		dispatch.WithLogger(logger),
	)
	s.renderer = display.NewRenderer(cfg.Render, 0)

	s.history = opts.History
	if s.history == nil {
		s.history = history.New(cfg.HistoryFile, 0, logger)
	}
	if err := s.history.Load(); err != nil {
		// History is a convenience; keep going without it.
		s.log.Warn("could not load history", logging.Fields{"error": err.Error()})
	}

	s.log.Debug("session started", logging.Fields{"editor": cfg.Editor, "max_depth": cfg.MaxDepth})
	return s, nil
}

// Register adds a command at the root of the tree.
func (s *Shell) Register(cmd *command.Node) error {
	return s.root.Register(cmd)
}

// Dispatch runs a single line through the dispatcher.
func (s *Shell) Dispatch(line string) (int, error) {
	return s.dispatcher.Dispatch(line)
}

// Root returns the command tree root.
func (s *Shell) Root() *command.Node { return s.root }

// Dispatcher returns the session dispatcher.
func (s *Shell) Dispatcher() *dispatch.Dispatcher { return s.dispatcher }

// Logger returns the logger the log builtin adjusts.
func (s *Shell) Logger() *logging.Logger { return s.logger }

// Out returns the command output writer.
func (s *Shell) Out() io.Writer { return s.out }

// Quit asks the read loop to stop after the current line.
func (s *Shell) Quit() { s.quit = true }

// Stopped reports whether quit was requested.
func (s *Shell) Stopped() bool { return s.quit }

// SessionID identifies this session in log output.
func (s *Shell) SessionID() string { return s.sessionID }

// LastStatus returns the status of the most recent line run by RunLine.
func (s *Shell) LastStatus() int { return s.lastStatus }

// Pending reports whether a continued line is waiting for more input.
func (s *Shell) Pending() bool { return len(s.pending) > 0 }

// History returns the line history, oldest first.
func (s *Shell) History() []string { return s.history.Lines() }

// RenderHelp renders help text when rendering is enabled.
func (s *Shell) RenderHelp(text string) string { return s.renderer.RenderHelp(text) }

// RunLine runs one line of user input. A line ending in a backslash is
// held and joined with the following ones. Dispatcher errors are reported
// on stderr; the status is returned either way.
func (s *Shell) RunLine(input string) int {
	if strings.HasSuffix(input, ContinuationMarker) {
		s.pending = append(s.pending, strings.TrimSuffix(input, ContinuationMarker))
		return command.StatusOK
	}
	if len(s.pending) > 0 {
		s.pending = append(s.pending, input)
		input = strings.Join(s.pending, " ")
		s.pending = nil
	}

	s.history.Add(input)
	status, err := s.Dispatch(input)
	if err != nil {
		display.ShowError(err.Error())
	}
	s.lastStatus = status
	return status
}

// RunScript sources the script at path.
func (s *Shell) RunScript(path string) int {
	path = expandHome(path)
	s.log.Info("running script", logging.Fields{"path": path})
	status := builtins.Source(s, path)
	s.lastStatus = status
	return status
}

// RunStartup sources the configured startup scripts in order and stops at
// the first one that fails.
func (s *Shell) RunStartup() int {
	for _, path := range s.cfg.Startup {
		if status := s.RunScript(path); status < 0 {
			return status
		}
		if s.quit {
			break
		}
	}
	return command.StatusOK
}

// RunReader runs every line from r until EOF or quit. Unlike a script, a
// failing line does not stop the loop. It returns the last status.
func (s *Shell) RunReader(r io.Reader) (int, error) {
	reader := bufio.NewReader(r)
	for !s.quit {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return s.lastStatus, fmt.Errorf("failed to read input: %w", err)
		}
		if line != "" {
			s.RunLine(strings.TrimRight(line, "\r\n"))
		}
		if err != nil {
			break
		}
	}
	return s.lastStatus, nil
}

// Run starts the configured interactive editor. When stdin is not a
// terminal the lines are read plainly instead.
func (s *Shell) Run() error {
	if !display.IsTTY() {
		_, err := s.RunReader(os.Stdin)
		return err
	}
	switch s.cfg.Editor {
	case constants.EditorLiner:
		return s.runLiner()
	default:
		s.runPrompt()
		return nil
	}
}

// Close persists the line history.
func (s *Shell) Close() error {
	if err := s.history.Save(); err != nil {
		s.log.Error("could not save history", err)
		return err
	}
	s.log.Debug("session closed", logging.Fields{"history": s.history.Len()})
	return nil
}

func (s *Shell) prefix() string {
	if s.Pending() {
		return "... "
	}
	return s.cfg.Prompt
}

// expandHome replaces a leading ~/ with the home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
