package history

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/quocvuong92/cmdtree/internal/constants"
	"github.com/quocvuong92/cmdtree/internal/logging"
)

// History is an in-memory line list backed by an optional file. An empty
// path keeps history for the session only.
type History struct {
	path   string
	limit  int
	lines  []string
	logger *logging.FieldLogger
}

// New creates a History for path that keeps at most limit entries
// (constants.DefaultHistoryLimit when limit <= 0).
func New(path string, limit int, logger *logging.Logger) *History {
	if limit <= 0 {
		limit = constants.DefaultHistoryLimit
	}
	if logger == nil {
		logger = logging.DefaultLogger
	}
	return &History{
		path:   path,
		limit:  limit,
		logger: logger.WithFields(logging.Fields{"component": "history"}),
	}
}

// Path returns the backing file, or "" if history is not persisted.
func (h *History) Path() string {
	return h.path
}

// Load replaces the in-memory entries with the file contents. A missing
// file is not an error.
func (h *History) Load() error {
	if h.path == "" {
		return nil
	}
	f, err := os.Open(h.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to open history file %s: %w", h.path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := scanner.Text(); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read history file %s: %w", h.path, err)
	}

	h.lines = lines
	h.trim()
	h.logger.Debug("history loaded", logging.Fields{"path": h.path, "entries": len(h.lines)})
	return nil
}

// Save writes the entries to the backing file with owner-only permissions.
func (h *History) Save() error {
	if h.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(h.path), 0700); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	f, err := os.OpenFile(h.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to write history file %s: %w", h.path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, line := range h.lines {
		w.WriteString(line)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write history file %s: %w", h.path, err)
	}
	h.logger.Debug("history saved", logging.Fields{"path": h.path, "entries": len(h.lines)})
	return nil
}

// Add appends line unless it is blank or equal to the previous entry.
// Embedded newlines would break the file format and are replaced by spaces.
func (h *History) Add(line string) bool {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return false
	}
	line = strings.NewReplacer("\r", " ", "\n", " ").Replace(line)
	if line == h.Last() {
		return false
	}
	h.lines = append(h.lines, line)
	h.trim()
	return true
}

// Lines returns a copy of the entries, oldest first.
func (h *History) Lines() []string {
	out := make([]string, len(h.lines))
	copy(out, h.lines)
	return out
}

// Last returns the most recent entry.
func (h *History) Last() string {
	if len(h.lines) == 0 {
		return ""
	}
	return h.lines[len(h.lines)-1]
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.lines)
}

// Clear removes all entries. The file is rewritten on the next Save.
func (h *History) Clear() {
	h.lines = nil
}

func (h *History) trim() {
	if over := len(h.lines) - h.limit; over > 0 {
		h.lines = append([]string(nil), h.lines[over:]...)
	}
}
