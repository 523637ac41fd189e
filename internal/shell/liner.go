package shell

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"

	"github.com/quocvuong92/cmdtree/internal/complete"
	"github.com/quocvuong92/cmdtree/internal/logging"
)

// runLiner reads lines with liner until quit, Ctrl+C or Ctrl+D. liner has
// no suggestion menu, so Tab cycles through whole-line completions and
// argument hints are not shown.
func (s *Shell) runLiner() error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(s.lineCompleter)
	for _, h := range s.history.Lines() {
		line.AppendHistory(h)
	}

	for !s.quit {
		input, err := line.Prompt(s.prefix())
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out)
				return nil
			}
			s.log.Error("prompt failed", err)
			return fmt.Errorf("failed to read input: %w", err)
		}

		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}
		status := s.RunLine(input)
		s.log.Debug("line done", logging.Fields{"status": status})
	}
	return nil
}

// lineCompleter adapts the completion engine to liner's whole-line form.
func (s *Shell) lineCompleter(line string) []string {
	return complete.Candidates(s.root, line, s.dispatcher.Delimiters())
}
