package builtins

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/quocvuong92/cmdtree/internal/command"
	"github.com/quocvuong92/cmdtree/internal/logging"
)

// handleSource dispatches every line of a script. It stops at the first
// line whose status is negative and returns that status.
func handleSource(self *command.Node, ctx any, args []string) int {
	h := hostOf(ctx)
	if len(args) != 2 {
		return usageError(h, self)
	}
	return Source(h, args[1])
}

// Source runs the script at path through h line by line. A final line
// without a trailing newline is still run.
func Source(h Host, path string) int {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(h.Out(), "source: %v\n", err)
		return command.StatusFailure
	}
	defer f.Close()

	log := h.Logger().WithFields(logging.Fields{"component": "source", "path": path})
	reader := bufio.NewReader(f)
	lineno := 0
	for {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			log.Error("read failed", readErr, logging.Fields{"line": lineno + 1})
			fmt.Fprintf(h.Out(), "source: %s: %v\n", path, readErr)
			return command.StatusFailure
		}

		if line != "" {
			lineno++
			status, err := h.Dispatch(strings.TrimRight(line, "\r\n"))
			if err != nil {
				fmt.Fprintf(h.Out(), "source: %s:%d: %v\n", path, lineno, err)
			}
			if status < 0 {
				log.Debug("script stopped", logging.Fields{"line": lineno, "status": status})
				return status
			}
		}

		if readErr != nil {
			return command.StatusOK
		}
	}
}
