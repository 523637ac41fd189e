package builtins

import (
	"errors"
	"fmt"

	"github.com/quocvuong92/cmdtree/internal/command"
	"github.com/quocvuong92/cmdtree/internal/logging"
)

// handleLog shows the logger state, or delegates to level/file/format.
func handleLog(self *command.Node, ctx any, args []string) int {
	h := hostOf(ctx)
	if len(args) == 1 {
		l := h.Logger()
		fmt.Fprintf(h.Out(), "level: %s\n", l.Level())
		fmt.Fprintf(h.Out(), "output: %s\n", l.OutputPath())
		return command.StatusOK
	}

	status, err := self.ExecChild(args)
	if err != nil {
		fmt.Fprintf(h.Out(), "log: %v\n", err)
		if errors.Is(err, command.ErrNotFound) {
			fmt.Fprint(h.Out(), command.HelpText(self))
		}
	}
	return status
}

func handleLogLevel(self *command.Node, ctx any, args []string) int {
	h := hostOf(ctx)
	if len(args) == 1 {
		fmt.Fprintf(h.Out(), "level: %s\n", h.Logger().Level())
		return command.StatusOK
	}
	if len(args) != 2 {
		return usageError(h, self)
	}
	level, err := logging.ParseLevelStrict(args[1])
	if err != nil {
		fmt.Fprintf(h.Out(), "log level: %v\n", err)
		return usageError(h, self)
	}
	h.Logger().SetLevel(level)
	return command.StatusOK
}

func handleLogFile(self *command.Node, ctx any, args []string) int {
	h := hostOf(ctx)
	if len(args) != 2 {
		return usageError(h, self)
	}
	if err := h.Logger().SetOutputFile(args[1]); err != nil {
		fmt.Fprintf(h.Out(), "log file: %v\n", err)
		return command.StatusFailure
	}
	return command.StatusOK
}

func handleLogFormat(self *command.Node, ctx any, args []string) int {
	h := hostOf(ctx)
	if len(args) != 2 {
		return usageError(h, self)
	}
	format, err := logging.ParseFormat(args[1])
	if err != nil {
		fmt.Fprintf(h.Out(), "log format: %v\n", err)
		return command.StatusFailure
	}
	h.Logger().SetFormat(format)
	return command.StatusOK
}
