// Package builtins provides the commands every interpreter starts with:
// log, source, help, quit, alias, unalias, echo and history.
//
// Builtins are registered at the root without the Mutable attribute, so
// unalias refuses to remove them. Aliases created at runtime are mutable.
package builtins

import (
	"fmt"
	"io"
	"strings"

	"github.com/quocvuong92/cmdtree/internal/command"
	"github.com/quocvuong92/cmdtree/internal/logging"
)

// Host is what the builtins need from the interpreter running them.
type Host interface {
	// Dispatch runs a line through the interpreter's dispatcher.
	Dispatch(line string) (int, error)
	// Root is the command tree root.
	Root() *command.Node
	// Logger is the logger adjusted by the log command.
	Logger() *logging.Logger
	// Out receives command output.
	Out() io.Writer
	// Quit asks the read loop to stop after the current line.
	Quit()
	// History returns the line history, oldest first.
	History() []string
	// RenderHelp post-processes help text for display.
	RenderHelp(text string) string
}

// Register installs the builtins under root. host is bound as the context
// of every builtin handler.
func Register(root *command.Node, host Host) error {
	logCmd := command.MustNew(handleLog, host, "log", " <level|file|format>", "Show or adjust logging")
	for _, sub := range []*command.Node{
		command.MustNew(handleLogLevel, host, "level", " <debug|info|warn|error|none>", "Set log verbosity"),
		command.MustNew(handleLogFile, host, "file", " <path|->", "Send log output to a file (- for stderr)"),
		command.MustNew(handleLogFormat, host, "format", " <text|json>", "Set log output format"),
	} {
		if err := logCmd.Register(sub); err != nil {
			return err
		}
	}

	cmds := []*command.Node{
		logCmd,
		command.MustNew(handleSource, host, "source", " <path>", "Run every line of a script file"),
		command.MustNew(handleHelp, host, "help", " [command...]", "Show available commands"),
		command.MustNew(handleQuit, host, "quit", "", "Leave the interpreter"),
		command.MustNew(handleAlias, host, "alias", " <name> <command...>", "Create an alias next to a command"),
		command.MustNew(handleUnalias, host, "unalias", " <name>", "Remove a runtime alias"),
		command.MustNew(handleEcho, host, "echo", " [text...]", "Print arguments"),
		command.MustNew(handleHistory, host, "history", "", "Show line history"),
	}
	for _, c := range cmds {
		if err := root.Register(c); err != nil {
			return fmt.Errorf("failed to register builtin %s: %w", c.Keyword(), err)
		}
	}
	return nil
}

func hostOf(ctx any) Host {
	return ctx.(Host)
}

func handleQuit(self *command.Node, ctx any, args []string) int {
	hostOf(ctx).Quit()
	return command.StatusOK
}

func handleEcho(self *command.Node, ctx any, args []string) int {
	fmt.Fprintln(hostOf(ctx).Out(), strings.Join(args[1:], " "))
	return command.StatusOK
}

func handleHistory(self *command.Node, ctx any, args []string) int {
	h := hostOf(ctx)
	for i, line := range h.History() {
		fmt.Fprintf(h.Out(), "%5d  %s\n", i+1, line)
	}
	return command.StatusOK
}

// usageError prints the command's usage line and fails.
func usageError(h Host, self *command.Node) int {
	fmt.Fprintf(h.Out(), "usage: %s%s\n", self.Keyword(), self.Arghints())
	return command.StatusFailure
}
