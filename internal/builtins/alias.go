package builtins

import (
	"fmt"
	"strings"

	"github.com/quocvuong92/cmdtree/internal/command"
)

// handleAlias creates `name` next to the command reached by the remaining
// tokens, e.g. `alias lvl log level` registers `log lvl`.
func handleAlias(self *command.Node, ctx any, args []string) int {
	h := hostOf(ctx)
	if len(args) < 3 {
		return usageError(h, self)
	}
	name, path := args[1], args[2:]

	parent := h.Root()
	for _, tok := range path[:len(path)-1] {
		next := parent.FindByKeyword(tok)
		if next == nil {
			fmt.Fprintf(h.Out(), "alias: no such command: %s\n", strings.Join(path, " "))
			return command.StatusFailure
		}
		parent = next
	}
	target := parent.FindByKeyword(path[len(path)-1])
	if target == nil {
		fmt.Fprintf(h.Out(), "alias: no such command: %s\n", strings.Join(path, " "))
		return command.StatusFailure
	}

	a, err := target.Alias(name)
	if err != nil {
		fmt.Fprintf(h.Out(), "alias: %v\n", err)
		return command.StatusFailure
	}
	if err := parent.Register(a); err != nil {
		_ = a.Destroy()
		fmt.Fprintf(h.Out(), "alias: %v\n", err)
		return command.StatusFailure
	}
	return command.StatusOK
}

// handleUnalias removes a mutable root-level command.
func handleUnalias(self *command.Node, ctx any, args []string) int {
	h := hostOf(ctx)
	if len(args) != 2 {
		return usageError(h, self)
	}

	n := h.Root().FindByKeyword(args[1])
	if n == nil {
		fmt.Fprintf(h.Out(), "unalias: no such command: %s\n", args[1])
		return command.StatusFailure
	}
	if !n.IsMutable() {
		fmt.Fprintf(h.Out(), "unalias: %s is built in and cannot be removed\n", args[1])
		return command.StatusFailure
	}
	if err := h.Root().Unregister(n); err != nil {
		fmt.Fprintf(h.Out(), "unalias: %v\n", err)
		return command.StatusFailure
	}
	return command.StatusOK
}
