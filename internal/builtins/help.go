package builtins

import (
	"fmt"
	"strings"

	"github.com/quocvuong92/cmdtree/internal/command"
	"github.com/quocvuong92/cmdtree/internal/complete"
)

func handleHelp(self *command.Node, ctx any, args []string) int {
	h := hostOf(ctx)
	root := h.Root()

	if len(args) == 1 {
		fmt.Fprint(h.Out(), h.RenderHelp(command.HelpText(root)))
		return command.StatusOK
	}

	path := args[1:]
	node, nest := complete.Resolve(root, path)
	if nest < len(path) {
		fmt.Fprintf(h.Out(), "help: no such command: %s\n", strings.Join(path[:nest+1], " "))
		return command.StatusFailure
	}
	fmt.Fprint(h.Out(), h.RenderHelp(SubtreeHelp(node, strings.Join(path[:len(path)-1], " "))))
	return command.StatusOK
}

// SubtreeHelp renders n's own row, prefixed by the path leading to it,
// followed by everything below n.
func SubtreeHelp(n *command.Node, path string) string {
	if path != "" {
		path += " "
	}
	header := path + n.Keyword() + n.Arghints()
	column := max(len(header), n.Longest(1).Usage) + command.HelpGutter

	var sb strings.Builder
	sb.WriteString(header)
	if desc := n.Description(); desc != "" {
		sb.WriteString(strings.Repeat(" ", column-len(header)))
		sb.WriteString(desc)
	}
	sb.WriteByte('\n')
	if !n.IsAlias() {
		n.Help(&sb, 1, column)
	}
	return sb.String()
}
