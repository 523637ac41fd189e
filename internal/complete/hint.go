package complete

import (
	"strings"

	"github.com/quocvuong92/cmdtree/internal/command"
)

// HintAt projects declared argument hints onto the next argument position.
// nest is the number of tokens spent reaching the command, argc the number
// of tokens typed so far. Positions already typed or past the declared
// arity yield no hint.
func HintAt(arghints string, nest, argc int) (string, bool) {
	hints := strings.Fields(arghints)
	idx := argc - nest
	if idx < 0 || idx >= len(hints) {
		return "", false
	}
	return hints[idx], true
}

// Hint returns the argument hint to display after line.
func Hint(root *command.Node, line, delims string) (string, bool) {
	tokens := Split(line, delims)
	node, nest := Resolve(root, tokens)
	if nest == 0 {
		return "", false
	}
	return HintAt(node.Arghints(), nest, len(tokens))
}
