package command

import (
	"strings"
)

const (
	// HelpIndent is the indentation added per nesting level.
	HelpIndent = 4
	// HelpGutter separates the usage column from the description column.
	HelpGutter = 4
)

// Widths holds the maxima measured by Longest.
type Widths struct {
	Keyword     int // longest keyword
	Arghints    int // longest argument hint string
	Entry       int // longest "<keyword><arghints>"
	Usage       int // longest rendered "<indent><path><keyword><arghints>"
	Description int // longest description
}

// Column is the offset at which descriptions start for these widths. It is
// derived from Usage rather than Entry so nested rows, which carry their
// indent and path, stay aligned with the top-level ones.
func (w Widths) Column() int {
	return w.Usage + HelpGutter
}

// Longest measures every node below n, depth-first. depth is the nesting
// level n's children are rendered at.
func (n *Node) Longest(depth int) Widths {
	var w Widths
	n.longest("", depth, &w)
	return w
}

func (n *Node) longest(path string, depth int, w *Widths) {
	for _, child := range n.Children() {
		w.Keyword = max(w.Keyword, len(child.keyword))
		w.Arghints = max(w.Arghints, len(child.arghints))
		w.Entry = max(w.Entry, len(child.keyword)+len(child.arghints))
		w.Usage = max(w.Usage, len(usage(child, path, depth)))
		w.Description = max(w.Description, len(helpDescription(child)))
		if !child.IsAlias() {
			child.longest(path+child.keyword+" ", depth+1, w)
		}
	}
}

// Help writes one row per node below n:
//
//	<indent><path><keyword><arghints><pad><description>
//
// Nested rows are indented by HelpIndent per level and prefixed with the
// keywords leading to them. Aliases get a single row; their sub-commands
// are listed under the original. Descriptions start at column; a column <= 0 is
// derived from Longest.
func (n *Node) Help(buf *strings.Builder, depth, column int) {
	if column <= 0 {
		column = n.Longest(depth).Column()
	}
	n.help(buf, "", depth, column)
}

func (n *Node) help(buf *strings.Builder, path string, depth, column int) {
	for _, child := range n.Children() {
		row := usage(child, path, depth)
		buf.WriteString(row)
		if desc := helpDescription(child); desc != "" {
			buf.WriteString(strings.Repeat(" ", max(column-len(row), 1)))
			buf.WriteString(desc)
		}
		buf.WriteByte('\n')
		if !child.IsAlias() {
			child.help(buf, path+child.keyword+" ", depth+1, column)
		}
	}
}

// HelpText renders the whole subtree below n with an aligned description
// column.
func HelpText(n *Node) string {
	var sb strings.Builder
	n.Help(&sb, 0, 0)
	return sb.String()
}

func usage(n *Node, path string, depth int) string {
	return strings.Repeat(" ", depth*HelpIndent) + path + n.keyword + n.arghints
}

func helpDescription(n *Node) string {
	if n.IsConstruct() {
		if n.description == "" {
			return "[block]"
		}
		return n.description + " [block]"
	}
	return n.description
}
