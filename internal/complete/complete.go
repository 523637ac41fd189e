// Package complete resolves how far a partially typed line matches the
// command tree and turns that into completions and argument hints for the
// line editor.
package complete

import (
	"strings"
	"unicode/utf8"

	"github.com/quocvuong92/cmdtree/internal/command"
	"github.com/quocvuong92/cmdtree/internal/constants"
)

// DefaultDelimiters separate tokens when no delimiter set is configured.
const DefaultDelimiters = constants.DefaultDelimiters

// Split breaks line into tokens on any rune of delims.
func Split(line, delims string) []string {
	if delims == "" {
		delims = DefaultDelimiters
	}
	return strings.FieldsFunc(line, func(r rune) bool {
		return strings.ContainsRune(delims, r)
	})
}

// Resolve walks tokens from root, descending into the child whose keyword
// equals each token, and stops at the first token with no such child. It
// returns the deepest matched node and the number of tokens consumed.
func Resolve(root *command.Node, tokens []string) (*command.Node, int) {
	node := root
	nest := 0
	for _, tok := range tokens {
		next := node.FindByKeyword(tok)
		if next == nil {
			break
		}
		node = next
		nest++
	}
	return node, nest
}

// Result is a completion for the word under the cursor.
type Result struct {
	Node      *command.Node // node whose children were matched
	Nest      int           // tokens consumed to reach Node
	Substring string        // the partial word being completed
	Matches   []string      // full keywords starting with Substring
	Longest   int           // longest keyword in Matches
}

// Complete computes the keyword completions for line, assumed to end at
// the cursor. ok is false when the typed line has already left the tree
// (a complete token matched nothing) or the resolved node has no children.
func Complete(root *command.Node, line, delims string) (Result, bool) {
	tokens := Split(line, delims)
	complete, partial := splitPartial(line, delims, tokens)

	node, nest := Resolve(root, complete)
	if nest < len(complete) {
		return Result{Node: node, Nest: nest, Substring: partial}, false
	}

	matches, longest := node.PartialMatches(partial)
	res := Result{
		Node:      node,
		Nest:      nest,
		Substring: partial,
		Matches:   matches,
		Longest:   longest,
	}
	return res, len(matches) > 0
}

// Candidates returns whole-line completions for line: the text before the
// partial word followed by each matching keyword. Line editors that replace
// the whole buffer (liner) use this form.
func Candidates(root *command.Node, line, delims string) []string {
	res, ok := Complete(root, line, delims)
	if !ok {
		return nil
	}
	head := line[:len(line)-len(res.Substring)]
	out := make([]string, 0, len(res.Matches))
	for _, m := range res.Matches {
		out = append(out, head+m)
	}
	return out
}

// splitPartial separates the word under the cursor from the complete tokens
// before it. After a trailing delimiter the partial word is empty.
func splitPartial(line, delims string, tokens []string) ([]string, string) {
	if delims == "" {
		delims = DefaultDelimiters
	}
	if len(tokens) == 0 {
		return nil, ""
	}
	last, _ := utf8.DecodeLastRuneInString(line)
	if strings.ContainsRune(delims, last) {
		return tokens, ""
	}
	return tokens[:len(tokens)-1], tokens[len(tokens)-1]
}
