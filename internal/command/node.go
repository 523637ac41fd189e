package command

import (
	"fmt"
	"strings"

	"github.com/quocvuong92/cmdtree/internal/logging"
)

// Attribute is a set of independent flags on a Node.
type Attribute uint8

const (
	// Alias marks a node generated from another node by Alias.
	Alias Attribute = 1 << iota
	// Mutable marks a node that may be unregistered or replaced at runtime.
	Mutable
	// Construct marks a node that opens a multi-line language block.
	// Only the flag exists; storing and running block bodies is left to
	// an extension built on top of the tree.
	Construct
)

// String lists the set flags, e.g. "alias|mutable".
func (a Attribute) String() string {
	var names []string
	if a&Alias != 0 {
		names = append(names, "alias")
	}
	if a&Mutable != 0 {
		names = append(names, "mutable")
	}
	if a&Construct != 0 {
		names = append(names, "construct")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// HandlerFunc executes a command. args[0] is always the keyword the command
// was invoked by; ctx is the context bound at creation.
type HandlerFunc func(self *Node, ctx any, args []string) int

// Command is the operation set every tree node supports.
type Command interface {
	Keyword() string
	Arghints() string
	Description() string
	Attributes() Attribute
	SetAttributes(flags Attribute)
	IsAlias() bool
	IsMutable() bool
	IsConstruct() bool

	FindByKeyword(keyword string) *Node
	PartialMatches(substring string) ([]string, int)
	Exec(args []string) int

	Longest(depth int) Widths
	Help(buf *strings.Builder, depth, column int)

	Register(child *Node) error
	Unregister(child *Node) error

	Copy() (*Node, error)
	Destroy() error
}

var _ Command = (*Node)(nil)

// subtree is the tagged reference a node keeps to its children.
type subtree interface {
	registry() *Registry
}

// ownedSubtree is destroyed together with its node.
type ownedSubtree struct{ reg *Registry }

// borrowedSubtree points at another node's Registry and is never destroyed
// through this node.
type borrowedSubtree struct{ reg *Registry }

func (o ownedSubtree) registry() *Registry    { return o.reg }
func (b borrowedSubtree) registry() *Registry { return b.reg }

// Node is one addressable command in the tree.
type Node struct {
	keyword     string
	arghints    string
	description string
	attrs       Attribute

	handler HandlerFunc
	context any

	children subtree
	live     bool
}

// New creates a command node. The keyword must be non-empty; hints and
// description may be empty. ctx is handed to handler on every Exec and is
// never touched by the tree.
func New(handler HandlerFunc, ctx any, keyword, arghints, description string) (*Node, error) {
	if strings.TrimSpace(keyword) == "" {
		logger.Error("cannot create command", ErrEmptyKeyword)
		return nil, ErrEmptyKeyword
	}
	return &Node{
		keyword:     strings.Clone(keyword),
		arghints:    strings.Clone(arghints),
		description: strings.Clone(description),
		handler:     handler,
		context:     ctx,
		live:        true,
	}, nil
}

// MustNew is New for statically known command tables.
func MustNew(handler HandlerFunc, ctx any, keyword, arghints, description string) *Node {
	n, err := New(handler, ctx, keyword, arghints, description)
	if err != nil {
		panic(err)
	}
	return n
}

// Keyword returns the command keyword
func (n *Node) Keyword() string { return n.keyword }

// Arghints returns the argument hint string, e.g. " <level> <file>"
func (n *Node) Arghints() string { return n.arghints }

// Description returns the one-line description
func (n *Node) Description() string { return n.description }

// Attributes returns the flag set
func (n *Node) Attributes() Attribute { return n.attrs }

// Context returns the context bound at creation
func (n *Node) Context() any { return n.context }

// SetAttributes adds flags. Flags already set stay set.
func (n *Node) SetAttributes(flags Attribute) {
	n.attrs |= flags
}

// IsAlias reports whether the node was generated by Alias
func (n *Node) IsAlias() bool { return n.attrs&Alias != 0 }

// IsMutable reports whether the node may be unregistered at runtime
func (n *Node) IsMutable() bool { return n.attrs&Mutable != 0 }

// IsConstruct reports whether the node opens a multi-line block
func (n *Node) IsConstruct() bool { return n.attrs&Construct != 0 }

// IsLive reports whether the node was created by New and not yet destroyed.
func (n *Node) IsLive() bool { return n != nil && n.live }

// SharesChildren reports whether both nodes resolve to the same Registry.
func (n *Node) SharesChildren(other *Node) bool {
	a, b := n.registry(), other.registry()
	return a != nil && a == b
}

// Exec runs the handler with args. args[0] should be the invoked keyword.
func (n *Node) Exec(args []string) int {
	if !n.IsLive() {
		logger.Warn("exec on destroyed command", logging.Fields{"args": strings.Join(args, " ")})
		return StatusFailure
	}
	if n.handler == nil {
		logger.Error("cannot exec", ErrNoHandler, logging.Fields{"keyword": n.keyword})
		return StatusFailure
	}
	logger.Debug("exec", logging.Fields{"keyword": n.keyword, "argc": len(args)})
	return n.handler(n, n.context, args)
}

// ExecChild delegates args[1:] to the child whose keyword equals args[1].
// It is the building block for commands that are only a namespace for
// their sub-commands.
func (n *Node) ExecChild(args []string) (int, error) {
	if len(args) < 2 {
		return StatusFailure, fmt.Errorf("%s: %w", n.keyword, ErrMissingSubcommand)
	}
	child := n.FindByKeyword(args[1])
	if child == nil {
		logger.Debug("unknown sub-command", logging.Fields{"parent": n.keyword, "keyword": args[1]})
		return StatusFailure, fmt.Errorf("%s %s: %w", n.keyword, args[1], ErrNotFound)
	}
	if child.handler == nil {
		return StatusFailure, fmt.Errorf("%s %s: %w", n.keyword, args[1], ErrNoHandler)
	}
	return child.Exec(args[1:]), nil
}

// Children returns the direct children in registration order. The slice is
// a copy; the nodes are not.
func (n *Node) Children() []*Node {
	reg := n.registry()
	if reg == nil {
		return nil
	}
	out := make([]*Node, len(reg.nodes))
	copy(out, reg.nodes)
	return out
}

// Len returns the number of direct children.
func (n *Node) Len() int {
	reg := n.registry()
	if reg == nil {
		return 0
	}
	return len(reg.nodes)
}

// Copy deep-copies the node. An owned subtree is copied recursively; a
// borrowed one is shared with the copy, which keeps the Alias flag.
func (n *Node) Copy() (*Node, error) {
	if !n.IsLive() {
		logger.Warn("copy of destroyed command")
		return nil, ErrDestroyed
	}
	c := &Node{
		keyword:     strings.Clone(n.keyword),
		arghints:    strings.Clone(n.arghints),
		description: strings.Clone(n.description),
		attrs:       n.attrs,
		handler:     n.handler,
		context:     n.context,
		live:        true,
	}
	switch sub := n.children.(type) {
	case ownedSubtree:
		c.children = ownedSubtree{reg: sub.reg.copy()}
	case borrowedSubtree:
		c.children = borrowedSubtree{reg: sub.reg}
	}
	return c, nil
}

// Destroy tears the node down. An owned Registry is destroyed recursively;
// a borrowed one is only dropped. Destroying a node twice, or a zero Node,
// logs a warning and returns ErrDestroyed without doing anything else.
func (n *Node) Destroy() error {
	if !n.IsLive() {
		logger.Warn("destroy of destroyed or uninitialized command")
		return ErrDestroyed
	}
	if owned, ok := n.children.(ownedSubtree); ok {
		owned.reg.destroy()
	}
	n.children = nil
	n.handler = nil
	n.context = nil
	n.live = false
	return nil
}

// registry returns the node's Registry with destroyed children pruned, or
// nil when nothing was ever registered.
func (n *Node) registry() *Registry {
	if n == nil || n.children == nil {
		return nil
	}
	reg := n.children.registry()
	reg.prune()
	return reg
}

// ensureRegistry returns the node's Registry, allocating an owned one on
// first use.
func (n *Node) ensureRegistry() *Registry {
	if n.children == nil {
		n.children = ownedSubtree{reg: &Registry{}}
	}
	return n.registry()
}
