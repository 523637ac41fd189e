package command

import (
	"fmt"
	"slices"
	"strings"

	"github.com/quocvuong92/cmdtree/internal/logging"
)

// Registry is the ordered set of a node's direct children. New children are
// appended, so iteration follows registration order. No two live entries
// share a keyword.
type Registry struct {
	nodes     []*Node
	destroyed bool
}

// find returns the index of keyword, or -1.
func (r *Registry) find(keyword string) int {
	return slices.IndexFunc(r.nodes, func(c *Node) bool {
		return c.keyword == keyword
	})
}

// prune drops children destroyed while still registered.
func (r *Registry) prune() {
	r.nodes = slices.DeleteFunc(r.nodes, func(c *Node) bool {
		return !c.IsLive()
	})
}

func (r *Registry) copy() *Registry {
	out := &Registry{nodes: make([]*Node, 0, len(r.nodes))}
	for _, child := range r.nodes {
		c, err := child.Copy()
		if err != nil {
			continue
		}
		out.nodes = append(out.nodes, c)
	}
	return out
}

func (r *Registry) destroy() {
	for _, child := range r.nodes {
		if child.IsLive() {
			_ = child.Destroy()
		}
	}
	r.nodes = nil
	r.destroyed = true
}

// Register attaches child under n, allocating n's Registry on first use.
// A keyword already present among n's children is rejected and the tree is
// left unchanged.
func (n *Node) Register(child *Node) error {
	if !n.IsLive() || !child.IsLive() {
		logger.Warn("register with destroyed command")
		return ErrDestroyed
	}

	reg := n.ensureRegistry()
	if reg.destroyed {
		// n is an alias whose original was unregistered.
		logger.Warn("register under torn-down registry", logging.Fields{
			"parent":  n.keyword,
			"keyword": child.keyword,
		})
		return fmt.Errorf("%s: %w", n.keyword, ErrDestroyed)
	}

	if reg.find(child.keyword) >= 0 {
		logger.Warn("duplicate keyword", logging.Fields{
			"parent":  n.keyword,
			"keyword": child.keyword,
		})
		return fmt.Errorf("%w: %s", ErrDuplicateKeyword, child.keyword)
	}

	reg.nodes = append(reg.nodes, child)
	logger.Debug("command registered", logging.Fields{
		"parent":  n.keyword,
		"keyword": child.keyword,
		"count":   len(reg.nodes),
	})
	return nil
}

// Unregister removes and destroys the child of n whose keyword matches
// child's keyword.
//
// Aliases of the removed node keep pointing at its Registry, which is
// emptied by the teardown: they resolve no sub-commands afterwards.
func (n *Node) Unregister(child *Node) error {
	if child == nil {
		return ErrNotFound
	}
	return n.UnregisterKeyword(child.keyword)
}

// UnregisterKeyword removes and destroys the child registered as keyword.
func (n *Node) UnregisterKeyword(keyword string) error {
	reg := n.registry()
	idx := -1
	if reg != nil {
		idx = reg.find(keyword)
	}
	if idx < 0 {
		logger.Warn("unregister of unknown keyword", logging.Fields{
			"parent":  n.keyword,
			"keyword": keyword,
		})
		return fmt.Errorf("%w: %s", ErrNotFound, keyword)
	}

	removed := reg.nodes[idx]
	reg.nodes = slices.Delete(reg.nodes, idx, idx+1)
	_ = removed.Destroy()

	logger.Debug("command unregistered", logging.Fields{
		"parent":  n.keyword,
		"keyword": keyword,
	})
	return nil
}

// FindByKeyword returns the direct child registered as keyword, or nil.
func (n *Node) FindByKeyword(keyword string) *Node {
	reg := n.registry()
	if reg == nil {
		return nil
	}
	if idx := reg.find(keyword); idx >= 0 {
		return reg.nodes[idx]
	}
	return nil
}

// PartialMatches returns, in registration order, the keywords of the direct
// children that start with substring, along with the longest matched
// keyword length. The comparison is byte-wise and case-sensitive.
func (n *Node) PartialMatches(substring string) ([]string, int) {
	reg := n.registry()
	if reg == nil || len(reg.nodes) == 0 {
		return nil, 0
	}

	var matches []string
	longest := 0
	for _, child := range reg.nodes {
		if !strings.HasPrefix(child.keyword, substring) {
			continue
		}
		matches = append(matches, child.keyword)
		if len(child.keyword) > longest {
			longest = len(child.keyword)
		}
	}
	return matches, longest
}
