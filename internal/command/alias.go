package command

import (
	"fmt"

	"github.com/quocvuong92/cmdtree/internal/logging"
)

// Alias creates a node named keyword that shares n's handler, context,
// argument hints and children. The children are borrowed, not copied:
// sub-commands registered through either name are visible through both,
// and destroying the alias leaves them alone.
//
// The alias carries Alias|Mutable, plus Construct when n has it.
func (n *Node) Alias(keyword string) (*Node, error) {
	if !n.IsLive() {
		logger.Warn("alias of destroyed command", logging.Fields{"keyword": keyword})
		return nil, ErrDestroyed
	}

	a, err := New(n.handler, n.context, keyword, n.arghints, fmt.Sprintf("alias for '%s'", n.keyword))
	if err != nil {
		return nil, err
	}

	a.attrs = Alias | Mutable | (n.attrs & Construct)
	// Allocate the original's registry now so later registrations on
	// either side land in the same place.
	a.children = borrowedSubtree{reg: n.ensureRegistry()}

	logger.Debug("alias created", logging.Fields{"keyword": keyword, "original": n.keyword})
	return a, nil
}
