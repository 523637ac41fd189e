package command

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNew_EmptyKeyword(t *testing.T) {
	for _, kw := range []string{"", "   "} {
		if n, err := New(nil, nil, kw, "", ""); !errors.Is(err, ErrEmptyKeyword) || n != nil {
			t.Errorf("New(%q) = %v, %v; want nil, ErrEmptyKeyword", kw, n, err)
		}
	}
}

func TestAttributes_OnlyAdded(t *testing.T) {
	n := newTestNode(t, "x", "", "")
	if n.Attributes() != 0 {
		t.Fatalf("new node attributes = %v, want none", n.Attributes())
	}

	n.SetAttributes(Mutable)
	n.SetAttributes(Construct)
	n.SetAttributes(0)

	if !n.IsMutable() || !n.IsConstruct() || n.IsAlias() {
		t.Errorf("attributes = %v, want mutable|construct", n.Attributes())
	}
	if got := n.Attributes().String(); got != "mutable|construct" {
		t.Errorf("Attributes().String() = %q, want %q", got, "mutable|construct")
	}
}

func TestExec_PassesContextAndArgs(t *testing.T) {
	type app struct{ calls int }
	ctx := &app{}

	var gotArgs []string
	n, err := New(func(self *Node, c any, args []string) int {
		c.(*app).calls++
		gotArgs = args
		if self.Keyword() != "run" {
			t.Errorf("self.Keyword() = %q, want run", self.Keyword())
		}
		return 7
	}, ctx, "run", " <file>", "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if status := n.Exec([]string{"run", "a.txt"}); status != 7 {
		t.Errorf("Exec() = %d, want handler status 7", status)
	}
	if ctx.calls != 1 {
		t.Errorf("handler calls = %d, want 1", ctx.calls)
	}
	if diff := cmp.Diff([]string{"run", "a.txt"}, gotArgs); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
	if n.Context() != ctx {
		t.Error("Context() should return the bound context unchanged")
	}
}

func TestExec_NoHandlerOrDestroyed(t *testing.T) {
	n, _ := New(nil, nil, "bare", "", "")
	if got := n.Exec([]string{"bare"}); got != StatusFailure {
		t.Errorf("Exec() without handler = %d, want %d", got, StatusFailure)
	}

	h := newTestNode(t, "h", "", "")
	_ = h.Destroy()
	if got := h.Exec([]string{"h"}); got != StatusFailure {
		t.Errorf("Exec() on destroyed node = %d, want %d", got, StatusFailure)
	}
}

func TestExecChild(t *testing.T) {
	parent := newTestNode(t, "log", "", "")
	var got []string
	level := MustNew(func(self *Node, ctx any, args []string) int {
		got = args
		return StatusOK
	}, nil, "level", " <level>", "")
	mustRegister(t, parent, level)

	status, err := parent.ExecChild([]string{"log", "level", "debug"})
	if err != nil || status != StatusOK {
		t.Fatalf("ExecChild() = %d, %v; want 0, nil", status, err)
	}
	if diff := cmp.Diff([]string{"level", "debug"}, got); diff != "" {
		t.Errorf("child args mismatch (-want +got):\n%s", diff)
	}

	if _, err := parent.ExecChild([]string{"log"}); !errors.Is(err, ErrMissingSubcommand) {
		t.Errorf("ExecChild() without sub-command error = %v, want ErrMissingSubcommand", err)
	}
	if _, err := parent.ExecChild([]string{"log", "nope"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("ExecChild() with unknown sub-command error = %v, want ErrNotFound", err)
	}

	mustRegister(t, parent, MustNew(nil, nil, "group", "", ""))
	if status, err := parent.ExecChild([]string{"log", "group"}); !errors.Is(err, ErrNoHandler) || status != StatusFailure {
		t.Errorf("ExecChild() on handler-less child = %d, %v; want %d, ErrNoHandler", status, err, StatusFailure)
	}
}

func TestDestroy_Twice(t *testing.T) {
	n := newTestNode(t, "x", "", "")
	if err := n.Destroy(); err != nil {
		t.Fatalf("first Destroy() error = %v", err)
	}
	if err := n.Destroy(); !errors.Is(err, ErrDestroyed) {
		t.Errorf("second Destroy() error = %v, want ErrDestroyed", err)
	}

	var zero Node
	if err := zero.Destroy(); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Destroy() on zero Node error = %v, want ErrDestroyed", err)
	}
	var nilNode *Node
	if err := nilNode.Destroy(); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Destroy() on nil Node error = %v, want ErrDestroyed", err)
	}
}

func TestCopy_DeepCopiesOwnedSubtree(t *testing.T) {
	orig := newTestNode(t, "net", " <iface>", "network")
	orig.SetAttributes(Mutable)
	up := newTestNode(t, "up", "", "")
	mustRegister(t, orig, up)
	mustRegister(t, up, newTestNode(t, "now", "", ""))

	c, err := orig.Copy()
	if err != nil {
		t.Fatalf("Copy() error = %v", err)
	}
	if c.Keyword() != "net" || c.Arghints() != " <iface>" || c.Description() != "network" || !c.IsMutable() {
		t.Errorf("copy scalars = %q %q %q %v", c.Keyword(), c.Arghints(), c.Description(), c.Attributes())
	}
	if c.SharesChildren(orig) {
		t.Error("copy of an owned subtree must not share the registry")
	}
	cUp := c.FindByKeyword("up")
	if cUp == nil || cUp == up {
		t.Fatal("copy should hold a distinct 'up' node")
	}
	if cUp.FindByKeyword("now") == nil {
		t.Error("copy should be recursive")
	}

	// Mutating the copy leaves the original alone.
	mustRegister(t, c, newTestNode(t, "down", "", ""))
	if orig.FindByKeyword("down") != nil {
		t.Error("registration on the copy leaked into the original")
	}
	_ = c.Destroy()
	if !up.IsLive() {
		t.Error("destroying the copy destroyed the original's children")
	}
}

func TestCopy_SharesBorrowedSubtree(t *testing.T) {
	orig := newTestNode(t, "log", "", "")
	mustRegister(t, orig, newTestNode(t, "level", "", ""))
	a, err := orig.Alias("l")
	if err != nil {
		t.Fatalf("Alias() error = %v", err)
	}

	c, err := a.Copy()
	if err != nil {
		t.Fatalf("Copy() error = %v", err)
	}
	if !c.IsAlias() || !c.SharesChildren(orig) {
		t.Error("copy of an alias should stay an alias sharing the original's children")
	}
	_ = c.Destroy()
	if orig.FindByKeyword("level") == nil {
		t.Error("destroying an alias copy must not destroy the borrowed registry")
	}
}

func TestCopy_Destroyed(t *testing.T) {
	n := newTestNode(t, "x", "", "")
	_ = n.Destroy()
	if _, err := n.Copy(); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Copy() error = %v, want ErrDestroyed", err)
	}
}
