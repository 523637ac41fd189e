// Package command implements the command tree at the heart of the interpreter.
//
// # Architecture
//
// A tree is built from *Node values. Each node carries:
//
//   - identity: a keyword, unique among its siblings
//   - metadata: argument hints and a description, used only for UI
//   - behavior: a HandlerFunc plus an opaque context passed through untouched
//   - state: Attribute flags (Alias, Mutable, Construct), only ever added
//   - children: an optional Registry, allocated on first registration
//
// A node either owns its Registry or, when it is an alias, borrows the
// Registry of the node it was generated from. The two cases are distinct
// types (ownedSubtree, borrowedSubtree), so teardown only ever walks an owned
// subtree.
//
// # Files
//
//   - node.go: Node, Command interface, lifecycle, Exec
//   - registry.go: Registry, Register/Unregister, FindByKeyword, PartialMatches
//   - alias.go: Alias
//   - help.go: two-pass help rendering (Longest, Help)
//
// # Usage
//
//	root, _ := command.New(nil, nil, "root", "", "")
//	logCmd, _ := command.New(handleLog, app, "log", " <level|file>", "Adjust logging")
//	if err := root.Register(logCmd); err != nil {
//	    // duplicate keyword, tree unchanged
//	}
//	status := root.FindByKeyword("log").Exec([]string{"log", "level", "debug"})
//
// The package performs no locking. Callers that mutate the tree while another
// goroutine dispatches must serialize access themselves.
package command
