package complete

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/quocvuong92/cmdtree/internal/command"
)

// buildTree creates:
//
//	log <level|file>
//	    level <level>
//	    file <path>
//	local
//	list
//	quit
//	cmd <a> <b> <c>
func buildTree(t *testing.T) *command.Node {
	t.Helper()
	root := command.MustNew(nil, nil, "root", "", "")
	log := command.MustNew(nil, nil, "log", " <level|file>", "")
	for _, n := range []*command.Node{
		log,
		command.MustNew(nil, nil, "local", "", ""),
		command.MustNew(nil, nil, "list", "", ""),
		command.MustNew(nil, nil, "quit", "", ""),
		command.MustNew(nil, nil, "cmd", "<a> <b> <c>", ""),
	} {
		if err := root.Register(n); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
	}
	for _, n := range []*command.Node{
		command.MustNew(nil, nil, "level", " <level>", ""),
		command.MustNew(nil, nil, "file", " <path>", ""),
	} {
		if err := log.Register(n); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
	}
	return root
}

func TestSplit(t *testing.T) {
	tests := []struct {
		line   string
		delims string
		want   []string
	}{
		{"log level debug", "", []string{"log", "level", "debug"}},
		{"  log\t level  ", "", []string{"log", "level"}},
		{"a,b;;c", ",;", []string{"a", "b", "c"}},
		{"", "", nil},
		{"   ", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := Split(tt.line, tt.delims)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Split(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	root := buildTree(t)

	tests := []struct {
		name     string
		tokens   []string
		wantKey  string
		wantNest int
	}{
		{"empty", nil, "root", 0},
		{"top level", []string{"log"}, "log", 1},
		{"nested", []string{"log", "level", "debug"}, "level", 2},
		{"prefix only", []string{"lo"}, "root", 0},
		{"stops at first miss", []string{"log", "nope", "level"}, "log", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, nest := Resolve(root, tt.tokens)
			if node.Keyword() != tt.wantKey || nest != tt.wantNest {
				t.Errorf("Resolve(%v) = %q, %d; want %q, %d", tt.tokens, node.Keyword(), nest, tt.wantKey, tt.wantNest)
			}
		})
	}
}

func TestComplete(t *testing.T) {
	root := buildTree(t)

	tests := []struct {
		name        string
		line        string
		want        []string
		wantLongest int
		wantOK      bool
	}{
		{"top-level prefix", "lo", []string{"log", "local"}, 5, true},
		{"nothing typed", "", []string{"log", "local", "list", "quit", "cmd"}, 5, true},
		{"nested prefix", "log l", []string{"level"}, 5, true},
		{"after delimiter", "log ", []string{"level", "file"}, 5, true},
		{"exact keyword is still the partial word", "log", []string{"log"}, 3, true},
		{"diverged line", "nope l", nil, 0, false},
		{"leaf has no children", "quit ", nil, 0, false},
		{"no match", "zz", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := Complete(root, tt.line, "")
			if ok != tt.wantOK {
				t.Fatalf("Complete(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			}
			if diff := cmp.Diff(tt.want, res.Matches); diff != "" {
				t.Errorf("Complete(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
			if res.Longest != tt.wantLongest {
				t.Errorf("Complete(%q) longest = %d, want %d", tt.line, res.Longest, tt.wantLongest)
			}
		})
	}
}

func TestCandidates(t *testing.T) {
	root := buildTree(t)

	got := Candidates(root, "log  f", "")
	if diff := cmp.Diff([]string{"log  file"}, got); diff != "" {
		t.Errorf("Candidates() mismatch (-want +got):\n%s", diff)
	}
	if got := Candidates(root, "nope ", ""); got != nil {
		t.Errorf("Candidates() on diverged line = %v, want nil", got)
	}
}

func TestCompleteThroughAlias(t *testing.T) {
	root := buildTree(t)
	a, err := root.FindByKeyword("log").Alias("l")
	if err != nil {
		t.Fatalf("Alias() error = %v", err)
	}
	if err := root.Register(a); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	res, ok := Complete(root, "l f", "")
	if !ok {
		t.Fatal("Complete() through alias returned no matches")
	}
	if diff := cmp.Diff([]string{"file"}, res.Matches); diff != "" {
		t.Errorf("Complete() mismatch (-want +got):\n%s", diff)
	}
}
