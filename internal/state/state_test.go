package state

import (
	"testing"

	"github.com/odvcencio/art/internal/change"
)

func TestReconstructEmptyTargetReturnsRoot(t *testing.T) {
	root := map[string]string{"a.txt": "hello"}
	got, err := Reconstruct(root, []string{"c1"}, func(string) (map[string]change.Change, error) {
		t.Fatal("loader should not be called when targetHash is empty")
		return nil, nil
	}, "")
	if err != nil {
		t.Fatal(err)
	}
	if got["a.txt"] != "hello" {
		t.Fatalf("expected unmodified root, got %v", got)
	}
}

func TestReconstructAppliesChainInOrder(t *testing.T) {
	root := map[string]string{"a.txt": "hello"}
	commits := []string{"c1", "c2", "c3"}
	loader := func(hash string) (map[string]change.Change, error) {
		switch hash {
		case "c1":
			return map[string]change.Change{"a.txt": change.NewOps([]change.Op{{Type: change.OpInsert, Position: 5, Content: " world"}})}, nil
		case "c2":
			return map[string]change.Change{"b.txt": change.NewCreate("new file", false)}, nil
		case "c3":
			return map[string]change.Change{"a.txt": change.NewDelete()}, nil
		}
		t.Fatalf("unexpected hash %s", hash)
		return nil, nil
	}

	got, err := Reconstruct(root, commits, loader, "c2")
	if err != nil {
		t.Fatal(err)
	}
	if got["a.txt"] != "hello world" {
		t.Fatalf("expected c1's op applied, got %q", got["a.txt"])
	}
	if got["b.txt"] != "new file" {
		t.Fatalf("expected c2's create applied, got %q", got["b.txt"])
	}
}

func TestReconstructStopsAtTarget(t *testing.T) {
	root := map[string]string{}
	calls := 0
	loader := func(hash string) (map[string]change.Change, error) {
		calls++
		return map[string]change.Change{hash: change.NewCreate(hash, false)}, nil
	}
	got, err := Reconstruct(root, []string{"c1", "c2", "c3"}, loader, "c2")
	if err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Fatalf("expected replay to stop after target commit, loaded %d commits", calls)
	}
	if _, ok := got["c3"]; ok {
		t.Fatal("commit after target must not be applied")
	}
}

func TestApplyDeleteRemovesPath(t *testing.T) {
	s := map[string]string{"a.txt": "x"}
	Apply(s, map[string]change.Change{"a.txt": change.NewDelete()})
	if _, ok := s["a.txt"]; ok {
		t.Fatal("expected path removed after delete change")
	}
}

func TestApplyOpsAgainstMissingPath(t *testing.T) {
	s := map[string]string{}
	Apply(s, map[string]change.Change{"a.txt": change.NewOps([]change.Op{{Type: change.OpInsert, Position: 0, Content: "hi"}})})
	if s["a.txt"] != "hi" {
		t.Fatalf("expected ops applied against empty string, got %q", s["a.txt"])
	}
}
