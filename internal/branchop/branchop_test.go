package branchop

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/odvcencio/art/internal/repo"
	"github.com/odvcencio/art/internal/workflow"
)

func initRepo(t *testing.T) *repo.Repo {
	t.Helper()
	dir := t.TempDir()
	r, err := repo.Init(dir)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func writeFile(t *testing.T, r *repo.Repo, rel, content string) {
	t.Helper()
	path := filepath.Join(r.RootDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func commitFile(t *testing.T, r *repo.Repo, rel, content, message string) {
	t.Helper()
	writeFile(t, r, rel, content)
	if _, err := workflow.Add(r, rel); err != nil {
		t.Fatal(err)
	}
	if _, err := workflow.Commit(r, message); err != nil {
		t.Fatal(err)
	}
}

func TestListCreateDeleteBranch(t *testing.T) {
	r := initRepo(t)
	names, err := List(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 1 || names[0] != "main" {
		t.Fatalf("expected only main initially, got %v", names)
	}

	if _, err := Create(r, "feature"); err != nil {
		t.Fatal(err)
	}
	names, err = List(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 branches after create, got %v", names)
	}

	if _, err := Delete(r, "feature"); err != nil {
		t.Fatal(err)
	}
	names, err = List(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 1 {
		t.Fatalf("expected 1 branch after delete, got %v", names)
	}
}

func TestCheckoutImplicitlyCreatesBranch(t *testing.T) {
	r := initRepo(t)
	commitFile(t, r, "a.txt", "hello", "seed")

	msg, err := Checkout(r, "feature", false)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(msg, "feature") {
		t.Fatalf("unexpected checkout message: %s", msg)
	}
	head, err := r.ReadHead()
	if err != nil {
		t.Fatal(err)
	}
	if head.Active.Branch != "feature" {
		t.Fatalf("expected active branch feature, got %q", head.Active.Branch)
	}
}

func TestCheckoutBlocksDirtyWorkingTree(t *testing.T) {
	r := initRepo(t)
	commitFile(t, r, "a.txt", "hello", "seed")
	if _, err := Create(r, "other"); err != nil {
		t.Fatal(err)
	}

	writeFile(t, r, "a.txt", "dirty change")

	if _, err := Checkout(r, "other", false); err == nil {
		t.Fatal("expected dirty working tree to block checkout")
	}
	if _, err := Checkout(r, "other", true); err != nil {
		t.Fatalf("expected forced checkout to succeed, got %v", err)
	}
}

func TestCheckoutMaterializesTargetState(t *testing.T) {
	r := initRepo(t)
	commitFile(t, r, "a.txt", "on-main", "seed")
	if _, err := Create(r, "feature"); err != nil {
		t.Fatal(err)
	}
	if _, err := Checkout(r, "feature", false); err != nil {
		t.Fatal(err)
	}
	commitFile(t, r, "a.txt", "on-feature", "feature change")

	if _, err := Checkout(r, "main", false); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(r.RootDir, "a.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "on-main" {
		t.Fatalf("expected working tree to reflect main's state, got %q", data)
	}
}

func TestMergeFastForwardAppliesTheirChange(t *testing.T) {
	r := initRepo(t)
	commitFile(t, r, "a.txt", "base", "seed")
	if _, err := Create(r, "feature"); err != nil {
		t.Fatal(err)
	}
	if _, err := Checkout(r, "feature", false); err != nil {
		t.Fatal(err)
	}
	commitFile(t, r, "a.txt", "changed-on-feature", "feature change")

	if _, err := Checkout(r, "main", false); err != nil {
		t.Fatal(err)
	}
	msg, err := Merge(r, "feature")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(msg, "conflict") {
		t.Fatalf("expected a clean fast-forward merge, got %q", msg)
	}
	data, err := os.ReadFile(filepath.Join(r.RootDir, "a.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "changed-on-feature" {
		t.Fatalf("expected merge to materialize their change, got %q", data)
	}
}

func TestMergeTrueConflictEmitsMarkers(t *testing.T) {
	r := initRepo(t)
	commitFile(t, r, "a.txt", "base", "seed")
	if _, err := Create(r, "feature"); err != nil {
		t.Fatal(err)
	}
	if _, err := Checkout(r, "feature", false); err != nil {
		t.Fatal(err)
	}
	commitFile(t, r, "a.txt", "feature-value", "feature change")

	if _, err := Checkout(r, "main", false); err != nil {
		t.Fatal(err)
	}
	commitFile(t, r, "a.txt", "main-value", "main change")

	msg, err := Merge(r, "feature")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(msg, "1 conflict") {
		t.Fatalf("expected one conflict reported, got %q", msg)
	}
	data, err := os.ReadFile(filepath.Join(r.RootDir, "a.txt"))
	if err != nil {
		t.Fatal(err)
	}
	want := "<<<<<<< active\nmain-value\n=======\nfeature-value\n>>>>>>> feature\n"
	if string(data) != want {
		t.Fatalf("unexpected conflict marker content:\n%s", data)
	}
}
