package cache

import (
	"os"
	"path/filepath"
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

func TestStashSaveAndPopRestoresWorkingTree(t *testing.T) {
	r := initRepo(t)
	commitFile(t, r, "a.txt", "base", "seed")
	writeFile(t, r, "a.txt", "modified")

	msg, err := Stash(r)
	if err != nil {
		t.Fatal(err)
	}
	if msg != "Saved working tree state." {
		t.Fatalf("unexpected stash message: %s", msg)
	}

	data, err := os.ReadFile(filepath.Join(r.RootDir, "a.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "base" {
		t.Fatalf("expected working tree reverted to base after stash, got %q", data)
	}

	if _, err := StashPop(r); err != nil {
		t.Fatal(err)
	}
	data, err = os.ReadFile(filepath.Join(r.RootDir, "a.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "modified" {
		t.Fatalf("expected working tree restored to modified after pop, got %q", data)
	}
}

func TestStashNoLocalChanges(t *testing.T) {
	r := initRepo(t)
	commitFile(t, r, "a.txt", "base", "seed")

	msg, err := Stash(r)
	if err != nil {
		t.Fatal(err)
	}
	if msg != "No local changes to stash." {
		t.Fatalf("unexpected message: %s", msg)
	}
}

func TestStashListNewestFirst(t *testing.T) {
	r := initRepo(t)
	commitFile(t, r, "a.txt", "base", "seed")

	writeFile(t, r, "a.txt", "change1")
	if _, err := Stash(r); err != nil {
		t.Fatal(err)
	}
	writeFile(t, r, "a.txt", "change2")
	if _, err := Stash(r); err != nil {
		t.Fatal(err)
	}

	list, err := StashList(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 stash entries, got %d", len(list))
	}
	if list[0].ID != "stash@{0}" {
		t.Fatalf("expected newest entry first, got %+v", list)
	}
}

func TestStashPopEmptyStackErrors(t *testing.T) {
	r := initRepo(t)
	if _, err := StashPop(r); err == nil {
		t.Fatal("expected popping an empty stash stack to fail")
	}
}

func TestResetClearsStage(t *testing.T) {
	r := initRepo(t)
	writeFile(t, r, "a.txt", "hello")
	if _, err := workflow.Add(r, "a.txt"); err != nil {
		t.Fatal(err)
	}
	msg, err := Reset(r, "")
	if err != nil {
		t.Fatal(err)
	}
	if msg != "Stage cleared." {
		t.Fatalf("unexpected message: %s", msg)
	}
}

func TestResetRewindsToCommit(t *testing.T) {
	r := initRepo(t)
	commitFile(t, r, "a.txt", "v1", "first")
	head1, err := r.ReadHead()
	if err != nil {
		t.Fatal(err)
	}
	firstHash := *head1.Active.Parent

	commitFile(t, r, "a.txt", "v2", "second")

	msg, err := Reset(r, firstHash)
	if err != nil {
		t.Fatal(err)
	}
	if msg != "HEAD is now at "+firstHash {
		t.Fatalf("unexpected reset message: %s", msg)
	}

	data, err := os.ReadFile(filepath.Join(r.RootDir, "a.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "v1" {
		t.Fatalf("expected working tree reverted to v1 after reset, got %q", data)
	}

	head2, err := r.ReadHead()
	if err != nil {
		t.Fatal(err)
	}
	if *head2.Active.Parent != firstHash {
		t.Fatalf("expected head.active.parent to be %s, got %s", firstHash, *head2.Active.Parent)
	}
}

func TestResetUnknownHashErrors(t *testing.T) {
	r := initRepo(t)
	commitFile(t, r, "a.txt", "v1", "first")
	if _, err := Reset(r, "0000000000000000000000000000000000dead"); err == nil {
		t.Fatal("expected reset to an unknown hash to fail")
	}
}

func TestRmStagesDeletionAndUnlinks(t *testing.T) {
	r := initRepo(t)
	commitFile(t, r, "a.txt", "v1", "first")

	if _, err := Rm(r, "a.txt"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(r.RootDir, "a.txt")); !os.IsNotExist(err) {
		t.Fatal("expected a.txt removed from the working tree")
	}

	if _, err := workflow.Commit(r, "delete a.txt"); err != nil {
		t.Fatal(err)
	}
}
