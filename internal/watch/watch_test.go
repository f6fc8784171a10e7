package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/odvcencio/art/internal/repo"
)

func TestRunInvokesOnChangeImmediatelyAndOnEdit(t *testing.T) {
	dir := t.TempDir()
	r, err := repo.Init(dir)
	if err != nil {
		t.Fatal(err)
	}

	stop := make(chan struct{})
	calls := make(chan struct{}, 8)

	done := make(chan error, 1)
	go func() {
		done <- Run(r, stop, func() { calls <- struct{}{} })
	}()

	select {
	case <-calls:
	case <-time.After(2 * time.Second):
		t.Fatal("expected an immediate onChange call on Run")
	}

	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-calls:
	case <-time.After(2 * time.Second):
		t.Fatal("expected onChange to fire after a working-tree edit")
	}

	close(stop)
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected Run to exit cleanly on stop, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected Run to return after stop is closed")
	}
}

func TestIsMetaExcludesMetadataDirectory(t *testing.T) {
	root := t.TempDir()
	if !isMeta(root, filepath.Join(root, repo.MetaDirName)) {
		t.Fatal("expected the metadata directory itself to be classified as meta")
	}
	if !isMeta(root, filepath.Join(root, repo.MetaDirName, "art.json")) {
		t.Fatal("expected files under the metadata directory to be classified as meta")
	}
	if isMeta(root, filepath.Join(root, "a.txt")) {
		t.Fatal("did not expect a working-tree file to be classified as meta")
	}
}
