// Package watch implements the live status watcher (SPEC_FULL §4.7.4):
// `art status --watch` re-runs the read-only status computation whenever
// a file under the working tree changes.
//
// Grounded on the watch-and-classify loop in
// Mschirtzinger-jj-beads/internal/turso/daemon/watcher.go, narrowed to a
// single recursive root instead of a fixed task/dep directory pair, and
// with no event channel buffering beyond what a single consumer needs —
// this never introduces a second writer against the repository, since it
// only ever calls the existing status() path (spec §5).
package watch

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/odvcencio/art/internal/repo"
)

// Run watches r's working tree and invokes onChange (typically a
// re-rendering of workflow.Compute's Status) after each filesystem event
// that isn't under the metadata directory. It blocks until stop is
// closed or the watcher errors.
func Run(r *repo.Repo, stop <-chan struct{}, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: new watcher: %w", err)
	}
	defer w.Close()

	if err := addRecursive(w, r.RootDir); err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	onChange()
	for {
		select {
		case <-stop:
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if isMeta(r.RootDir, ev.Name) {
				continue
			}
			onChange()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch: %w", err)
		}
	}
}

func addRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		if rel == repo.MetaDirName {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}

func isMeta(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == repo.MetaDirName {
		return true
	}
	prefix := repo.MetaDirName + string(filepath.Separator)
	return len(rel) >= len(prefix) && rel[:len(prefix)] == prefix
}
