package repo

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/odvcencio/art/internal/apperr"
	"github.com/odvcencio/art/internal/change"
	"github.com/odvcencio/art/internal/state"
	"github.com/odvcencio/art/internal/store"
)

// scanWorkingTree walks the working tree at init time, excluding the
// metadata directory and ignored paths, and returns a path -> content map
// to seed the root snapshot (spec §2 "Init/clone seed").
func (r *Repo) scanWorkingTree() (map[string]string, error) {
	ic := r.IgnoreChecker()
	out := map[string]string{}

	err := filepath.WalkDir(r.RootDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(r.RootDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}
		if d.IsDir() {
			if ic.IsIgnored(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if ic.IsIgnored(rel) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out[rel] = string(data)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) saveRootSnapshot(files map[string]string) error {
	if err := store.SaveRoot(r.rootDir(), files); err != nil {
		return apperr.New(apperr.IOError, "init", err)
	}
	return nil
}

// LoadRootSnapshot reads the immutable seed snapshot.
func (r *Repo) LoadRootSnapshot() (map[string]string, error) {
	files, err := store.LoadRoot(r.rootDir())
	if err != nil {
		return nil, apperr.New(apperr.IOError, "load-root", err)
	}
	return files, nil
}

// GetStateByHash replays branch's commit chain up to (and including)
// targetHash over the root snapshot (spec §4.3). targetHash == "" returns
// the root snapshot unmodified.
func (r *Repo) GetStateByHash(branch, targetHash string) (map[string]string, error) {
	root, err := r.LoadRootSnapshot()
	if err != nil {
		return nil, err
	}
	manifest, err := r.LoadBranchManifest(branch, false)
	if err != nil {
		return nil, err
	}

	branchDir := r.localBranchDir(branch)
	loader := func(hash string) (map[string]change.Change, error) {
		return r.LoadCommitChanges(branchDir, hash)
	}
	return state.Reconstruct(root, manifest.Commits, loader, targetHash)
}
