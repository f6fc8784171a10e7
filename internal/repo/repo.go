// Package repo implements the repository handle: the on-disk metadata
// directory layout (spec §6), head state, branch manifests, and the
// seed/init sequence (spec §4's "Init/clone seed"). Higher-level
// operations (add/commit/status/diff/log in internal/workflow,
// branch/checkout/merge in internal/branchop, stash/reset/rm in
// internal/cache) are built on top of the primitives here.
package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/odvcencio/art/internal/ignore"
)

// MetaDirName is the hidden metadata directory name (spec §3: "a hidden
// metadata directory within the working tree").
const MetaDirName = ".art"

// Repo is an opened art repository.
type Repo struct {
	RootDir string // working tree root
	ArtDir  string // <RootDir>/.art
}

// headFilePath is the file whose presence identifies a valid repository
// (spec §3: "a valid repository is identified by the presence of its head
// file inside this directory").
func (r *Repo) headFilePath() string { return filepath.Join(r.ArtDir, "art.json") }

func (r *Repo) rootDir() string              { return filepath.Join(r.ArtDir, "root") }
func (r *Repo) historyDir() string           { return filepath.Join(r.ArtDir, "history") }
func (r *Repo) localBranchDir(b string) string  { return filepath.Join(r.ArtDir, "history", "local", b) }
func (r *Repo) remoteBranchDir(b string) string { return filepath.Join(r.ArtDir, "history", "remote", b) }
func (r *Repo) stageDir() string             { return filepath.Join(r.ArtDir, "stage") }
func (r *Repo) cacheDir() string             { return filepath.Join(r.ArtDir, "cache") }
func (r *Repo) lockPath() string             { return filepath.Join(r.ArtDir, "art.lock") }

// LockPath exposes the path of the advisory lock file that Lock acquires.
func (r *Repo) LockPath() string { return r.lockPath() }

// IgnoreChecker returns a new Checker for this repo handle, built from
// `.artignore` as it is at the time of the call. Nothing is cached: every
// call rereads the ignore file.
func (r *Repo) IgnoreChecker() *ignore.Checker {
	return ignore.New(r.RootDir, MetaDirName)
}

// Init creates a brand-new repository at path: the .art/ directory
// structure, an empty "main" branch (local + remote mirror), and a root
// snapshot seeded from whatever files already exist in the working tree
// (spec §2: "Materialize the initial root snapshot and empty branch
// manifests").
func Init(path string) (*Repo, error) {
	artDir := filepath.Join(path, MetaDirName)
	if _, err := os.Stat(artDir); err == nil {
		return nil, fmt.Errorf("init: repository already exists at %s", artDir)
	}

	r := &Repo{RootDir: path, ArtDir: artDir}

	for _, d := range []string{
		r.rootDir(),
		r.localBranchDir("main"),
		r.remoteBranchDir("main"),
		r.stageDir(),
		r.cacheDir(),
	} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("init: mkdir %s: %w", d, err)
		}
	}

	seed, err := r.scanWorkingTree()
	if err != nil {
		return nil, fmt.Errorf("init: seed root snapshot: %w", err)
	}
	if err := r.saveRootSnapshot(seed); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	if err := r.saveBranchManifest("main", false, BranchManifest{Commits: []string{}}); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	if err := r.saveBranchManifest("main", true, BranchManifest{Commits: []string{}}); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	head := Head{
		Active:        ActiveRef{Branch: "main", Parent: nil},
		Remote:        "",
		Configuration: map[string]string{},
	}
	if err := r.WriteHead(head); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	return r, nil
}

// Open locates the repository containing path by walking up until a
// MetaDirName directory with a head file is found. Returns
// apperr RepositoryMissing if none is found.
func Open(path string) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	cur := abs
	for {
		artDir := filepath.Join(cur, MetaDirName)
		r := &Repo{RootDir: cur, ArtDir: artDir}
		if _, err := os.Stat(r.headFilePath()); err == nil {
			return r, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, repositoryMissingErr(abs)
		}
		cur = parent
	}
}
