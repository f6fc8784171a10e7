package cache

import (
	"os"

	"github.com/odvcencio/art/internal/apperr"
	"github.com/odvcencio/art/internal/branchop"
	"github.com/odvcencio/art/internal/repo"
)

// Reset with an empty hash destroys the stage. With a hash, it verifies
// the commit exists on the active branch, rewinds head.active.parent and
// the branch manifest to that commit, then forces a checkout to
// materialize the working tree. Commit objects beyond the truncation
// point are left on disk as garbage — a deliberate recovery path
// (spec §4.6 "reset").
func Reset(r *repo.Repo, hash string) (string, error) {
	lk, err := r.Lock()
	if err != nil {
		return "", err
	}
	defer lk.Release()

	if hash == "" {
		if err := os.RemoveAll(r.StageDir()); err != nil {
			return "", apperr.New(apperr.IOError, "reset", err)
		}
		return "Stage cleared.", nil
	}

	head, err := r.ReadHead()
	if err != nil {
		return "", err
	}
	branch := head.Active.Branch
	branchDir := r.LocalBranchDir(branch)

	if _, err := r.ReadCommitMaster(branchDir, hash); err != nil {
		return "", apperr.Newf(apperr.NotFound, "reset", "commit %s not found on branch %q", hash, branch)
	}

	manifest, err := r.LoadBranchManifest(branch, false)
	if err != nil {
		return "", err
	}
	idx := -1
	for i, h := range manifest.Commits {
		if h == hash {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", apperr.Newf(apperr.NotFound, "reset", "commit %s not found in branch %q manifest", hash, branch)
	}
	manifest.Commits = manifest.Commits[:idx+1]
	if err := r.SaveBranchManifest(branch, false, manifest); err != nil {
		return "", err
	}

	hashCopy := hash
	head.Active.Parent = &hashCopy
	if err := r.WriteHead(head); err != nil {
		return "", err
	}

	if _, err := branchop.CheckoutLocked(r, branch, true); err != nil {
		return "", err
	}

	return "HEAD is now at " + hash, nil
}
