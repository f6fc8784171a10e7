package branchop

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/odvcencio/art/internal/apperr"
	"github.com/odvcencio/art/internal/repo"
)

// Checkout switches the working tree to target (spec §4.5 "checkout").
// If target does not exist yet, it is implicitly created from the active
// branch. A dirty working tree blocks the switch unless force is set.
func Checkout(r *repo.Repo, target string, force bool) (string, error) {
	lk, err := r.Lock()
	if err != nil {
		return "", err
	}
	defer lk.Release()

	return CheckoutLocked(r, target, force)
}

// CheckoutLocked runs the checkout sequence without acquiring the
// repository lock itself, for callers (internal/cache's stash and reset,
// which materialize the working tree via a forced checkout) that already
// hold it.
func CheckoutLocked(r *repo.Repo, target string, force bool) (string, error) {
	head, err := r.ReadHead()
	if err != nil {
		return "", err
	}

	if !r.BranchExists(target) {
		if err := r.CreateBranch(target, head.Active.Branch); err != nil {
			return "", err
		}
	}

	currentTarget := ""
	if head.Active.Parent != nil {
		currentTarget = *head.Active.Parent
	}
	currentState, err := r.GetStateByHash(head.Active.Branch, currentTarget)
	if err != nil {
		return "", err
	}

	if !force {
		dirty, err := isDirty(r.RootDir, currentState)
		if err != nil {
			return "", apperr.New(apperr.IOError, "checkout", err)
		}
		if dirty {
			return "", apperr.Newf(apperr.Conflict, "checkout", "local changes would be overwritten by checkout")
		}
	}

	targetManifest, err := r.LoadBranchManifest(target, false)
	if err != nil {
		return "", err
	}
	var targetParent *string
	targetHead := ""
	if n := len(targetManifest.Commits); n > 0 {
		targetHead = targetManifest.Commits[n-1]
		h := targetHead
		targetParent = &h
	}

	targetState, err := r.GetStateByHash(target, targetHead)
	if err != nil {
		return "", err
	}

	if err := materialize(r.RootDir, currentState, targetState); err != nil {
		return "", apperr.New(apperr.IOError, "checkout", err)
	}

	head.Active = repo.ActiveRef{Branch: target, Parent: targetParent}
	if err := r.WriteHead(head); err != nil {
		return "", err
	}

	return fmt.Sprintf("Switched to branch %q.", target), nil
}

// isDirty reports whether the working tree diverges from currentState:
// either a tracked file's content differs on disk, or a tracked file is
// missing from disk entirely (spec §4.5 step 2).
func isDirty(root string, currentState map[string]string) (bool, error) {
	for path, content := range currentState {
		data, err := os.ReadFile(filepath.Join(root, path))
		if err != nil {
			if os.IsNotExist(err) {
				return true, nil
			}
			return false, err
		}
		if string(data) != content {
			return true, nil
		}
	}
	return false, nil
}

// materialize removes every file present in currentState but absent from
// targetState, then writes every file in targetState, creating parent
// directories as needed (spec §4.5 step 3).
func materialize(root string, currentState, targetState map[string]string) error {
	for path := range currentState {
		if _, ok := targetState[path]; ok {
			continue
		}
		if err := os.Remove(filepath.Join(root, path)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	for path, content := range targetState {
		full := filepath.Join(root, path)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}
