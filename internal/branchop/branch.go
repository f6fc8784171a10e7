// Package branchop implements branch management, checkout, and three-way
// merge (spec §4.5).
package branchop

import (
	"fmt"

	"github.com/odvcencio/art/internal/apperr"
	"github.com/odvcencio/art/internal/repo"
)

// List returns local branch directory names (spec §4.5 "branch": listing).
func List(r *repo.Repo) ([]string, error) {
	return r.ListBranches()
}

// Create seeds a new branch from the currently active branch (spec §4.5
// "branch": create).
func Create(r *repo.Repo, name string) (string, error) {
	lk, err := r.Lock()
	if err != nil {
		return "", err
	}
	defer lk.Release()

	head, err := r.ReadHead()
	if err != nil {
		return "", err
	}
	if err := r.CreateBranch(name, head.Active.Branch); err != nil {
		return "", err
	}
	return fmt.Sprintf("Created branch %q from %q.", name, head.Active.Branch), nil
}

// Delete removes branch (spec §4.5 "branch": delete). Fails if branch is
// active or does not exist.
func Delete(r *repo.Repo, name string) (string, error) {
	lk, err := r.Lock()
	if err != nil {
		return "", err
	}
	defer lk.Release()

	if err := r.DeleteBranch(name); err != nil {
		return "", err
	}
	return fmt.Sprintf("Deleted branch %q.", name), nil
}

func notFoundBranch(op, name string) error {
	return apperr.Newf(apperr.NotFound, op, "branch %q does not exist", name)
}
