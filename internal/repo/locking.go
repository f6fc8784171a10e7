package repo

import (
	"github.com/odvcencio/art/internal/apperr"
	"github.com/odvcencio/art/internal/lock"
)

// Lock acquires the repository's advisory exclusive lock (SPEC_FULL
// §4.7.1). Every public core operation should call this before mutating
// anything and Release the returned handle when it returns, including on
// error paths.
func (r *Repo) Lock() (*lock.Handle, error) {
	h, err := lock.Acquire(r.lockPath())
	if err != nil {
		return nil, apperr.Newf(apperr.Conflict, "lock", "repository is locked by another operation: %v", err)
	}
	return h, nil
}
