// Package lock provides the advisory exclusive lock spec §5 leaves as an
// open question ("Implementations MAY add an advisory exclusive lock on a
// file inside the metadata directory"). SPEC_FULL §4.7.1 resolves the
// question: every public core operation takes this lock for its duration.
//
// It generalizes the teacher's hand-rolled O_EXCL-plus-retry ref lock onto
// a real advisory-locking primitive, github.com/gofrs/flock, adopted from
// the example pack's gastown module.
package lock

import (
	"fmt"

	"github.com/gofrs/flock"
)

// Handle wraps a held advisory lock; call Release when the operation ends.
type Handle struct {
	fl *flock.Flock
}

// Acquire takes a non-blocking exclusive lock on path (typically
// "<metaDir>/art.lock"). It does not wait: per spec §5, the core has no
// suspension semantics beyond I/O latency, so a contended lock fails
// immediately rather than queuing.
func Acquire(path string) (*Handle, error) {
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock: %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("lock: %s: held by another operation", path)
	}
	return &Handle{fl: fl}, nil
}

// Release unlocks the held lock. Safe to call on a nil Handle.
func (h *Handle) Release() error {
	if h == nil || h.fl == nil {
		return nil
	}
	return h.fl.Unlock()
}
