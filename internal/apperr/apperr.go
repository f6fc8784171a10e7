// Package apperr defines the error kinds the core surfaces to callers.
//
// Public core operations fail with one of these kinds rather than a bare
// error, so a front end (CLI or otherwise) can map failures to exit codes
// without string-matching messages. repo.Init is the exception: it returns
// plain errors.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure the core can produce. See spec §7.
type Kind int

const (
	// RepositoryMissing means .art/art.json is absent where required.
	RepositoryMissing Kind = iota
	// InvalidArgument means a caller-supplied argument was malformed or missing.
	InvalidArgument
	// NotFound means a referenced commit hash or path does not exist.
	NotFound
	// Conflict means the operation would clobber existing state (dirty
	// checkout, branch already exists, deleting the active branch, a held
	// advisory lock).
	Conflict
	// RemoteUnconfigured means a sync operation ran without a configured remote.
	RemoteUnconfigured
	// IOError wraps an underlying filesystem failure verbatim.
	IOError
)

func (k Kind) String() string {
	switch k {
	case RepositoryMissing:
		return "RepositoryMissing"
	case InvalidArgument:
		return "InvalidArgument"
	case NotFound:
		return "NotFound"
	case Conflict:
		return "Conflict"
	case RemoteUnconfigured:
		return "RemoteUnconfigured"
	case IOError:
		return "IOError"
	default:
		return "Unknown"
	}
}

// Sentinel errors, one per Kind, for use with errors.Is.
var (
	ErrRepositoryMissing  = errors.New("repository missing")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrRemoteUnconfigured = errors.New("remote unconfigured")
	ErrIOError            = errors.New("io error")
)

func (k Kind) sentinel() error {
	switch k {
	case RepositoryMissing:
		return ErrRepositoryMissing
	case InvalidArgument:
		return ErrInvalidArgument
	case NotFound:
		return ErrNotFound
	case Conflict:
		return ErrConflict
	case RemoteUnconfigured:
		return ErrRemoteUnconfigured
	default:
		return ErrIOError
	}
}

// Error is the concrete error type returned by core operations.
type Error struct {
	Kind Kind
	Op   string // short operation name, e.g. "commit", "checkout"
	Err  error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target matches this error's kind via the kind's
// sentinel, so callers can do errors.Is(err, apperr.ErrConflict).
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// New constructs an *Error for the given kind, operation, and cause.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Newf constructs an *Error with a formatted message as the cause.
func Newf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}
