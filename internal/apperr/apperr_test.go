package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorsIsMatchesSentinel(t *testing.T) {
	err := Newf(Conflict, "checkout", "dirty working tree")
	if !errors.Is(err, ErrConflict) {
		t.Fatal("expected errors.Is to match the Conflict sentinel")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatal("did not expect Conflict to match the NotFound sentinel")
	}
}

func TestErrorsAsUnwraps(t *testing.T) {
	wrapped := fmt.Errorf("wrap: %w", New(NotFound, "diff", errors.New("no such commit")))
	var ae *Error
	if !errors.As(wrapped, &ae) {
		t.Fatal("expected errors.As to find the *Error")
	}
	if ae.Kind != NotFound {
		t.Fatalf("expected NotFound, got %v", ae.Kind)
	}
}

func TestErrorMessageIncludesCause(t *testing.T) {
	err := New(IOError, "commit", errors.New("disk full"))
	msg := err.Error()
	if msg != "commit: IOError: disk full" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestErrorMessageWithoutCause(t *testing.T) {
	err := &Error{Kind: RepositoryMissing, Op: "open"}
	if err.Error() != "open: RepositoryMissing" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
