package delta

import (
	"testing"

	"github.com/odvcencio/art/internal/change"
)

func TestComputeIdentical(t *testing.T) {
	if ops := Compute("hello world", "hello world"); ops != nil {
		t.Fatalf("expected nil ops for identical content, got %v", ops)
	}
}

func TestComputeAndApplyRoundTrip(t *testing.T) {
	cases := []struct{ prev, cur string }{
		{"hello world", "hello there world"},
		{"hello world", "hello"},
		{"", "new content"},
		{"old content", ""},
		{"abcdef", "abXYZf"},
		{"日本語のテキスト", "日本語のテスト"},
	}
	for _, c := range cases {
		ops := Compute(c.prev, c.cur)
		got := Apply(c.prev, ops)
		if got != c.cur {
			t.Errorf("Compute(%q,%q) then Apply = %q, want %q (ops=%v)", c.prev, c.cur, got, c.cur, ops)
		}
	}
}

func TestComputeEmitsDeleteThenInsert(t *testing.T) {
	ops := Compute("hello\n", "Hello\n")
	if len(ops) != 2 {
		t.Fatalf("expected a delete and an insert, got %v", ops)
	}
	if ops[0].Type != change.OpDelete || ops[0].Position != 0 || ops[0].Length != 1 {
		t.Fatalf("expected first op to delete 1 byte at 0, got %v", ops)
	}
	if ops[1].Type != change.OpInsert || ops[1].Position != 0 || ops[1].Content != "H" {
		t.Fatalf("expected second op to insert %q at 0, got %v", "H", ops)
	}
}

func TestApplyIsInverseOfCompute(t *testing.T) {
	prev := "the quick brown fox"
	cur := "the slow brown foxes"
	ops := Compute(prev, cur)
	if Apply(prev, ops) != cur {
		t.Fatalf("apply(compute) did not reproduce target")
	}
}

func TestIsBinary(t *testing.T) {
	if IsBinary([]byte("plain text")) {
		t.Error("plain text misclassified as binary")
	}
	if !IsBinary([]byte("has\x00nul")) {
		t.Error("NUL-containing data not classified as binary")
	}
	if IsBinary(nil) {
		t.Error("empty data misclassified as binary")
	}
}
