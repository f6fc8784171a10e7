// Package delta computes and applies the compact insert/delete edit script
// between two text blobs (spec §4.2, §4.3). Positions are UTF-8 byte
// offsets throughout — the recommendation in spec §9 ("Position
// semantics") — and the same offsets are used consistently by the add
// workflow (internal/workflow) and the state reconstructor
// (internal/state), so nothing here reinterprets an offset computed
// elsewhere under a different encoding.
package delta

import "github.com/odvcencio/art/internal/change"

// Compute returns the ops needed to turn previous into current, or nil if
// the two strings are identical. Both strings are assumed non-binary.
//
// Algorithm (spec §4.2):
//  1. start = length of the longest common byte prefix.
//  2. oldEnd, newEnd walk back from the end while bytes match and indices
//     stay >= start.
//  3. A Delete op covers previous[start:oldEnd+1] if that range is non-empty.
//  4. An Insert op covers current[start:newEnd+1] if that range is non-empty.
//
// The returned ops apply to previous in order (delete, then insert) to
// reproduce current exactly (spec §4.2, testable property 3 in §8).
func Compute(previous, current string) []change.Op {
	start := commonPrefixLen(previous, current)

	oldEnd := len(previous) - 1
	newEnd := len(current) - 1
	for oldEnd >= start && newEnd >= start && previous[oldEnd] == current[newEnd] {
		oldEnd--
		newEnd--
	}

	var ops []change.Op

	delLen := oldEnd - start + 1
	if delLen > 0 {
		ops = append(ops, change.Op{Type: change.OpDelete, Position: start, Length: delLen})
	}

	if newEnd >= start {
		ins := current[start : newEnd+1]
		if ins != "" {
			ops = append(ops, change.Op{Type: change.OpInsert, Position: start, Content: ins})
		}
	}

	return ops
}

func commonPrefixLen(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// Apply applies ops to content in order, returning the result. This is the
// inverse of Compute and is also the primitive the state reconstructor
// (spec §4.3) and stash pop (spec §4.6) use to replay an Ops change.
func Apply(content string, ops []change.Op) string {
	for _, op := range ops {
		switch op.Type {
		case change.OpInsert:
			content = content[:op.Position] + op.Content + content[op.Position:]
		case change.OpDelete:
			content = content[:op.Position] + content[op.Position+op.Length:]
		}
	}
	return content
}

// IsBinary reports whether data should be treated as binary: spec §4.2
// defines this as "raw bytes contain a NUL (0x00)".
func IsBinary(data []byte) bool {
	for _, b := range data {
		if b == 0 {
			return true
		}
	}
	return false
}
