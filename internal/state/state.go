// Package state implements the replay engine: reconstructing a file map
// from the seeded root snapshot plus a chronological commit chain
// (spec §4.3).
package state

import (
	"github.com/odvcencio/art/internal/change"
	"github.com/odvcencio/art/internal/delta"
)

// ChangeLoader loads the full, merged change set for one commit hash. The
// caller (internal/repo) resolves hash -> {master, parts} against the
// appropriate branch directory; this package only needs the result.
type ChangeLoader func(hash string) (map[string]change.Change, error)

// Reconstruct replays commits (oldest to newest, as stored in a branch
// manifest) over root to produce the file map as of targetHash.
//
// If targetHash is empty, root is returned unmodified (spec §4.3 step 2:
// "If targetHash is null, return S"). Replay stops immediately after
// applying the commit whose hash equals targetHash; commits is assumed to
// already be truncated to (or beyond) that point — callers that have the
// full manifest should pass it as-is since Reconstruct breaks on match
// just like the reference.
func Reconstruct(root map[string]string, commits []string, load ChangeLoader, targetHash string) (map[string]string, error) {
	s := make(map[string]string, len(root))
	for k, v := range root {
		s[k] = v
	}
	if targetHash == "" {
		return s, nil
	}

	for _, h := range commits {
		changes, err := load(h)
		if err != nil {
			return nil, err
		}
		Apply(s, changes)
		if h == targetHash {
			break
		}
	}
	return s, nil
}

// Apply mutates s in place according to changes, per spec §4.3 step 3b.
// Ops are applied against s[path] (or "" if absent) in op-list order.
func Apply(s map[string]string, changes map[string]change.Change) {
	for path, c := range changes {
		switch c.Variant() {
		case change.KindCreate:
			s[path] = c.Create.Content
		case change.KindDelete:
			delete(s, path)
		case change.KindOps:
			s[path] = delta.Apply(s[path], c.Ops)
		}
	}
}
