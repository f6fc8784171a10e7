// Package store implements the paginated manifest layout that backs every
// persistent mapping in the core: the root snapshot, commit change sets,
// the staging index, and stash entries (spec §4.1, §9 "Paginated mapping
// as the universal container").
//
// A directory D holds manifest.json ({"parts": [...]}) plus zero or more
// part files, each {"changes": {path: Change}}. load merges the parts in
// manifest order; save rewrites D from scratch, splitting changes across
// parts so no part's JSON serialization exceeds MaxPartSize, except a
// single entry that alone exceeds the bound (never split further).
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/odvcencio/art/internal/change"
)

// MaxPartSize is the size bound in spec §3: no part's JSON serialization
// may exceed this many bytes, except a single oversized entry.
const MaxPartSize = 32_000_000

// manifest is the on-disk {"parts": [...]} index.
type manifest struct {
	Parts []string `json:"parts"`
}

// part is the on-disk {"changes": {...}} payload of one manifest entry.
type part struct {
	Changes map[string]change.Change `json:"changes"`
}

// partNamer builds the filename for part index i within dir, used by both
// the plain stage/stash layout (part.N.json) and the hash-prefixed commit
// layout (<hash>.part.N.json).
type partNamer func(i int) string

// DefaultPartNamer names parts "part.<i>.json".
func DefaultPartNamer(i int) string { return fmt.Sprintf("part.%d.json", i) }

// HashPartNamer names parts "<hash>.part.<i>.json", matching commit masters.
func HashPartNamer(hash string) partNamer {
	return func(i int) string { return fmt.Sprintf("%s.part.%d.json", hash, i) }
}

// Load reads D/manifest.json and each referenced part, merging their
// changes maps by key in manifest order. A missing directory or missing
// manifest yields an empty mapping, not an error.
func Load(dir string) (map[string]change.Change, error) {
	manifestPath := filepath.Join(dir, "manifest.json")
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]change.Change{}, nil
		}
		return nil, fmt.Errorf("store: load %s: %w", manifestPath, err)
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("store: load %s: unmarshal: %w", manifestPath, err)
	}

	return LoadParts(dir, m.Parts)
}

// LoadParts merges the given part filenames (relative to dir) directly,
// without consulting a manifest.json. Commit masters (spec §3) name their
// parts explicitly rather than through a manifest, so replay uses this
// instead of Load once it has the master's Parts list.
func LoadParts(dir string, parts []string) (map[string]change.Change, error) {
	out := make(map[string]change.Change)
	for _, name := range parts {
		partPath := filepath.Join(dir, name)
		raw, err := os.ReadFile(partPath)
		if err != nil {
			return nil, fmt.Errorf("store: load part %s: %w", partPath, err)
		}
		var p part
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("store: load part %s: unmarshal: %w", partPath, err)
		}
		for k, v := range p.Changes {
			out[k] = v
		}
	}
	return out, nil
}

// orderedKeys preserves the insertion order recorded alongside the mapping.
// Plain Go maps have no order, so Save accepts an explicit key order; when
// the caller has none to offer, keys are sorted for determinism.
func orderedKeys(m map[string]change.Change, order []string) []string {
	if order != nil {
		return order
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Save replaces dir with a fresh manifest plus parts built from m: it
// removes dir first, then writes each file atomically, iterating in the
// given key order (pass nil to sort keys). namer produces each part's
// filename; pass nil for the default "part.N.json" scheme. The manifest is written last so a reader that sees it sees every
// part it names.
func Save(dir string, m map[string]change.Change, order []string, namer partNamer) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("store: save: clear %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: save: mkdir %s: %w", dir, err)
	}

	partNames, err := writePartsOnly(dir, m, order, namer)
	if err != nil {
		return err
	}
	return writeManifest(dir, manifest{Parts: partNames})
}

// SaveParts writes only the paginated part files for m (no manifest.json)
// and returns the list of part filenames written, in order. Commit masters
// (spec §3) record this list directly rather than through a manifest, so
// commit persistence uses this instead of Save.
func SaveParts(dir string, m map[string]change.Change, order []string, namer partNamer) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: save parts: mkdir %s: %w", dir, err)
	}
	return writePartsOnly(dir, m, order, namer)
}

func writePartsOnly(dir string, m map[string]change.Change, order []string, namer partNamer) ([]string, error) {
	if namer == nil {
		namer = DefaultPartNamer
	}
	if len(m) == 0 {
		return []string{}, nil
	}

	keys := orderedKeys(m, order)

	var partNames []string
	partIdx := 0
	current := part{Changes: map[string]change.Change{}}
	currentSize := 0

	flush := func() error {
		if len(current.Changes) == 0 {
			return nil
		}
		name := namer(partIdx)
		if err := writePart(dir, name, current); err != nil {
			return err
		}
		partNames = append(partNames, name)
		partIdx++
		current = part{Changes: map[string]change.Change{}}
		currentSize = 0
		return nil
	}

	for _, k := range keys {
		v := m[k]
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("store: save: encode %q: %w", k, err)
		}
		size := len(encoded)

		if len(current.Changes) > 0 && currentSize+size > MaxPartSize {
			if err := flush(); err != nil {
				return nil, err
			}
		}
		current.Changes[k] = v
		currentSize += size
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return partNames, nil
}

func writePart(dir, name string, p part) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshal part %s: %w", name, err)
	}
	return writeFileAtomic(filepath.Join(dir, name), data)
}

func writeManifest(dir string, m manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshal manifest: %w", err)
	}
	return writeFileAtomic(filepath.Join(dir, "manifest.json"), data)
}
