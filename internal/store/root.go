package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// RootFile is one entry in the root snapshot's part payload.
type RootFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// rootPart is the on-disk shape of a root snapshot part: {"files": [...]}.
type rootPart struct {
	Files []RootFile `json:"files"`
}

// LoadRoot reads the root snapshot at dir (manifest.json + manifest.part.N.json)
// into a path -> content map. A missing directory or manifest yields an
// empty map, matching Load's contract for the changes layout.
func LoadRoot(dir string) (map[string]string, error) {
	manifestPath := filepath.Join(dir, "manifest.json")
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("store: load root %s: %w", manifestPath, err)
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("store: load root %s: unmarshal: %w", manifestPath, err)
	}

	out := make(map[string]string)
	for _, name := range m.Parts {
		partPath := filepath.Join(dir, name)
		raw, err := os.ReadFile(partPath)
		if err != nil {
			return nil, fmt.Errorf("store: load root part %s: %w", partPath, err)
		}
		var p rootPart
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("store: load root part %s: unmarshal: %w", partPath, err)
		}
		for _, f := range p.Files {
			out[f.Path] = f.Content
		}
	}
	return out, nil
}

// SaveRoot writes the root snapshot at dir from a path -> content map, using
// the same size-bounded pagination rule as Save, with parts named
// "manifest.part.<i>.json" per spec §6's on-disk layout. Keys are visited
// in sorted order since the root snapshot is captured once at init and has
// no meaningful insertion order of its own.
func SaveRoot(dir string, files map[string]string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("store: save root: clear %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: save root: mkdir %s: %w", dir, err)
	}
	if len(files) == 0 {
		return writeManifest(dir, manifest{Parts: []string{}})
	}

	keys := make([]string, 0, len(files))
	for k := range files {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var partNames []string
	partIdx := 0
	current := rootPart{}
	currentSize := 0

	flush := func() error {
		if len(current.Files) == 0 {
			return nil
		}
		name := fmt.Sprintf("manifest.part.%d.json", partIdx)
		data, err := json.MarshalIndent(current, "", "  ")
		if err != nil {
			return fmt.Errorf("store: save root: marshal part %s: %w", name, err)
		}
		if err := writeFileAtomic(filepath.Join(dir, name), data); err != nil {
			return err
		}
		partNames = append(partNames, name)
		partIdx++
		current = rootPart{}
		currentSize = 0
		return nil
	}

	for _, k := range keys {
		content := files[k]
		entry := RootFile{Path: k, Content: content}
		encoded, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("store: save root: encode %q: %w", k, err)
		}
		size := len(encoded)

		if len(current.Files) > 0 && currentSize+size > MaxPartSize {
			if err := flush(); err != nil {
				return err
			}
		}
		current.Files = append(current.Files, entry)
		currentSize += size
	}
	if err := flush(); err != nil {
		return err
	}

	return writeManifest(dir, manifest{Parts: partNames})
}
