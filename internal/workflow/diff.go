package workflow

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/odvcencio/art/internal/apperr"
	"github.com/odvcencio/art/internal/delta"
	"github.com/odvcencio/art/internal/repo"
)

// BinaryPlaceholder is the sentinel diff text for a new binary file.
const BinaryPlaceholder = "<Binary Data>"

// FileDiff is one file's change, expressed as the spec §4.2 delta split:
// the span of previous and the span of current that lie between their
// common prefix and common suffix.
type FileDiff struct {
	File    string
	Deleted string
	Added   string
}

// DiffResult is the full diff report (spec §4.4 "diff").
type DiffResult struct {
	FileDiffs []FileDiff
	Staged    []string
}

// Diff computes a working-tree diff against the active state.
func Diff(r *repo.Repo) (DiffResult, error) {
	_, active, err := activeState(r)
	if err != nil {
		return DiffResult{}, err
	}
	stage, err := loadStage(r)
	if err != nil {
		return DiffResult{}, err
	}

	var result DiffResult
	for k := range stage {
		result.Staged = append(result.Staged, k)
	}

	ic := r.IgnoreChecker()

	err = filepath.WalkDir(r.RootDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, relErr := filepath.Rel(r.RootDir, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}
		if d.IsDir() {
			if rel == repo.MetaDirName {
				return filepath.SkipDir
			}
			return nil
		}

		_, tracked := active[rel]
		if !tracked && ic.IsIgnored(rel) {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return apperr.New(apperr.IOError, "diff", err)
		}

		if delta.IsBinary(data) {
			if !tracked {
				result.FileDiffs = append(result.FileDiffs, FileDiff{File: rel, Added: BinaryPlaceholder})
			}
			return nil
		}

		prev := active[rel]
		current := string(data)
		if prev == current {
			return nil
		}
		ops := delta.Compute(prev, current)
		if len(ops) == 0 {
			return nil
		}
		result.FileDiffs = append(result.FileDiffs, fileDiffFromOps(rel, prev, current))
		return nil
	})
	if err != nil {
		return DiffResult{}, err
	}
	return result, nil
}

// fileDiffFromOps renders the common-prefix/common-suffix split spec §4.2
// and §4.4 describe directly, rather than replaying the op list.
func fileDiffFromOps(file, previous, current string) FileDiff {
	start := 0
	for start < len(previous) && start < len(current) && previous[start] == current[start] {
		start++
	}
	oldEnd := len(previous) - 1
	newEnd := len(current) - 1
	for oldEnd >= start && newEnd >= start && previous[oldEnd] == current[newEnd] {
		oldEnd--
		newEnd--
	}

	fd := FileDiff{File: file}
	if oldEnd >= start {
		fd.Deleted = previous[start : oldEnd+1]
	}
	if newEnd >= start {
		fd.Added = current[start : newEnd+1]
	}
	return fd
}
