package workflow

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/odvcencio/art/internal/apperr"
	"github.com/odvcencio/art/internal/repo"
)

// Status reports the working tree against the stage and active state
// (spec §4.4 "status").
type Status struct {
	ActiveBranch string
	LastCommit   string
	Staged       []string
	Modified     []string
	Untracked    []string
	Ignored      []string
}

// Compute walks the working tree, excluding the metadata directory, and
// classifies each file: staged if present in the stage index; else
// tracked-and-differing -> modified; else untracked or ignored per the
// ignore predicate. Already-tracked files never appear in Ignored even if
// a rule would otherwise match them.
func Compute(r *repo.Repo) (Status, error) {
	head, active, err := activeState(r)
	if err != nil {
		return Status{}, err
	}
	stage, err := loadStage(r)
	if err != nil {
		return Status{}, err
	}

	st := Status{ActiveBranch: head.Active.Branch}
	if head.Active.Parent != nil {
		st.LastCommit = *head.Active.Parent
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

		if _, ok := stage[rel]; ok {
			st.Staged = append(st.Staged, rel)
			return nil
		}

		if prev, tracked := active[rel]; tracked {
			data, err := os.ReadFile(path)
			if err != nil {
				return apperr.New(apperr.IOError, "status", err)
			}
			if string(data) != prev {
				st.Modified = append(st.Modified, rel)
			}
			return nil
		}

		if ic.IsIgnored(rel) {
			st.Ignored = append(st.Ignored, rel)
		} else {
			st.Untracked = append(st.Untracked, rel)
		}
		return nil
	})
	if err != nil {
		return Status{}, err
	}
	return st, nil
}
