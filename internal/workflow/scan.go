package workflow

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/odvcencio/art/internal/apperr"
	"github.com/odvcencio/art/internal/change"
	"github.com/odvcencio/art/internal/delta"
	"github.com/odvcencio/art/internal/repo"
)

// ComputeWorkingTreeChanges walks the entire working tree, excluding the
// metadata directory and ignored paths (with the tracked-file exception),
// and computes the same per-file delta add() would (spec §4.4 "add" and
// §4.6 "stash": "computes the working-tree delta against the active state
// in exactly the form of an add").
func ComputeWorkingTreeChanges(r *repo.Repo, active map[string]string) (map[string]change.Change, error) {
	ic := r.IgnoreChecker()
	out := map[string]change.Change{}

	err := filepath.WalkDir(r.RootDir, func(path string, d fs.DirEntry, walkErr error) error {
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
			if ic.IsIgnored(rel) {
				prefix := rel + "/"
				tracked := false
				for p := range active {
					if len(p) > len(prefix) && p[:len(prefix)] == prefix {
						tracked = true
						break
					}
				}
				if !tracked {
					return filepath.SkipDir
				}
			}
			return nil
		}

		_, tracked := active[rel]
		if !tracked && ic.IsIgnored(rel) {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return apperr.New(apperr.IOError, "scan", err)
		}
		binary := delta.IsBinary(data)

		prev, existed := active[rel]
		switch {
		case !existed:
			out[rel] = change.NewCreate(string(data), binary)
		case binary:
		default:
			ops := delta.Compute(prev, string(data))
			if len(ops) > 0 {
				out[rel] = change.NewOps(ops)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
