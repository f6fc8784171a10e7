package workflow

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/odvcencio/art/internal/apperr"
	"github.com/odvcencio/art/internal/change"
	"github.com/odvcencio/art/internal/delta"
	"github.com/odvcencio/art/internal/repo"
	"github.com/odvcencio/art/internal/store"
)

// Add stages target (a file or directory, relative to the repository
// root) against the active state (spec §4.4 "add").
//
// If target is a directory, it is walked recursively, excluding the
// metadata directory and any path the ignore predicate rejects — except a
// path already present in the active state, which is staged regardless of
// the ignore predicate (a file that is tracked cannot become untracked by
// acquiring a matching ignore rule).
func Add(r *repo.Repo, target string) (string, error) {
	lk, err := r.Lock()
	if err != nil {
		return "", err
	}
	defer lk.Release()

	absTarget := filepath.Join(r.RootDir, target)
	info, err := os.Stat(absTarget)
	if err != nil {
		return "", apperr.Newf(apperr.NotFound, "add", "path %q not found", target)
	}

	_, active, err := activeState(r)
	if err != nil {
		return "", err
	}
	stage, err := loadStage(r)
	if err != nil {
		return "", err
	}

	ic := r.IgnoreChecker()
	count := 0

	stageOne := func(absPath string) error {
		rel, err := filepath.Rel(r.RootDir, absPath)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		_, tracked := active[rel]
		if ic.IsIgnored(rel) && !tracked {
			return nil
		}

		data, err := os.ReadFile(absPath)
		if err != nil {
			return apperr.New(apperr.IOError, "add", err)
		}
		binary := delta.IsBinary(data)

		prev, existed := active[rel]
		switch {
		case !existed:
			stage[rel] = change.NewCreate(string(data), binary)
			count++
		case binary:
			// binary modifications of already-tracked files are dropped
			// (spec §4.2, §9 open question (a)).
		default:
			ops := delta.Compute(prev, string(data))
			if len(ops) > 0 {
				stage[rel] = change.NewOps(ops)
				count++
			}
		}
		return nil
	}

	if info.IsDir() {
		err = filepath.WalkDir(absTarget, func(path string, d fs.DirEntry, walkErr error) error {
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
				if rel != repo.MetaDirName && ic.IsIgnored(rel) {
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
				if rel == repo.MetaDirName {
					return filepath.SkipDir
				}
				return nil
			}
			return stageOne(path)
		})
	} else {
		err = stageOne(absTarget)
	}
	if err != nil {
		return "", err
	}

	if err := store.Save(r.StageDir(), stage, nil, nil); err != nil {
		return "", apperr.New(apperr.IOError, "add", err)
	}

	return fmt.Sprintf("Added %d file(s) to stage.", count), nil
}
