package cache

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/odvcencio/art/internal/apperr"
	"github.com/odvcencio/art/internal/change"
	"github.com/odvcencio/art/internal/repo"
	"github.com/odvcencio/art/internal/store"
)

// Rm stages path for deletion and unlinks it from the working tree if
// present (spec §4.6 "rm").
func Rm(r *repo.Repo, path string) (string, error) {
	lk, err := r.Lock()
	if err != nil {
		return "", err
	}
	defer lk.Release()

	stage, err := store.Load(r.StageDir())
	if err != nil {
		return "", apperr.New(apperr.IOError, "rm", err)
	}
	stage[filepath.ToSlash(path)] = change.NewDelete()
	if err := store.Save(r.StageDir(), stage, nil, nil); err != nil {
		return "", apperr.New(apperr.IOError, "rm", err)
	}

	full := filepath.Join(r.RootDir, path)
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return "", apperr.New(apperr.IOError, "rm", err)
	}

	return fmt.Sprintf("Removed %s.", path), nil
}
