// Package cache implements the stash stack, reset, and rm operations
// (spec §4.6), all of which operate on the staging index or the
// cache/ directory of paginated change sets.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/odvcencio/art/internal/apperr"
	"github.com/odvcencio/art/internal/branchop"
	"github.com/odvcencio/art/internal/change"
	"github.com/odvcencio/art/internal/delta"
	"github.com/odvcencio/art/internal/repo"
	"github.com/odvcencio/art/internal/store"
	"github.com/odvcencio/art/internal/workflow"
)

const stashPrefix = "stash_"

func stashDirName(ts int64) string {
	return stashPrefix + strconv.FormatInt(ts, 10)
}

// Stash computes the working-tree delta against the active state (in
// exactly the form of an add), persists it under a new cache/stash_<ms>/
// directory, destroys the stage, and reverts the working tree via a
// forced checkout of the active branch (spec §4.6 "stash").
func Stash(r *repo.Repo) (string, error) {
	lk, err := r.Lock()
	if err != nil {
		return "", err
	}
	defer lk.Release()

	head, err := r.ReadHead()
	if err != nil {
		return "", err
	}
	target := ""
	if head.Active.Parent != nil {
		target = *head.Active.Parent
	}
	active, err := r.GetStateByHash(head.Active.Branch, target)
	if err != nil {
		return "", err
	}

	changes, err := workflow.ComputeWorkingTreeChanges(r, active)
	if err != nil {
		return "", err
	}
	if len(changes) == 0 {
		return "No local changes to stash.", nil
	}

	ts := time.Now().UnixMilli()
	dir := filepath.Join(r.CacheDir(), stashDirName(ts))
	if err := store.Save(dir, changes, nil, nil); err != nil {
		return "", apperr.New(apperr.IOError, "stash", err)
	}

	if err := os.RemoveAll(r.StageDir()); err != nil {
		return "", apperr.New(apperr.IOError, "stash", err)
	}

	if _, err := branchop.CheckoutLocked(r, head.Active.Branch, true); err != nil {
		return "", err
	}

	return "Saved working tree state.", nil
}

// StashEntry describes one stack entry, newest first.
type StashEntry struct {
	ID      string
	Date    string
	DirName string
}

// StashList returns the stash stack, newest (index 0) to oldest
// (spec §4.6 "stash({list: true})").
func StashList(r *repo.Repo) ([]StashEntry, error) {
	entries, err := os.ReadDir(r.CacheDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, apperr.New(apperr.IOError, "stash", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), stashPrefix) {
			names = append(names, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	out := make([]StashEntry, 0, len(names))
	for k, name := range names {
		msStr := strings.TrimPrefix(name, stashPrefix)
		ms, _ := strconv.ParseInt(msStr, 10, 64)
		out = append(out, StashEntry{
			ID:      fmt.Sprintf("stash@{%d}", k),
			Date:    time.UnixMilli(ms).Local().Format("Mon Jan 2 15:04:05 2006 -0700"),
			DirName: name,
		})
	}
	return out, nil
}

// StashPop applies the newest stash's changes to the working tree using
// replay semantics (ops against current content, CreateFile writes,
// DeleteFile unlinks), then removes that stash directory
// (spec §4.6 "stash({pop: true})").
func StashPop(r *repo.Repo) (string, error) {
	lk, err := r.Lock()
	if err != nil {
		return "", err
	}
	defer lk.Release()

	list, err := StashList(r)
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		return "", apperr.Newf(apperr.NotFound, "stash", "no stash entries")
	}
	newest := list[0]
	dir := filepath.Join(r.CacheDir(), newest.DirName)

	changes, err := store.Load(dir)
	if err != nil {
		return "", apperr.New(apperr.IOError, "stash", err)
	}

	for path, c := range changes {
		full := filepath.Join(r.RootDir, path)
		switch c.Variant() {
		case change.KindCreate:
			if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
				return "", apperr.New(apperr.IOError, "stash", err)
			}
			if err := os.WriteFile(full, []byte(c.Create.Content), 0o644); err != nil {
				return "", apperr.New(apperr.IOError, "stash", err)
			}
		case change.KindDelete:
			if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
				return "", apperr.New(apperr.IOError, "stash", err)
			}
		case change.KindOps:
			data, err := os.ReadFile(full)
			current := ""
			if err == nil {
				current = string(data)
			} else if !os.IsNotExist(err) {
				return "", apperr.New(apperr.IOError, "stash", err)
			}
			updated := delta.Apply(current, c.Ops)
			if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
				return "", apperr.New(apperr.IOError, "stash", err)
			}
			if err := os.WriteFile(full, []byte(updated), 0o644); err != nil {
				return "", apperr.New(apperr.IOError, "stash", err)
			}
		}
	}

	if err := os.RemoveAll(dir); err != nil {
		return "", apperr.New(apperr.IOError, "stash", err)
	}
	return fmt.Sprintf("Dropped %s.", newest.ID), nil
}
