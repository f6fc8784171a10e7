package branchop

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/odvcencio/art/internal/apperr"
	"github.com/odvcencio/art/internal/change"
	"github.com/odvcencio/art/internal/repo"
	"github.com/odvcencio/art/internal/store"
)

// Merge performs a three-way merge of targetBranch into the active branch
// (spec §4.5 "merge"). It materializes the result in the working tree and
// stages it, but never auto-commits.
func Merge(r *repo.Repo, targetBranch string) (string, error) {
	lk, err := r.Lock()
	if err != nil {
		return "", err
	}
	defer lk.Release()

	head, err := r.ReadHead()
	if err != nil {
		return "", err
	}
	activeBranch := head.Active.Branch

	activeManifest, err := r.LoadBranchManifest(activeBranch, false)
	if err != nil {
		return "", err
	}
	targetManifest, err := r.LoadBranchManifest(targetBranch, false)
	if err != nil {
		return "", err
	}

	ancestor := commonAncestor(activeManifest.Commits, targetManifest.Commits)

	ourHead := ""
	if head.Active.Parent != nil {
		ourHead = *head.Active.Parent
	}
	theirHead := ""
	if n := len(targetManifest.Commits); n > 0 {
		theirHead = targetManifest.Commits[n-1]
	}

	base, err := r.GetStateByHash(activeBranch, ancestor)
	if err != nil {
		return "", err
	}
	ours, err := r.GetStateByHash(activeBranch, ourHead)
	if err != nil {
		return "", err
	}
	theirs, err := r.GetStateByHash(targetBranch, theirHead)
	if err != nil {
		return "", err
	}

	stage, err := loadStage(r)
	if err != nil {
		return "", err
	}

	conflicts := 0
	paths := map[string]bool{}
	for p := range ours {
		paths[p] = true
	}
	for p := range theirs {
		paths[p] = true
	}

	for path := range paths {
		oV, oOK := ours[path]
		tV, tOK := theirs[path]
		if stateEqual(oV, oOK, tV, tOK) {
			continue
		}

		bV, bOK := base[path]
		baseEqOurs := stateEqual(bV, bOK, oV, oOK)
		baseEqTheirs := stateEqual(bV, bOK, tV, tOK)

		full := filepath.Join(r.RootDir, path)

		switch {
		case baseEqOurs && !baseEqTheirs:
			if !tOK {
				if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
					return "", apperr.New(apperr.IOError, "merge", err)
				}
				stage[path] = change.NewDelete()
			} else {
				if err := writeFile(full, tV); err != nil {
					return "", apperr.New(apperr.IOError, "merge", err)
				}
				stage[path] = change.NewCreate(tV, false)
			}
		case !baseEqOurs && !baseEqTheirs:
			marker := conflictMarker(oV, tV, targetBranch)
			if err := writeFile(full, marker); err != nil {
				return "", apperr.New(apperr.IOError, "merge", err)
			}
			stage[path] = change.NewCreate(marker, false)
			conflicts++
		default:
			// base == theirs, base != ours: already reflected, no action.
		}
	}

	if err := store.Save(r.StageDir(), stage, nil, nil); err != nil {
		return "", apperr.New(apperr.IOError, "merge", err)
	}

	if conflicts > 0 {
		return fmt.Sprintf("Merge of %q into %q produced %d conflict(s).", targetBranch, activeBranch, conflicts), nil
	}
	return fmt.Sprintf("Merged %q into %q.", targetBranch, activeBranch), nil
}

// commonAncestor returns the most recent commit hash present in both
// ours and theirs, searching ours from newest to oldest (spec §4.5 step 1).
// Returns "" if none is shared — the ancestor is then the root snapshot.
func commonAncestor(ours, theirs []string) string {
	theirSet := make(map[string]bool, len(theirs))
	for _, h := range theirs {
		theirSet[h] = true
	}
	for i := len(ours) - 1; i >= 0; i-- {
		if theirSet[ours[i]] {
			return ours[i]
		}
	}
	return ""
}

func stateEqual(a string, aOK bool, b string, bOK bool) bool {
	if aOK != bOK {
		return false
	}
	if !aOK {
		return true
	}
	return a == b
}

// conflictMarker renders the marker block spec §4.5 defines exactly.
func conflictMarker(ours, theirs, targetBranch string) string {
	return fmt.Sprintf("<<<<<<< active\n%s\n=======\n%s\n>>>>>>> %s\n", ours, theirs, targetBranch)
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

func loadStage(r *repo.Repo) (map[string]change.Change, error) {
	m, err := store.Load(r.StageDir())
	if err != nil {
		return nil, apperr.New(apperr.IOError, "stage", err)
	}
	return m, nil
}
