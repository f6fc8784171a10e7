// Package workflow implements the staging/commit/status/diff/log state
// machine (spec §4.4): add stages a working-tree delta, commit finalizes
// the stage into the branch's history, status and diff report against the
// active state, and log renders a branch's commit chain.
package workflow

import (
	"github.com/odvcencio/art/internal/apperr"
	"github.com/odvcencio/art/internal/change"
	"github.com/odvcencio/art/internal/repo"
	"github.com/odvcencio/art/internal/store"
)

// activeState reconstructs the file map at head.active.parent on
// head.active.branch — the GLOSSARY's "Active state".
func activeState(r *repo.Repo) (repo.Head, map[string]string, error) {
	head, err := r.ReadHead()
	if err != nil {
		return repo.Head{}, nil, err
	}
	target := ""
	if head.Active.Parent != nil {
		target = *head.Active.Parent
	}
	state, err := r.GetStateByHash(head.Active.Branch, target)
	if err != nil {
		return repo.Head{}, nil, err
	}
	return head, state, nil
}

func loadStage(r *repo.Repo) (map[string]change.Change, error) {
	m, err := store.Load(r.StageDir())
	if err != nil {
		return nil, apperr.New(apperr.IOError, "stage", err)
	}
	return m, nil
}
