package workflow

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/odvcencio/art/internal/apperr"
	"github.com/odvcencio/art/internal/repo"
	"github.com/odvcencio/art/internal/sign"
)

// CommitOptions carries the additive --sign/--sign-key flags (SPEC_FULL
// §4.7.2). The zero value commits unsigned, matching spec.md exactly.
type CommitOptions struct {
	Sign    bool
	SignKey string
}

// Commit finalizes the stage into a new commit on the active branch
// (spec §4.4 "commit"), unsigned.
func Commit(r *repo.Repo, message string) (string, error) {
	return CommitWithOptions(r, message, CommitOptions{})
}

// CommitWithOptions finalizes the stage into a new commit on the active
// branch (spec §4.4 "commit"): computes the commit hash, persists the
// change set as paginated, hash-prefixed parts, writes the commit master,
// appends the hash to the branch manifest, advances head.active.parent,
// and destroys the stage. When opts.Sign is set, the commit hash is
// additionally signed and the signature recorded under
// head.configuration (SPEC_FULL §4.7.2).
func CommitWithOptions(r *repo.Repo, message string, opts CommitOptions) (string, error) {
	if message == "" {
		return "", apperr.Newf(apperr.InvalidArgument, "commit", "commit message must not be empty")
	}

	lk, err := r.Lock()
	if err != nil {
		return "", err
	}
	defer lk.Release()

	stage, err := loadStage(r)
	if err != nil {
		return "", err
	}
	if len(stage) == 0 {
		return "", apperr.Newf(apperr.InvalidArgument, "commit", "nothing to commit, stage is empty")
	}

	head, err := r.ReadHead()
	if err != nil {
		return "", err
	}

	order := make([]string, 0, len(stage))
	for k := range stage {
		order = append(order, k)
	}
	sort.Strings(order)

	timestamp := time.Now().UnixMilli()
	hash, err := repo.CommitHash(stage, order, timestamp, message)
	if err != nil {
		return "", apperr.New(apperr.IOError, "commit", err)
	}

	branch := head.Active.Branch
	branchDir := r.LocalBranchDir(branch)
	if _, err := r.WriteCommit(branchDir, hash, stage, order, timestamp, message, head.Active.Parent); err != nil {
		return "", err
	}

	manifest, err := r.LoadBranchManifest(branch, false)
	if err != nil {
		return "", err
	}
	manifest.Commits = append(manifest.Commits, hash)
	if err := r.SaveBranchManifest(branch, false, manifest); err != nil {
		return "", err
	}

	if opts.Sign {
		signer, err := sign.NewSigner(opts.SignKey)
		if err != nil {
			return "", apperr.New(apperr.IOError, "commit", err)
		}
		sigValue, err := signer.Sign([]byte(hash))
		if err != nil {
			return "", apperr.New(apperr.IOError, "commit", err)
		}
		if head.Configuration == nil {
			head.Configuration = map[string]string{}
		}
		head.Configuration[sign.ConfigKey(hash)] = sigValue
	}

	hashCopy := hash
	head.Active.Parent = &hashCopy
	if err := r.WriteHead(head); err != nil {
		return "", err
	}

	if err := os.RemoveAll(r.StageDir()); err != nil {
		return "", apperr.New(apperr.IOError, "commit", err)
	}

	short := hash
	if len(short) > 7 {
		short = short[:7]
	}
	return fmt.Sprintf("[%s %s] %s", branch, short, message), nil
}
