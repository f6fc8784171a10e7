package repo

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/odvcencio/art/internal/apperr"
)

// BranchManifest is the ordered, oldest-to-newest list of commit hashes on
// a branch (spec §3). Two copies exist per branch: local (authoritative)
// and remote (last-known mirror, spec §6).
type BranchManifest struct {
	Commits []string `json:"commits"`
}

func (r *Repo) branchManifestPath(branch string, remote bool) string {
	if remote {
		return filepath.Join(r.remoteBranchDir(branch), "manifest.json")
	}
	return filepath.Join(r.localBranchDir(branch), "manifest.json")
}

// LoadBranchManifest reads a branch's commit list. A missing manifest
// yields an empty one, matching the paginated store's contract elsewhere.
func (r *Repo) LoadBranchManifest(branch string, remote bool) (BranchManifest, error) {
	data, err := os.ReadFile(r.branchManifestPath(branch, remote))
	if err != nil {
		if os.IsNotExist(err) {
			return BranchManifest{Commits: []string{}}, nil
		}
		return BranchManifest{}, apperr.New(apperr.IOError, "load-branch-manifest", err)
	}
	var m BranchManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return BranchManifest{}, apperr.New(apperr.IOError, "load-branch-manifest", err)
	}
	if m.Commits == nil {
		m.Commits = []string{}
	}
	return m, nil
}

func (r *Repo) saveBranchManifest(branch string, remote bool, m BranchManifest) error {
	if m.Commits == nil {
		m.Commits = []string{}
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(r.branchManifestPath(branch, remote), data)
}

// SaveBranchManifest is the exported form used by commit/branch/merge/reset.
func (r *Repo) SaveBranchManifest(branch string, remote bool, m BranchManifest) error {
	return r.saveBranchManifest(branch, remote, m)
}

// LocalBranchDir and RemoteBranchDir expose the branch directories for
// internal/branchop and internal/cache to read/write commit masters and
// parts directly.
func (r *Repo) LocalBranchDir(branch string) string  { return r.localBranchDir(branch) }
func (r *Repo) RemoteBranchDir(branch string) string { return r.remoteBranchDir(branch) }
func (r *Repo) StageDir() string                     { return r.stageDir() }
func (r *Repo) CacheDir() string                      { return r.cacheDir() }

// denylist of OS metadata filenames that must never be listed as branches,
// since a branch is just a directory name under history/local/.
var branchDenylist = map[string]bool{
	".DS_Store": true,
	"Thumbs.db": true,
	".git":      true,
}

// ListBranches returns local branch directory names, filtered against the
// OS-metadata denylist (spec §4.5 "branch": listing).
func (r *Repo) ListBranches() ([]string, error) {
	localDir := filepath.Join(r.historyDir(), "local")
	entries, err := os.ReadDir(localDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, apperr.New(apperr.IOError, "list-branches", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() || branchDenylist[e.Name()] {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// BranchExists reports whether branch has a local history directory.
func (r *Repo) BranchExists(branch string) bool {
	_, err := os.Stat(r.localBranchDir(branch))
	return err == nil
}

var invalidBranchNameRe = regexp.MustCompile(`[\x00-\x1f\x7f-\x9f]`)
var allDotsRe = regexp.MustCompile(`^\.+$`)

// ValidateBranchName applies spec §4.5's name-validation rule: reject
// names containing / or \, C0/C1 control characters, or names matching
// ^\.+$.
func ValidateBranchName(name string) error {
	if strings.ContainsAny(name, `/\`) {
		return apperr.Newf(apperr.InvalidArgument, "branch", "branch name %q must not contain '/' or '\\'", name)
	}
	if invalidBranchNameRe.MatchString(name) {
		return apperr.Newf(apperr.InvalidArgument, "branch", "branch name %q contains control characters", name)
	}
	if allDotsRe.MatchString(name) {
		return apperr.Newf(apperr.InvalidArgument, "branch", "branch name %q is not allowed", name)
	}
	if name == "" {
		return apperr.Newf(apperr.InvalidArgument, "branch", "branch name must not be empty")
	}
	return nil
}

// DeleteBranch removes both the local and remote history directories for
// branch. Fails if branch is the active branch or does not exist
// (spec §4.5 "branch": delete).
func (r *Repo) DeleteBranch(branch string) error {
	head, err := r.ReadHead()
	if err != nil {
		return err
	}
	if head.Active.Branch == branch {
		return apperr.Newf(apperr.Conflict, "branch", "cannot delete the active branch %q", branch)
	}
	if !r.BranchExists(branch) {
		return apperr.Newf(apperr.NotFound, "branch", "branch %q does not exist", branch)
	}
	if err := os.RemoveAll(r.localBranchDir(branch)); err != nil {
		return apperr.New(apperr.IOError, "branch", err)
	}
	if err := os.RemoveAll(r.remoteBranchDir(branch)); err != nil {
		return apperr.New(apperr.IOError, "branch", err)
	}
	return nil
}

// CreateBranch seeds a new branch's local manifest with a copy of
// source's commit list, copying each referenced commit master and its
// parts into the new branch directory (falling back to the remote mirror
// when the local master is missing). The new branch's remote mirror gets
// the same commit list but no part files (spec §4.5 "branch": create).
func (r *Repo) CreateBranch(name, source string) error {
	if err := ValidateBranchName(name); err != nil {
		return err
	}
	if r.BranchExists(name) {
		return apperr.Newf(apperr.Conflict, "branch", "branch %q already exists", name)
	}

	srcManifest, err := r.LoadBranchManifest(source, false)
	if err != nil {
		return err
	}

	dstLocal := r.localBranchDir(name)
	if err := os.MkdirAll(dstLocal, 0o755); err != nil {
		return apperr.New(apperr.IOError, "branch", err)
	}
	dstRemote := r.remoteBranchDir(name)
	if err := os.MkdirAll(dstRemote, 0o755); err != nil {
		return apperr.New(apperr.IOError, "branch", err)
	}

	for _, hash := range srcManifest.Commits {
		if err := r.copyCommit(source, name, hash); err != nil {
			return err
		}
	}

	if err := r.saveBranchManifest(name, false, BranchManifest{Commits: append([]string{}, srcManifest.Commits...)}); err != nil {
		return err
	}
	if err := r.saveBranchManifest(name, true, BranchManifest{Commits: append([]string{}, srcManifest.Commits...)}); err != nil {
		return err
	}
	return nil
}

// copyCommit copies a commit master and its parts from srcBranch to
// dstBranch, preferring the local master and falling back to the remote
// mirror when the local one is missing.
func (r *Repo) copyCommit(srcBranch, dstBranch, hash string) error {
	srcDir := r.localBranchDir(srcBranch)
	master, err := r.ReadCommitMaster(srcDir, hash)
	if err != nil {
		srcDir = r.remoteBranchDir(srcBranch)
		master, err = r.ReadCommitMaster(srcDir, hash)
		if err != nil {
			return apperr.Newf(apperr.NotFound, "branch", "commit %s not found locally or in remote mirror of %q", hash, srcBranch)
		}
	}

	dstDir := r.localBranchDir(dstBranch)
	if err := copyFile(filepath.Join(srcDir, hash+".json"), filepath.Join(dstDir, hash+".json")); err != nil {
		return apperr.New(apperr.IOError, "branch", err)
	}
	for _, p := range master.Parts {
		if err := copyFile(filepath.Join(srcDir, p), filepath.Join(dstDir, p)); err != nil {
			return apperr.New(apperr.IOError, "branch", err)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}
	return writeFileAtomic(dst, data)
}
