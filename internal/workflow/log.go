package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/odvcencio/art/internal/repo"
	"github.com/odvcencio/art/internal/sign"
)

// Log renders branch's commit manifest newest-first, one line per commit
// (spec §4.4 "log": "concatenates branch manifest entries in reverse
// order with their hash, timestamp (rendered locally), and message"). When
// verify is set, each signed commit's line additionally reports whether
// its signature checks out (SPEC_FULL §4.7.2, `log --verify`).
func Log(r *repo.Repo, branch string, verify bool) (string, error) {
	manifest, err := r.LoadBranchManifest(branch, false)
	if err != nil {
		return "", err
	}
	branchDir := r.LocalBranchDir(branch)

	var head repo.Head
	if verify {
		head, err = r.ReadHead()
		if err != nil {
			return "", err
		}
	}

	var b strings.Builder
	for i := len(manifest.Commits) - 1; i >= 0; i-- {
		hash := manifest.Commits[i]
		master, err := r.ReadCommitMaster(branchDir, hash)
		if err != nil {
			return "", err
		}
		ts := time.UnixMilli(master.Timestamp).Local().Format("Mon Jan 2 15:04:05 2006 -0700")
		fmt.Fprintf(&b, "commit %s\nDate:   %s\n", hash, ts)
		if verify {
			fmt.Fprintf(&b, "Signature: %s\n", verifyLine(head, hash))
		}
		fmt.Fprintf(&b, "\n    %s\n\n", master.Message)
	}
	return b.String(), nil
}

func verifyLine(head repo.Head, hash string) string {
	sigValue, ok := head.Configuration[sign.ConfigKey(hash)]
	if !ok {
		return "none"
	}
	valid, err := sign.Verify(sigValue, []byte(hash))
	if err != nil {
		return "invalid"
	}
	if valid {
		return "verified"
	}
	return "bad"
}
