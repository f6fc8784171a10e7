package repo

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/odvcencio/art/internal/apperr"
	"github.com/odvcencio/art/internal/change"
	"github.com/odvcencio/art/internal/store"
)

// CommitMaster is the commit object (spec §3): its change set lives in the
// paginated Parts files alongside it, not inline.
type CommitMaster struct {
	Hash      string   `json:"hash"`
	Message   string   `json:"message"`
	Timestamp int64    `json:"timestamp"` // ms since epoch
	Parent    *string  `json:"parent"`
	Parts     []string `json:"parts"`
}

// CommitHash computes the SHA-1 commit identity: spec §3 is explicit that
// this is SHA-1 of JSON(changes) + the decimal timestamp + the message —
// deliberately not content-addressed, so the same change set committed
// twice at different times (or with different messages) yields different
// hashes. JSON(changes) here is one compact JSON object with keys in the
// given order; it is not byte-identical to the indented part files that
// store.SaveParts writes.
func CommitHash(changes map[string]change.Change, order []string, timestamp int64, message string) (string, error) {
	encoded, err := marshalChangesOrdered(changes, order)
	if err != nil {
		return "", fmt.Errorf("commit hash: %w", err)
	}
	h := sha1.New()
	h.Write(encoded)
	h.Write([]byte(strconv.FormatInt(timestamp, 10)))
	h.Write([]byte(message))
	return hex.EncodeToString(h.Sum(nil)), nil
}

// marshalChangesOrdered encodes changes as a single JSON object, in the
// given key order (or sorted order if nil), mirroring the shape of one
// merged {"changes": {...}} payload without actually writing it to disk.
func marshalChangesOrdered(changes map[string]change.Change, order []string) ([]byte, error) {
	keys := order
	if keys == nil {
		keys = make([]string, 0, len(changes))
		for k := range changes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	}

	buf := []byte("{")
	for i, k := range keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		keyJSON, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		valJSON, err := json.Marshal(changes[k])
		if err != nil {
			return nil, err
		}
		buf = append(buf, keyJSON...)
		buf = append(buf, ':')
		buf = append(buf, valJSON...)
	}
	buf = append(buf, '}')
	return buf, nil
}

// WriteCommit persists a commit's change set as paginated parts prefixed
// with its hash, writes the commit master, and returns it. branchDir is
// typically r.LocalBranchDir(branch).
func (r *Repo) WriteCommit(branchDir, hash string, changes map[string]change.Change, order []string, timestamp int64, message string, parent *string) (CommitMaster, error) {
	parts, err := store.SaveParts(branchDir, changes, order, store.HashPartNamer(hash))
	if err != nil {
		return CommitMaster{}, apperr.New(apperr.IOError, "commit", err)
	}

	master := CommitMaster{
		Hash:      hash,
		Message:   message,
		Timestamp: timestamp,
		Parent:    parent,
		Parts:     parts,
	}
	data, err := json.MarshalIndent(master, "", "  ")
	if err != nil {
		return CommitMaster{}, apperr.New(apperr.IOError, "commit", err)
	}
	if err := writeFileAtomic(filepath.Join(branchDir, hash+".json"), data); err != nil {
		return CommitMaster{}, apperr.New(apperr.IOError, "commit", err)
	}
	return master, nil
}

// ReadCommitMaster reads a commit master from branchDir.
func (r *Repo) ReadCommitMaster(branchDir, hash string) (CommitMaster, error) {
	data, err := os.ReadFile(filepath.Join(branchDir, hash+".json"))
	if err != nil {
		return CommitMaster{}, err
	}
	var m CommitMaster
	if err := json.Unmarshal(data, &m); err != nil {
		return CommitMaster{}, fmt.Errorf("commit master %s: %w", hash, err)
	}
	return m, nil
}

// LoadCommitChanges loads and merges the full change set a commit master
// names, used by the state reconstructor (internal/state).
func (r *Repo) LoadCommitChanges(branchDir, hash string) (map[string]change.Change, error) {
	master, err := r.ReadCommitMaster(branchDir, hash)
	if err != nil {
		return nil, apperr.Newf(apperr.NotFound, "replay", "commit %s not found in %s: %v", hash, branchDir, err)
	}
	changes, err := store.LoadParts(branchDir, master.Parts)
	if err != nil {
		return nil, apperr.New(apperr.IOError, "replay", err)
	}
	return changes, nil
}
