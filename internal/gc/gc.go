// Package gc implements the archive/compaction maintenance operation
// (SPEC_FULL §4.7.3): commit masters and parts that fall off a branch
// manifest after a reset are dangling garbage, kept on disk as a
// documented recovery path (spec §4.6 "reset"). gc compresses each
// dangling commit into a single zstd blob rather than deleting it,
// preserving that recovery path while reclaiming the loose-file clutter.
//
// Grounded on the teacher's pkg/remote/compress.go zstd helpers,
// retargeted from network transport to on-disk archival.
package gc

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/odvcencio/art/internal/apperr"
	"github.com/odvcencio/art/internal/repo"
)

var hashFileRe = regexp.MustCompile(`^[0-9a-f]{40}\.json$`)

// bundle is the payload compressed into one <hash>.zst archive.
type bundle struct {
	Hash   string            `json:"hash"`
	Master []byte            `json:"master"`
	Parts  map[string][]byte `json:"parts"`
}

// Run walks every local branch directory, finds commit masters no longer
// referenced by that branch's manifest, and archives each one. It returns
// the hashes archived.
func Run(r *repo.Repo) ([]string, error) {
	branches, err := r.ListBranches()
	if err != nil {
		return nil, err
	}

	archiveDir := filepath.Join(r.CacheDir(), "archive")
	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return nil, apperr.New(apperr.IOError, "gc", err)
	}

	var archived []string
	for _, branch := range branches {
		dir := r.LocalBranchDir(branch)
		manifest, err := r.LoadBranchManifest(branch, false)
		if err != nil {
			return nil, err
		}
		reachable := make(map[string]bool, len(manifest.Commits))
		for _, h := range manifest.Commits {
			reachable[h] = true
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, apperr.New(apperr.IOError, "gc", err)
		}

		for _, e := range entries {
			if e.IsDir() || !hashFileRe.MatchString(e.Name()) {
				continue
			}
			hash := strings.TrimSuffix(e.Name(), ".json")
			if reachable[hash] {
				continue
			}

			if err := archiveCommit(r, archiveDir, dir, hash); err != nil {
				return nil, err
			}
			archived = append(archived, hash)
		}
	}
	return archived, nil
}

func archiveCommit(r *repo.Repo, archiveDir, branchDir, hash string) error {
	master, err := r.ReadCommitMaster(branchDir, hash)
	if err != nil {
		return apperr.New(apperr.IOError, "gc", err)
	}
	masterRaw, err := os.ReadFile(filepath.Join(branchDir, hash+".json"))
	if err != nil {
		return apperr.New(apperr.IOError, "gc", err)
	}

	b := bundle{Hash: hash, Master: masterRaw, Parts: map[string][]byte{}}
	for _, p := range master.Parts {
		raw, err := os.ReadFile(filepath.Join(branchDir, p))
		if err != nil {
			return apperr.New(apperr.IOError, "gc", err)
		}
		b.Parts[p] = raw
	}

	encoded, err := json.Marshal(b)
	if err != nil {
		return apperr.New(apperr.IOError, "gc", err)
	}
	compressed, err := compressZstd(encoded)
	if err != nil {
		return apperr.New(apperr.IOError, "gc", err)
	}

	archivePath := filepath.Join(archiveDir, hash+".zst")
	if err := os.WriteFile(archivePath, compressed, 0o644); err != nil {
		return apperr.New(apperr.IOError, "gc", err)
	}

	if err := os.Remove(filepath.Join(branchDir, hash+".json")); err != nil {
		return apperr.New(apperr.IOError, "gc", err)
	}
	for p := range b.Parts {
		if err := os.Remove(filepath.Join(branchDir, p)); err != nil && !os.IsNotExist(err) {
			return apperr.New(apperr.IOError, "gc", err)
		}
	}
	return nil
}

// Restore decompresses the archive for hash back into the given branch
// directory's loose master + parts files.
func Restore(r *repo.Repo, branch, hash string) error {
	archivePath := filepath.Join(r.CacheDir(), "archive", hash+".zst")
	compressed, err := os.ReadFile(archivePath)
	if err != nil {
		return apperr.Newf(apperr.NotFound, "gc", "no archive for commit %s: %v", hash, err)
	}
	raw, err := decompressZstd(compressed)
	if err != nil {
		return apperr.New(apperr.IOError, "gc", err)
	}

	var b bundle
	if err := json.Unmarshal(raw, &b); err != nil {
		return apperr.New(apperr.IOError, "gc", err)
	}

	branchDir := r.LocalBranchDir(branch)
	if err := os.MkdirAll(branchDir, 0o755); err != nil {
		return apperr.New(apperr.IOError, "gc", err)
	}
	if err := os.WriteFile(filepath.Join(branchDir, hash+".json"), b.Master, 0o644); err != nil {
		return apperr.New(apperr.IOError, "gc", err)
	}
	for name, data := range b.Parts {
		if err := os.WriteFile(filepath.Join(branchDir, name), data, 0o644); err != nil {
			return apperr.New(apperr.IOError, "gc", err)
		}
	}
	if err := os.Remove(archivePath); err != nil {
		return apperr.New(apperr.IOError, "gc", err)
	}
	return nil
}

func compressZstd(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}

func decompressZstd(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("gc: decompress: %w", err)
	}
	return out, nil
}
