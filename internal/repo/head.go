package repo

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/odvcencio/art/internal/apperr"
)

// ActiveRef names the active branch and the hash of its last commit
// (spec §3: "parent is the hash of the last commit on the active branch,
// or null if none exists").
type ActiveRef struct {
	Branch string  `json:"branch"`
	Parent *string `json:"parent"`
}

// Head is the persisted record at .art/art.json (spec §3).
//
// Configuration is an opaque key/value map; the core never reads from it
// except where a specific feature documents otherwise (commit signatures,
// §SPEC_FULL 4.7.2). No code in this module writes or reads a "handle"
// key there; the remote handle is kept in Remote (see SetRemote).
type Head struct {
	Active        ActiveRef         `json:"active"`
	Remote        string            `json:"remote"`
	Configuration map[string]string `json:"configuration"`
}

// ReadHead loads .art/art.json. Missing file is RepositoryMissing.
func (r *Repo) ReadHead() (Head, error) {
	data, err := os.ReadFile(r.headFilePath())
	if err != nil {
		if os.IsNotExist(err) {
			return Head{}, repositoryMissingErr(r.RootDir)
		}
		return Head{}, apperr.New(apperr.IOError, "read-head", err)
	}
	var h Head
	if err := json.Unmarshal(data, &h); err != nil {
		return Head{}, apperr.New(apperr.IOError, "read-head", fmt.Errorf("unmarshal: %w", err))
	}
	if h.Configuration == nil {
		h.Configuration = map[string]string{}
	}
	return h, nil
}

// WriteHead atomically writes .art/art.json.
func (r *Repo) WriteHead(h Head) error {
	if h.Configuration == nil {
		h.Configuration = map[string]string{}
	}
	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return apperr.New(apperr.IOError, "write-head", err)
	}
	if err := writeFileAtomic(r.headFilePath(), data); err != nil {
		return apperr.New(apperr.IOError, "write-head", err)
	}
	return nil
}

func repositoryMissingErr(path string) error {
	return apperr.Newf(apperr.RepositoryMissing, "open", "no art repository found at or above %s", path)
}
