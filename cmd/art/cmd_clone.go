package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/odvcencio/art/internal/apperr"
	"github.com/odvcencio/art/internal/branchop"
	"github.com/odvcencio/art/internal/repo"
)

func newCloneCmd() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "clone <handle/repo>",
		Short: "Clone a repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handle := args[0]
			_ = token

			info, err := os.Stat(handle)
			if err != nil || !info.IsDir() {
				return apperr.Newf(apperr.RemoteUnconfigured, "clone", "non-local clone sources are out of scope; only a local directory handle is supported")
			}
			if _, err := os.Stat(filepath.Join(handle, repo.MetaDirName, "art.json")); err != nil {
				return apperr.Newf(apperr.RepositoryMissing, "clone", "%q is not an art repository", handle)
			}

			dest := filepath.Base(filepath.Clean(handle))
			if _, err := os.Stat(dest); err == nil {
				return apperr.Newf(apperr.Conflict, "clone", "destination %q already exists", dest)
			}

			if err := copyTree(filepath.Join(handle, repo.MetaDirName), filepath.Join(dest, repo.MetaDirName)); err != nil {
				return apperr.New(apperr.IOError, "clone", err)
			}

			r, err := repo.Open(dest)
			if err != nil {
				return err
			}
			head, err := r.ReadHead()
			if err != nil {
				return err
			}
			if _, err := branchop.Checkout(r, head.Active.Branch, true); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cloned into %q, on branch %q.\n", dest, head.Active.Branch)
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "authentication token (consumed by the sync collaborator, not the core)")
	return cmd
}

func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(src, path)
		if relErr != nil {
			return relErr
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o644)
	})
}
