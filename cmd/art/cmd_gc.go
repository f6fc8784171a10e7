package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/art/internal/gc"
	"github.com/odvcencio/art/internal/repo"
)

func newGCCmd() *cobra.Command {
	var restore string

	cmd := &cobra.Command{
		Use:   "gc [--restore <hash>]",
		Short: "Archive dangling commits, or restore one back onto the active branch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			if restore != "" {
				head, err := r.ReadHead()
				if err != nil {
					return err
				}
				if err := gc.Restore(r, head.Active.Branch, restore); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Restored %s onto %s.\n", restore, head.Active.Branch)
				return nil
			}

			archived, err := gc.Run(r)
			if err != nil {
				return err
			}
			if len(archived) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to archive.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived %d dangling commit(s).\n", len(archived))
			return nil
		},
	}

	cmd.Flags().StringVar(&restore, "restore", "", "restore an archived commit by hash")
	return cmd
}
