package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/art/internal/repo"
)

// fetch/pull/push sit at the sync-protocol boundary the core deliberately
// does not implement (spec §1): this core's obligation ends at maintaining
// the on-disk contract (spec §6) a remote collaborator reads and writes.
// These commands only validate that a remote is configured before handing
// off; they carry no transport.

func newFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Fetch from the configured remote (transport out of core scope)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}
			remote, err := r.RequireRemote()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Would fetch from %s (sync transport not provided by this core).\n", remote)
			return nil
		},
	}
}
