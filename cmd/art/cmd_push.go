package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/art/internal/repo"
)

func newPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Push local history to the configured remote (transport out of core scope)",
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
			fmt.Fprintf(cmd.OutOrStdout(), "Would push to %s (sync transport not provided by this core).\n", remote)
			return nil
		},
	}
}
