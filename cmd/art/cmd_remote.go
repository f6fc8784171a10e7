package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/art/internal/repo"
)

func newRemoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remote [handle]",
		Short: "Show or set the configured remote handle",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			if len(args) == 0 {
				remote, err := r.GetRemote()
				if err != nil {
					return err
				}
				if remote == "" {
					fmt.Fprintln(cmd.OutOrStdout(), "(no remote configured)")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), remote)
				return nil
			}

			if err := r.SetRemote(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Remote set to %s.\n", args[0])
			return nil
		},
	}
}
