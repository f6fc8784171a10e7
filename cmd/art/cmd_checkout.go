package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/art/internal/branchop"
	"github.com/odvcencio/art/internal/repo"
)

func newCheckoutCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "checkout <name>",
		Short: "Switch the working tree to another branch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}
			out, err := branchop.Checkout(r, args[0], force)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite local changes")
	return cmd
}
