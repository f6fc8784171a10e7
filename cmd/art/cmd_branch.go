package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/art/internal/branchop"
	"github.com/odvcencio/art/internal/repo"
)

func newBranchCmd() *cobra.Command {
	var del, forceDel bool

	cmd := &cobra.Command{
		Use:   "branch [name]",
		Short: "List, create, or delete branches",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			if len(args) == 0 {
				names, err := branchop.List(r)
				if err != nil {
					return err
				}
				for _, n := range names {
					fmt.Fprintln(cmd.OutOrStdout(), n)
				}
				return nil
			}

			name := args[0]
			if del || forceDel {
				out, err := branchop.Delete(r, name)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}

			out, err := branchop.Create(r, name)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&del, "delete", "d", false, "delete the named branch")
	cmd.Flags().BoolVarP(&forceDel, "force-delete", "D", false, "delete the named branch")
	return cmd
}
