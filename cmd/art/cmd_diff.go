package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/art/internal/repo"
	"github.com/odvcencio/art/internal/workflow"
)

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff",
		Short: "Show the working-tree diff against the active state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}
			result, err := workflow.Diff(r)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, fd := range result.FileDiffs {
				fmt.Fprintf(out, "diff --art a/%s b/%s\n", fd.File, fd.File)
				if fd.Deleted != "" {
					fmt.Fprintf(out, "-%s\n", fd.Deleted)
				}
				if fd.Added != "" {
					fmt.Fprintf(out, "+%s\n", fd.Added)
				}
			}
			return nil
		},
	}
}
