package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/art/internal/repo"
	"github.com/odvcencio/art/internal/workflow"
)

func newLogCmd() *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the active branch's commit history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}
			head, err := r.ReadHead()
			if err != nil {
				return err
			}
			out, err := workflow.Log(r, head.Active.Branch, verify)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "check each signed commit's signature (SPEC_FULL §4.7.2)")
	return cmd
}
