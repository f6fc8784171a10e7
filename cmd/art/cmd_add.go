package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/art/internal/repo"
	"github.com/odvcencio/art/internal/workflow"
)

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <path>",
		Short: "Stage a file or directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}
			msg, err := workflow.Add(r, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}
