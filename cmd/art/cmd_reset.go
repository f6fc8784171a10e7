package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/art/internal/cache"
	"github.com/odvcencio/art/internal/repo"
)

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset [hash]",
		Short: "Clear the stage, or rewind the active branch to hash",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash := ""
			if len(args) > 0 {
				hash = args[0]
			}
			r, err := repo.Open(".")
			if err != nil {
				return err
			}
			out, err := cache.Reset(r, hash)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
