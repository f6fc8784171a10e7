package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/art/internal/repo"
	"github.com/odvcencio/art/internal/watch"
	"github.com/odvcencio/art/internal/workflow"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-render status on every working-tree change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			render := func() {
				st, err := workflow.Compute(r)
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), formatErr(err))
					return
				}
				printStatus(cmd, st)
			}

			return watch.Run(r, cmd.Context().Done(), render)
		},
	}
}
