package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/odvcencio/art/internal/repo"
	"github.com/odvcencio/art/internal/watch"
	"github.com/odvcencio/art/internal/workflow"
)

func newStatusCmd() *cobra.Command {
	var watchFlag bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the working tree status",
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

			if !watchFlag {
				st, err := workflow.Compute(r)
				if err != nil {
					return err
				}
				printStatus(cmd, st)
				return nil
			}

			return watch.Run(r, cmd.Context().Done(), render)
		},
	}

	cmd.Flags().BoolVar(&watchFlag, "watch", false, "re-render status on every working-tree change (SPEC_FULL §4.7.4)")
	return cmd
}

func printStatus(cmd *cobra.Command, st workflow.Status) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "on branch %s\n", st.ActiveBranch)
	printGroup(out, "staged", st.Staged)
	printGroup(out, "modified", st.Modified)
	printGroup(out, "untracked", st.Untracked)
	printGroup(out, "ignored", st.Ignored)
}

func printGroup(out io.Writer, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(out, "\n%s:\n", label)
	for _, it := range items {
		fmt.Fprintf(out, "  %s\n", it)
	}
}
