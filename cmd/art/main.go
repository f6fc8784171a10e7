// Command art is the CLI front end for the art version control core: it
// parses arguments and passes through to the operations in internal/repo,
// internal/workflow, internal/branchop, and internal/cache (spec §1 scopes
// the front end itself out of the core).
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/odvcencio/art/internal/apperr"
)

func main() {
	root := &cobra.Command{
		Use:   "art",
		Short: "A local, file-based version control system",
	}

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newCloneCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newStatusCmd())
	root.AddCommand(newAddCmd())
	root.AddCommand(newCommitCmd())
	root.AddCommand(newBranchCmd())
	root.AddCommand(newCheckoutCmd())
	root.AddCommand(newMergeCmd())
	root.AddCommand(newRemoteCmd())
	root.AddCommand(newFetchCmd())
	root.AddCommand(newPullCmd())
	root.AddCommand(newPushCmd())
	root.AddCommand(newLogCmd())
	root.AddCommand(newDiffCmd())
	root.AddCommand(newStashCmd())
	root.AddCommand(newResetCmd())
	root.AddCommand(newRmCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newGCCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatErr(err))
		os.Exit(1)
	}
}

// formatErr renders a single-line error message, unwrapping apperr.Error
// to its Kind label per spec §7 ("a single-line error message; no stack
// traces").
func formatErr(err error) string {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return fmt.Sprintf("art: %s: %v", ae.Kind, ae.Err)
	}
	return "art: " + err.Error()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "art 0.1.0-dev")
		},
	}
}
