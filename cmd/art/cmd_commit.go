package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/art/internal/repo"
	"github.com/odvcencio/art/internal/workflow"
)

func newCommitCmd() *cobra.Command {
	var message string
	var sign bool
	var signKey string

	cmd := &cobra.Command{
		Use:   "commit <msg>",
		Short: "Record the staged changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if message == "" && len(args) > 0 {
				message = args[0]
			}

			r, err := repo.Open(".")
			if err != nil {
				return err
			}
			out, err := workflow.CommitWithOptions(r, message, workflow.CommitOptions{Sign: sign, SignKey: signKey})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")
	cmd.Flags().BoolVar(&sign, "sign", false, "sign the commit with an SSH private key")
	cmd.Flags().StringVar(&signKey, "sign-key", "", "path to SSH private key (default: the first ~/.ssh/id_* key, in lexical order, that parses)")
	return cmd
}
