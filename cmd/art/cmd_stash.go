package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/art/internal/cache"
	"github.com/odvcencio/art/internal/repo"
)

func newStashCmd() *cobra.Command {
	var list, pop bool

	cmd := &cobra.Command{
		Use:   "stash [pop|list]",
		Short: "Save or restore the working-tree delta",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				switch args[0] {
				case "list":
					list = true
				case "pop":
					pop = true
				}
			}

			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			switch {
			case list:
				entries, err := cache.StashList(r)
				if err != nil {
					return err
				}
				for _, e := range entries {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", e.ID, e.Date)
				}
			case pop:
				out, err := cache.StashPop(r)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			default:
				out, err := cache.Stash(r)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "list stash entries")
	cmd.Flags().BoolVar(&pop, "pop", false, "apply and drop the newest stash entry")
	return cmd
}
