package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/art/internal/repo"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config [key] [value]",
		Short: "Get or set a configuration value",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			switch len(args) {
			case 0:
				all, err := r.ListConfig()
				if err != nil {
					return err
				}
				for k, v := range all {
					fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", k, v)
				}
			case 1:
				v, ok, err := r.GetConfig(args[0])
				if err != nil {
					return err
				}
				if ok {
					fmt.Fprintln(cmd.OutOrStdout(), v)
				}
			case 2:
				if err := r.SetConfig(args[0], args[1]); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
