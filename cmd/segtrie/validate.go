package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func validateCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Report routes shadowed by wildcard routes",
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := opts.loadTree()
			if err != nil {
				return err
			}

			errs := tree.Validate()
			for _, e := range errs {
				fmt.Fprintln(cmd.OutOrStdout(), e.Error())
			}
			if len(errs) > 0 {
				return fmt.Errorf("%d shadowed route(s)", len(errs))
			}

			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}
