package main

import (
	"github.com/spf13/cobra"
)

func treeCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print the segment tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := opts.loadTree()
			if err != nil {
				return err
			}
			tree.Print(cmd.OutOrStdout())
			return nil
		},
	}
}
