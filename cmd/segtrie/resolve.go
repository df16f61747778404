package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	segtrie "github.com/goliatone/go-segtrie"
)

type resolution struct {
	Path      string         `json:"path"`
	Matched   bool           `json:"matched"`
	Handler   any            `json:"handler,omitempty"`
	Pattern   string         `json:"pattern,omitempty"`
	Params    segtrie.Params `json:"params,omitempty"`
	Wildcard  bool           `json:"wildcard,omitempty"`
	Remainder string         `json:"remainder,omitempty"`
}

func resolve(tree *segtrie.Tree, path string) resolution {
	m, ok := tree.Get(path)
	if !ok {
		return resolution{Path: path}
	}
	return resolution{
		Path:      path,
		Matched:   true,
		Handler:   m.Handler,
		Pattern:   m.Pattern,
		Params:    m.Params,
		Wildcard:  m.Wildcard,
		Remainder: m.Remainder,
	}
}

func resolveCmd(opts *globalOptions) *cobra.Command {
	var failOnMiss bool

	cmd := &cobra.Command{
		Use:   "resolve PATH...",
		Short: "Resolve paths against the manifest",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := opts.loadTree()
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			misses := 0
			for _, path := range args {
				res := resolve(tree, path)
				if !res.Matched {
					misses++
				}
				if err := enc.Encode(res); err != nil {
					return err
				}
			}

			if failOnMiss && misses > 0 {
				return fmt.Errorf("%d of %d paths did not match", misses, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&failOnMiss, "fail-on-miss", false, "Exit with an error if any path does not match")

	return cmd
}
