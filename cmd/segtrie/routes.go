package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-segtrie/manifest"
)

func routesCmd(opts *globalOptions) *cobra.Command {
	var (
		filter string
		asYAML bool
	)

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List routes, most specific first",
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := opts.loadTree()
			if err != nil {
				return err
			}

			routes := tree.Routes()
			if filter != "" {
				if routes, err = tree.Filter(filter); err != nil {
					return err
				}
			}

			if asYAML {
				out := &manifest.Manifest{Config: tree.Config()}
				for _, r := range routes {
					name, _ := handlerName(r.Handler)
					out.Routes = append(out.Routes, manifest.RouteSpec{Pattern: r.Pattern, Handler: name})
				}
				return out.Encode(cmd.OutOrStdout())
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PATTERN\tHANDLER\tKIND")
			for _, r := range routes {
				kind := "exact"
				if r.Wildcard {
					kind = "wildcard"
				}
				name, _ := handlerName(r.Handler)
				fmt.Fprintf(w, "%s\t%s\t%s\n", r.Pattern, name, kind)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Glob applied to patterns, e.g. /api/**")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print routes as a manifest")

	return cmd
}

func handlerName(h any) (string, bool) {
	s, ok := h.(string)
	return s, ok
}
