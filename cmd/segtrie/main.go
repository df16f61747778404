package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	segtrie "github.com/goliatone/go-segtrie"
	"github.com/goliatone/go-segtrie/manifest"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type globalOptions struct {
	manifestPath string
	verbose      bool
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "segtrie",
		Short: "Inspect and query segment trie route manifests",
		Long: `segtrie loads a YAML route manifest into a segment trie and lets you
resolve paths against it, list its routes, print the tree and check it
for shadowed routes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.manifestPath, "manifest", "m", "routes.yaml", "Route manifest file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log tree construction")

	cmd.AddCommand(
		resolveCmd(opts),
		routesCmd(opts),
		treeCmd(opts),
		validateCmd(opts),
		versionCmd(),
	)

	return cmd
}

func (o *globalOptions) logger() *zap.Logger {
	if !o.verbose {
		return zap.NewNop()
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// loadTree builds the tree described by the manifest, storing handler
// names as the handler values.
func (o *globalOptions) loadTree() (*segtrie.Tree, error) {
	logger := o.logger()
	defer func() { _ = logger.Sync() }()

	m, err := manifest.LoadFile(o.manifestPath)
	if err != nil {
		return nil, err
	}

	logger.Debug("manifest loaded",
		zap.String("path", o.manifestPath),
		zap.Int("routes", len(m.Routes)),
		zap.Bool("strict", m.Strict),
	)

	return m.Build(manifest.NameResolver, segtrie.WithLogger(segtrie.NewZapLogger(logger)))
}
