package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"fsindex/internal/config"
	"fsindex/internal/example"
	"fsindex/internal/fsnode"
	"fsindex/internal/index"
	"fsindex/internal/loader"
	"fsindex/internal/logging"
	"fsindex/internal/progress"
)

// Version is injected at build time via -ldflags
var Version = "dev"

type options struct {
	configPath   string
	manifestPath string
	logLevel     string

	cfg *config.Config
}

// NewRootCommand creates and returns the root cobra command for fsindex
func NewRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "fsindex",
		Short: "Query a simulated file tree",
		Long: `fsindex builds an in-memory file tree from a YAML manifest and runs
indexed queries over it: lookup by name, wildcard and extension search,
shortest path, duplicate detection and snapshots.

Without --manifest the built-in demo tree is used.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logging.Sync()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "fsindex.yaml", "Config file path")
	flags.StringVarP(&opts.manifestPath, "manifest", "m", "", "YAML manifest describing the tree (default: demo tree)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")

	cmd.AddCommand(newFindCommand(opts))
	cmd.AddCommand(newGlobCommand(opts))
	cmd.AddCommand(newExtCommand(opts))
	cmd.AddCommand(newSizeRangeCommand(opts))
	cmd.AddCommand(newShortestCommand(opts))
	cmd.AddCommand(newDupesCommand(opts))
	cmd.AddCommand(newSizeCommand(opts))
	cmd.AddCommand(newPrintCommand(opts))
	cmd.AddCommand(newDemoCommand(opts))
	cmd.AddCommand(newSnapshotCommand(opts))
	cmd.AddCommand(newCompareCommand(opts))

	return cmd
}

func (o *options) setup() error {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	o.cfg = cfg

	if err := logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}); err != nil {
		return fmt.Errorf("failed to init logging: %w", err)
	}
	return nil
}

// loadIndex builds the tree from the manifest flag or the demo data.
func (o *options) loadIndex(cmd *cobra.Command) (*index.Index, error) {
	var (
		m   *loader.Manifest
		err error
	)
	if o.manifestPath != "" {
		m, err = loader.LoadManifest(o.manifestPath)
	} else {
		m, err = example.Manifest()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}

	bar := progress.New(int64(len(m.Files)), cmd.ErrOrStderr())
	idx, result, err := loader.Load(cmd.Context(), m, o.cfg.RootName, o.cfg.Exclude, o.cfg.Workers, bar)
	if err != nil {
		return nil, fmt.Errorf("failed to build tree: %w", err)
	}
	bar.Finish()

	for _, e := range result.Errors {
		logging.Warn("skipped manifest entry", logging.Err(e))
	}
	if len(result.Errors) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Skipped %d entries due to errors\n", len(result.Errors))
	}

	return idx, nil
}

// splitSegments turns "dir1/subdir1" into path segments below the root.
func splitSegments(arg string) []string {
	var segments []string
	for _, s := range strings.Split(arg, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// lookupNode resolves an optional path argument, defaulting to the root.
func lookupNode(idx *index.Index, args []string) (fsnode.Node, error) {
	if len(args) == 0 {
		return idx.Root(), nil
	}
	node, ok := idx.Lookup(splitSegments(args[0])...)
	if !ok {
		return nil, fmt.Errorf("no such path: %s", args[0])
	}
	return node, nil
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
