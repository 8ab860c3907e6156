package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"fsindex/internal/index"
)

func newFindCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "find <name>",
		Short: "Find files by exact name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := opts.loadIndex(cmd)
			if err != nil {
				return err
			}
			w := out(cmd)
			printHeader(w, "Finding files by name '%s':", args[0])
			result := measure(w, func() []index.Match { return idx.FindByName(args[0]) })
			printMatches(w, "Results:", result)
			return nil
		},
	}
}

func newGlobCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "glob <pattern>",
		Short: "Match file names against a shell wildcard pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := opts.loadIndex(cmd)
			if err != nil {
				return err
			}
			w := out(cmd)
			printHeader(w, "Wildcard search for '%s':", args[0])

			var searchErr error
			result := measure(w, func() []index.Match {
				var m []index.Match
				m, searchErr = idx.WildcardSearch(args[0])
				return m
			})
			if searchErr != nil {
				return searchErr
			}
			printMatches(w, "Results:", result)
			return nil
		},
	}
}

func newExtCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ext <extension>",
		Short: "Find files by extension metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := opts.loadIndex(cmd)
			if err != nil {
				return err
			}
			w := out(cmd)
			printHeader(w, "Finding files by extension '%s':", args[0])
			criteria := map[string]string{"extension": args[0]}
			result := measure(w, func() []index.Match { return idx.FindByMetadata(criteria) })
			printMatches(w, "Results:", result)
			return nil
		},
	}
}

func newSizeRangeCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "size-range <min-kb> <max-kb>",
		Short: "Find files whose size lies in an inclusive range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lo, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid minimum size %q: %w", args[0], err)
			}
			hi, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid maximum size %q: %w", args[1], err)
			}

			idx, err := opts.loadIndex(cmd)
			if err != nil {
				return err
			}
			w := out(cmd)
			printHeader(w, "Finding files between %d and %d KB:", lo, hi)
			result := measure(w, func() []index.Match { return idx.FindBySizeRange(lo, hi) })
			printMatches(w, "Results:", result)
			return nil
		},
	}
}

type shortestResult struct {
	path index.ShortestPath
	ok   bool
}

func newShortestCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "shortest <name>",
		Short: "Find the path with the fewest directory hops to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := opts.loadIndex(cmd)
			if err != nil {
				return err
			}
			w := out(cmd)
			printHeader(w, "Finding shortest path to '%s':", args[0])
			result := measure(w, func() shortestResult {
				sp, ok := idx.FindShortestPath(args[0])
				return shortestResult{path: sp, ok: ok}
			})
			printShortest(w, result.path, result.ok)
			return nil
		},
	}
}

func newDupesCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dupes",
		Short: "List files sharing both name and size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := opts.loadIndex(cmd)
			if err != nil {
				return err
			}
			w := out(cmd)
			printHeader(w, "Finding duplicate files:")
			result := measure(w, idx.FindDuplicates)
			printMatches(w, "Results:", result)
			return nil
		},
	}
}
