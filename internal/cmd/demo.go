package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"fsindex/internal/fsnode"
	"fsindex/internal/index"
)

func newDemoCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run every query against the tree in one walkthrough",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := opts.loadIndex(cmd)
			if err != nil {
				return err
			}
			return runDemo(cmd, idx)
		},
	}
}

func runDemo(cmd *cobra.Command, idx *index.Index) error {
	w := out(cmd)

	printHeader(w, "Finding files by name 'file1.txt':")
	printMatches(w, "Results:", measure(w, func() []index.Match { return idx.FindByName("file1.txt") }))

	fmt.Fprintln(w)
	printHeader(w, "Finding files by extension 'txt':")
	txt := map[string]string{"extension": "txt"}
	printMatches(w, "Results:", measure(w, func() []index.Match { return idx.FindByMetadata(txt) }))

	dir1, hasDir1 := idx.Lookup("dir1")
	if hasDir1 {
		fmt.Fprintln(w)
		printHeader(w, "Calculating size of 'dir1':")
		fmt.Fprintf(w, "Size of 'dir1': %d KB\n", measure(w, dir1.Size))
	}

	fmt.Fprintln(w)
	printHeader(w, "Wildcard search for '*.txt':")
	matches, err := idx.WildcardSearch("*.txt")
	if err != nil {
		return err
	}
	printMatches(w, "Results:", matches)

	fmt.Fprintln(w)
	printHeader(w, "Finding shortest path to 'file3.jpg':")
	sp := measure(w, func() shortestResult {
		p, ok := idx.FindShortestPath("file3.jpg")
		return shortestResult{path: p, ok: ok}
	})
	printShortest(w, sp.path, sp.ok)

	fmt.Fprintln(w)
	printHeader(w, "Finding duplicate files:")
	printMatches(w, "Results:", measure(w, idx.FindDuplicates))

	fmt.Fprintln(w)
	printHeader(w, "Directory structure:")
	printTree(w, idx, nil)

	if hasDir1 {
		fmt.Fprintln(w)
		printHeader(w, "Directory structure for 'dir1':")
		printTree(w, idx, dir1)
	}
	return nil
}

func printTree(w io.Writer, idx *index.Index, node fsnode.Node) {
	measure(w, func() struct{} {
		idx.PrintDirectory(w, node, 0)
		return struct{}{}
	})
}
