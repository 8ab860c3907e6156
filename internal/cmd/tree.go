package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"fsindex/internal/index"
)

func newSizeCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "size [path]",
		Short: "Show the derived size of a directory or file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := opts.loadIndex(cmd)
			if err != nil {
				return err
			}
			node, err := lookupNode(idx, args)
			if err != nil {
				return err
			}
			w := out(cmd)
			printHeader(w, "Calculating size of '%s':", node.Name())
			size := measure(w, node.Size)
			fmt.Fprintf(w, "Size of '%s': %d KB\n", node.Name(), size)
			return nil
		},
	}
}

func newPrintCommand(opts *options) *cobra.Command {
	var showStats bool

	cmd := &cobra.Command{
		Use:   "print [path]",
		Short: "Print the directory structure",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := opts.loadIndex(cmd)
			if err != nil {
				return err
			}
			node, err := lookupNode(idx, args)
			if err != nil {
				return err
			}
			w := out(cmd)
			printHeader(w, "Directory structure for '%s':", node.Name())
			printTree(w, idx, node)
			if showStats {
				printStats(cmd, idx.Stats())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showStats, "stats", false, "Also print file and directory counts")
	return cmd
}

func printStats(cmd *cobra.Command, s index.Stats) {
	fmt.Fprintf(out(cmd), "\n%d files, %d directories, %d KB total\n", s.Files, s.Directories, s.TotalSize)
}
