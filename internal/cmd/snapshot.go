package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"fsindex/internal/compare"
	"fsindex/internal/tree"
)

// errChangesDetected is returned by compare --fail-on-change.
var errChangesDetected = errors.New("changes detected")

func newSnapshotCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot [output.json]",
		Short: "Save the indexed files and their Merkle digest to JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := opts.loadIndex(cmd)
			if err != nil {
				return err
			}

			snap, err := tree.Build(tree.FromIndex(idx), idx.Root().Name())
			if err != nil {
				return fmt.Errorf("failed to build snapshot: %w", err)
			}

			// If no output path specified, use the digest as filename in ./output/
			outputPath := filepath.Join("output", snap.Digest+".json")
			if len(args) == 1 {
				outputPath = args[0]
			}

			if err := tree.Save(snap, outputPath); err != nil {
				return fmt.Errorf("failed to save snapshot: %w", err)
			}

			w := out(cmd)
			fmt.Fprintf(w, "✓ Snapshot saved\n")
			fmt.Fprintf(w, "  Digest: %s\n", snap.Digest)
			fmt.Fprintf(w, "  Files: %d\n", len(snap.Files))
			fmt.Fprintf(w, "  Output: %s\n", outputPath)
			return nil
		},
	}
}

func newCompareCommand(opts *options) *cobra.Command {
	var failOnChange bool

	cmd := &cobra.Command{
		Use:   "compare <snapshot.json>",
		Short: "Compare a saved snapshot against the current tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldTree, err := tree.Load(args[0])
			if err != nil {
				return fmt.Errorf("failed to load snapshot: %w", err)
			}

			idx, err := opts.loadIndex(cmd)
			if err != nil {
				return err
			}
			newTree, err := tree.Build(tree.FromIndex(idx), idx.Root().Name())
			if err != nil {
				return fmt.Errorf("failed to build snapshot: %w", err)
			}

			result := compare.Compare(oldTree, newTree)
			fmt.Fprintln(out(cmd), compare.FormatReport(result))

			if failOnChange && result.HasChanges() {
				return errChangesDetected
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&failOnChange, "fail-on-change", false, "Exit non-zero when the tree differs from the snapshot")
	return cmd
}
