package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"zarr-checksum-gallery/internal/compare"
	"zarr-checksum-gallery/internal/fsscan"
	"zarr-checksum-gallery/internal/strategy"
	"zarr-checksum-gallery/internal/tree"
)

func newCompareCmd() *cobra.Command {
	var save string
	var threads int

	cmd := &cobra.Command{
		Use:   "compare <saved-tree.json> <dirpath>",
		Short: "recompute a tree and report what changed against a previously saved one",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			savedPath, dirPath := args[0], args[1]

			if err := fsscan.CheckRoot(dirPath); err != nil {
				return err
			}
			if threads <= 0 {
				threads = defaultThreads()
			}
			opts := baseOptions(dirPath, threads, threads)

			oldRoot, _, err := tree.Load(savedPath)
			if err != nil {
				return fmt.Errorf("failed to load saved tree: %w", err)
			}

			_, newRoot, err := strategy.PoolTree(opts)
			if err != nil {
				return err
			}

			if save != "" {
				if err := tree.Save(newRoot, dirPath, save); err != nil {
					return fmt.Errorf("failed to save tree: %w", err)
				}
			}

			result := compare.Compare(oldRoot, newRoot)
			fmt.Fprintln(cmd.OutOrStdout(), compare.FormatReport(result))

			if result.HasChanges() {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&threads, "threads", "t", 0, "worker thread count for the recompute pass (default: logical CPU count)")
	cmd.Flags().StringVar(&save, "save", "", "also write the recomputed tree to this path, for a future compare")

	return cmd
}
