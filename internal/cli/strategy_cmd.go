package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"zarr-checksum-gallery/internal/fsscan"
	"zarr-checksum-gallery/internal/strategy"
	"zarr-checksum-gallery/internal/tree"
)

// strategyTokens lists every CLI strategy token in the order the
// external interface documents them.
var strategyTokens = []string{
	"breadth-first",
	"depth-first",
	"recursive",
	"fastio",
	"fastasync",
	"collapsio-arc",
	"collapsio-mpsc",
	"tree",
}

// takesThreads reports whether token accepts -t/--threads.
func takesThreads(token string) bool {
	switch token {
	case "fastio", "fastasync", "collapsio-arc", "collapsio-mpsc", "tree":
		return true
	default:
		return false
	}
}

func newStrategyCmd(token string) *cobra.Command {
	var threads int
	var workers int
	var save string

	cmd := &cobra.Command{
		Use:   token + " <dirpath>",
		Short: strategyShortDescription(token),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dirPath := args[0]
			if err := fsscan.CheckRoot(dirPath); err != nil {
				return err
			}
			if threads <= 0 {
				threads = defaultThreads()
			}
			if workers <= 0 {
				workers = defaultWorkers()
			}
			opts := baseOptions(dirPath, threads, workers)
			root, err := runStrategy(token, opts, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if save != "" {
				if root == nil {
					return fmt.Errorf("--save requires a tree-retaining strategy (fastio, breadth-first, fastasync, or tree)")
				}
				if err := tree.Save(root, dirPath, save); err != nil {
					return fmt.Errorf("failed to save tree: %w", err)
				}
			}
			return nil
		},
	}

	if takesThreads(token) {
		cmd.Flags().IntVarP(&threads, "threads", "t", 0, "worker/runtime thread count (default: logical CPU count)")
	}
	if token == "fastasync" {
		cmd.Flags().IntVarP(&workers, "workers", "w", 0, "logical task count (default: logical CPU count)")
	}
	if token == "tree" || token == "fastio" || token == "breadth-first" || token == "fastasync" {
		cmd.Flags().StringVar(&save, "save", "", "write the computed tree to this path as JSON, for a later \"compare\"")
	}

	return cmd
}

func strategyShortDescription(token string) string {
	switch token {
	case "breadth-first":
		return "single-thread BFS walk feeding the tree builder"
	case "depth-first":
		return "single-thread DFS walk with on-the-fly combine"
	case "recursive":
		return "call-stack recursive equivalent of depth-first"
	case "fastio":
		return "worker-pool DFS walk with a single aggregator"
	case "fastasync":
		return "cooperative-task walk bounded by a thread semaphore"
	case "collapsio-arc":
		return "worker-pool collapse walk, shared-map transport"
	case "collapsio-mpsc":
		return "worker-pool collapse walk, channel transport"
	case "tree":
		return "fastio walk that prints every node before the root line"
	default:
		return ""
	}
}

// runStrategy dispatches to the named strategy and prints its result in
// the documented stdout format. The returned node is non-nil only for
// strategies that retain a full tree.
func runStrategy(token string, opts strategy.Options, out io.Writer) (*tree.Node, error) {
	var result strategy.Result
	var root *tree.Node
	var err error

	switch token {
	case "breadth-first":
		result, root, err = strategy.IterBreadth(opts)
	case "depth-first":
		result, err = strategy.IterDepth(opts)
	case "recursive":
		result, err = strategy.Recursive(opts)
	case "fastio":
		result, root, err = strategy.PoolTree(opts)
	case "fastasync":
		result, root, err = strategy.AsyncTree(opts)
	case "collapsio-arc":
		result, err = strategy.CollapseArc(opts)
	case "collapsio-mpsc":
		result, err = strategy.CollapseMPSC(opts)
	case "tree":
		result, root, err = strategy.TreePrint(opts, out)
	default:
		return nil, fmt.Errorf("unknown strategy %q", token)
	}
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(out, result.String())
	return root, nil
}
