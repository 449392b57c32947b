package strategy

import (
	"fmt"
	"io"

	"zarr-checksum-gallery/internal/checksum"
	"zarr-checksum-gallery/internal/tree"
)

// TreePrint reuses the PoolTree engine but keeps its returned tree
// around afterward: it walks the finished tree in pre-order and prints
// "<relpath>\t<digest_hex>" for every file and
// "<relpath>\t<digest_hex>-<count>--<bytes>" for every directory, instead
// of discarding the tree the way the collapse strategies do. The root
// summary line is left to the caller, which prints it after these lines.
func TreePrint(opts Options, w io.Writer) (Result, *tree.Node, error) {
	result, root, err := PoolTree(opts)
	if err != nil {
		return Result{}, nil, err
	}

	root.Walk(func(n *tree.Node) {
		full := checksum.FullString(n.DigestHex, n.FileCount, n.ByteCount)
		if n.IsFile {
			fmt.Fprintf(w, "%s\t%s\n", n.RelPath, n.DigestHex)
		} else {
			fmt.Fprintf(w, "%s\t%s\n", n.RelPath, full)
		}
	})

	return result, root, nil
}
