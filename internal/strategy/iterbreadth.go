package strategy

import (
	"zarr-checksum-gallery/internal/checksum"
	"zarr-checksum-gallery/internal/fsscan"
	"zarr-checksum-gallery/internal/tree"
)

// IterBreadth walks the tree single-threaded in breadth-first order,
// hashing files synchronously as they're encountered and inserting each
// one into a tree builder. It is the reference strategy every other
// strategy's output is checked against.
func IterBreadth(opts Options) (Result, *tree.Node, error) {
	b := tree.New()
	queue := []string{""} // relpaths of directories still to list; "" is the root

	for len(queue) > 0 {
		relpath := queue[0]
		queue = queue[1:]

		entries, err := fsscan.List(fullPath(opts.RootPath, relpath))
		if err != nil {
			return Result{}, nil, err
		}

		for _, e := range entries {
			if opts.excluded(e.Name) {
				continue
			}
			childRel, err := joinRelpath(relpath, e.Name)
			if err != nil {
				return Result{}, nil, err
			}
			switch e.Kind {
			case fsscan.KindDir:
				queue = append(queue, childRel)
			case fsscan.KindFile:
				digestHex, size, err := hashFile(e.Path)
				if err != nil {
					return Result{}, nil, err
				}
				opts.Logger.Entry(childRel, digestHex)
				if err := b.Insert(checksum.Entry{RelPath: childRel, DigestHex: digestHex, Size: size}); err != nil {
					return Result{}, nil, err
				}
			}
		}
	}

	digestHex, fc, bc := b.Finalize(opts.Logger)
	return Result{DigestHex: digestHex, FileCount: fc, ByteCount: bc}, b.Root(), nil
}
