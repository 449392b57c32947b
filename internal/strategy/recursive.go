package strategy

import (
	"zarr-checksum-gallery/internal/checksum"
	"zarr-checksum-gallery/internal/fsscan"
)

// Recursive walks the tree single-threaded in depth-first order using
// call-stack recursion, otherwise identical to IterDepth: entries within
// a directory are sorted by name before combining, and a directory's
// checksum is folded as soon as its own entries are exhausted. Recursion
// depth equals tree depth, which is small for real trees.
func Recursive(opts Options) (Result, error) {
	digestHex, fc, bc, err := recurseDir(opts, "")
	if err != nil {
		return Result{}, err
	}
	return Result{DigestHex: digestHex, FileCount: fc, ByteCount: bc}, nil
}

func recurseDir(opts Options, relpath string) (digestHex string, fileCount, byteCount int64, err error) {
	entries, err := fsscan.List(fullPath(opts.RootPath, relpath))
	if err != nil {
		return "", 0, 0, err
	}

	children := make([]checksum.Child, 0, len(entries))
	for _, e := range entries {
		if opts.excluded(e.Name) {
			continue
		}
		childRel, err := joinRelpath(relpath, e.Name)
		if err != nil {
			return "", 0, 0, err
		}

		switch e.Kind {
		case fsscan.KindDir:
			hex, fc, bc, err := recurseDir(opts, childRel)
			if err != nil {
				return "", 0, 0, err
			}
			children = append(children, checksum.ChildFromDir(e.Name, childRel, hex, fc, bc))
		case fsscan.KindFile:
			hex, size, err := hashFile(e.Path)
			if err != nil {
				return "", 0, 0, err
			}
			opts.Logger.Entry(childRel, hex)
			children = append(children, checksum.ChildFromFile(e.Name, checksum.Entry{RelPath: childRel, DigestHex: hex, Size: size}))
		}
	}

	digestHex, fileCount, byteCount = checksum.Combine(children)
	opts.Logger.Entry(relpath, digestHex)
	return digestHex, fileCount, byteCount, nil
}
