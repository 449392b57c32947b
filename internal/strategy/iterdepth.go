package strategy

import (
	"zarr-checksum-gallery/internal/checksum"
	"zarr-checksum-gallery/internal/fsscan"
)

// depthFrame is one pending directory on the explicit DFS stack: its
// relpath, its (already-sorted) entries, how far into them it has
// advanced, and the combine-ready Children it has accumulated from
// finished descendants so far.
type depthFrame struct {
	name     string // "" for the root frame
	relpath  string
	entries  []fsscan.Entry
	idx      int
	children []checksum.Child
}

// IterDepth walks the tree single-threaded in depth-first order using an
// explicit stack of frames instead of the call stack. A directory's
// checksum is combined as soon as its entries are exhausted, and pushed
// into its parent frame's accumulator; no tree is retained.
func IterDepth(opts Options) (Result, error) {
	rootEntries, err := fsscan.List(fullPath(opts.RootPath, ""))
	if err != nil {
		return Result{}, err
	}
	stack := []*depthFrame{{relpath: "", entries: rootEntries}}

	for {
		top := stack[len(stack)-1]

		if top.idx >= len(top.entries) {
			digestHex, fc, bc := checksum.Combine(top.children)
			opts.Logger.Entry(top.relpath, digestHex)
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return Result{DigestHex: digestHex, FileCount: fc, ByteCount: bc}, nil
			}
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, checksum.ChildFromDir(top.name, top.relpath, digestHex, fc, bc))
			continue
		}

		e := top.entries[top.idx]
		top.idx++
		if opts.excluded(e.Name) {
			continue
		}
		childRel, err := joinRelpath(top.relpath, e.Name)
		if err != nil {
			return Result{}, err
		}

		switch e.Kind {
		case fsscan.KindDir:
			entries, err := fsscan.List(e.Path)
			if err != nil {
				return Result{}, err
			}
			stack = append(stack, &depthFrame{name: e.Name, relpath: childRel, entries: entries})
		case fsscan.KindFile:
			digestHex, size, err := hashFile(e.Path)
			if err != nil {
				return Result{}, err
			}
			opts.Logger.Entry(childRel, digestHex)
			top.children = append(top.children, checksum.ChildFromFile(e.Name, checksum.Entry{RelPath: childRel, DigestHex: digestHex, Size: size}))
		}
	}
}
