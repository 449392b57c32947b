package tree

import (
	"strings"

	"zarr-checksum-gallery/internal/checksum"
	"zarr-checksum-gallery/internal/logging"
	"zarr-checksum-gallery/internal/zarrerr"
)

// Builder incrementally assembles a directory tree from a stream of
// checksum.Entry values. It is not safe for concurrent use; strategies
// that parallelize hashing still feed the Builder from a single
// aggregator goroutine.
type Builder struct {
	root *Node
}

// New constructs an empty Builder rooted at the traversal root.
func New() *Builder {
	return &Builder{root: &Node{Children: map[string]*Node{}}}
}

// Insert creates intermediate directory nodes along e's path as needed and
// places e at the leaf. Re-inserting at an already-occupied relpath is a
// fatal DuplicateError.
func (b *Builder) Insert(e checksum.Entry) error {
	parts := strings.Split(e.RelPath, "/")
	cur := b.root
	prefix := ""
	for i, part := range parts {
		if i == 0 {
			prefix = part
		} else {
			prefix = prefix + "/" + part
		}
		isLeaf := i == len(parts)-1

		child, exists := cur.Children[part]
		if !exists {
			child = &Node{Name: part, RelPath: prefix}
			if isLeaf {
				entry := e
				child.IsFile = true
				child.FileEntry = &entry
			} else {
				child.Children = map[string]*Node{}
			}
			cur.Children[part] = child
		} else if isLeaf {
			return &zarrerr.DuplicateError{Path: e.RelPath}
		}
		cur = child
	}
	return nil
}

// Finalize post-order visits every node, computing DigestHex/FileCount/
// ByteCount via the combine function, and returns the root's aggregate.
// Intended to be called exactly once; the Node.DigestHex fields it sets
// are valid afterward for Walk or direct inspection. logger may be nil;
// otherwise Finalize logs one Entry per directory completion (including
// the root), matching what the non-tree-retaining strategies log inline
// as they combine each directory.
func (b *Builder) Finalize(logger *logging.Logger) (digestHex string, fileCount, byteCount int64) {
	return finalize(b.root, logger)
}

// Root exposes the underlying tree, valid for Walk only after Finalize.
func (b *Builder) Root() *Node {
	return b.root
}

func finalize(n *Node, logger *logging.Logger) (digestHex string, fileCount, byteCount int64) {
	if n.IsFile {
		n.DigestHex = n.FileEntry.DigestHex
		n.FileCount = 1
		n.ByteCount = n.FileEntry.Size
		return n.DigestHex, n.FileCount, n.ByteCount
	}

	children := make([]checksum.Child, 0, len(n.Children))
	for name, child := range n.Children {
		hex, fc, bc := finalize(child, logger)
		if child.IsFile {
			children = append(children, checksum.ChildFromFile(name, *child.FileEntry))
		} else {
			children = append(children, checksum.ChildFromDir(name, child.RelPath, hex, fc, bc))
		}
	}
	n.DigestHex, n.FileCount, n.ByteCount = checksum.Combine(children)
	logger.Entry(n.RelPath, n.DigestHex)
	return n.DigestHex, n.FileCount, n.ByteCount
}
