// Package tree implements an in-memory n-ary directory tree, keyed by path
// component, used by strategies that retain the full tree before combining
// digests bottom-up.
package tree

import (
	"sort"

	"zarr-checksum-gallery/internal/checksum"
)

// Node is either a file leaf or a directory, depending on IsFile. The root
// node has Name == "" and RelPath == "".
type Node struct {
	Name      string
	RelPath   string
	IsFile    bool
	FileEntry *checksum.Entry // set when IsFile

	Children map[string]*Node // set when !IsFile

	// Populated by Finalize; valid only once every descendant has been
	// inserted and Finalize has run.
	DigestHex string
	FileCount int64
	ByteCount int64
}

// Walk visits the tree in pre-order, children sorted lexicographically by
// name, calling fn for every node (files and directories alike) except the
// unnamed root. Digest fields must already be finalized.
func (n *Node) Walk(fn func(n *Node)) {
	for _, child := range n.sortedChildren() {
		fn(child)
		if !child.IsFile {
			child.Walk(fn)
		}
	}
}

func (n *Node) sortedChildren() []*Node {
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		out = append(out, c)
	}
	sortNodes(out)
	return out
}

func sortNodes(nodes []*Node) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Name < nodes[j].Name })
}
