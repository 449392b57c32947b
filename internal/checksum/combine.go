package checksum

import (
	"fmt"
	"sort"
	"strings"

	"zarr-checksum-gallery/internal/digest"
)

// Child describes one immediate child of a directory being combined: either
// a file (FileCount 1, ByteCount its size) or an already-combined
// subdirectory (FileCount/ByteCount its aggregate totals).
type Child struct {
	// Name is the child's own final path component, used only to order
	// children lexicographically before combining.
	Name string
	// RelPath is the child's path relative to the traversal root, not
	// to the directory being combined.
	RelPath   string
	DigestHex string
	FileCount int64
	ByteCount int64
}

// ChildFromFile builds a Child for a leaf FileEntry.
func ChildFromFile(name string, e Entry) Child {
	return Child{Name: name, RelPath: e.RelPath, DigestHex: e.DigestHex, FileCount: 1, ByteCount: e.Size}
}

// descriptor renders one child's encoded form:
// "<relpath>:<digest_hex>-<file_count>--<byte_count>".
func descriptor(c Child) string {
	return fmt.Sprintf("%s:%s-%d--%d", c.RelPath, c.DigestHex, c.FileCount, c.ByteCount)
}

// Combine folds a directory's children into its own pure digest hex plus
// aggregate file/byte counts. Children are sorted by Name (lexicographic
// byte order) before folding, regardless of the order they were supplied
// in, so the result does not depend on insertion order.
//
// An empty children slice yields the digest of the empty string.
func Combine(children []Child) (digestHex string, fileCount int64, byteCount int64) {
	sorted := make([]Child, len(children))
	copy(sorted, children)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	parts := make([]string, len(sorted))
	for i, c := range sorted {
		parts[i] = descriptor(c)
		fileCount += c.FileCount
		byteCount += c.ByteCount
	}
	digestHex = digest.String(strings.Join(parts, "/"))
	return digestHex, fileCount, byteCount
}

// FullString renders a node's complete checksum string: its pure digest hex
// followed by its file and byte counts, e.g. "<hex>-7084--1707865600". This
// is both the stdout root line's format and the string used for a node's
// own S(·) entry when it becomes a child of its parent.
func FullString(digestHex string, fileCount, byteCount int64) string {
	return fmt.Sprintf("%s-%d--%d", digestHex, fileCount, byteCount)
}

// ChildFromDir builds a Child for an already-combined subdirectory.
func ChildFromDir(name, relpath, digestHex string, fileCount, byteCount int64) Child {
	return Child{Name: name, RelPath: relpath, DigestHex: digestHex, FileCount: fileCount, ByteCount: byteCount}
}
