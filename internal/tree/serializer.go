package tree

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"zarr-checksum-gallery/internal/checksum"
)

// serializedNode is the on-disk JSON shape for one tree node, used by the
// "tree --save" / "compare" round trip.
type serializedNode struct {
	Name      string                     `json:"name"`
	RelPath   string                     `json:"relpath"`
	IsFile    bool                       `json:"is_file"`
	DigestHex string                     `json:"digest_hex"`
	FileCount int64                      `json:"file_count"`
	ByteCount int64                      `json:"byte_count"`
	Children  map[string]*serializedNode `json:"children,omitempty"`
}

type serializedTree struct {
	Generator string          `json:"generator"`
	Created   time.Time       `json:"created"`
	RootPath  string          `json:"root_path"`
	Root      *serializedNode `json:"root"`
}

func toSerialized(n *Node) *serializedNode {
	s := &serializedNode{
		Name:      n.Name,
		RelPath:   n.RelPath,
		IsFile:    n.IsFile,
		DigestHex: n.DigestHex,
		FileCount: n.FileCount,
		ByteCount: n.ByteCount,
	}
	if !n.IsFile {
		s.Children = make(map[string]*serializedNode, len(n.Children))
		for name, child := range n.Children {
			s.Children[name] = toSerialized(child)
		}
	}
	return s
}

func fromSerialized(s *serializedNode) *Node {
	n := &Node{
		Name:      s.Name,
		RelPath:   s.RelPath,
		IsFile:    s.IsFile,
		DigestHex: s.DigestHex,
		FileCount: s.FileCount,
		ByteCount: s.ByteCount,
	}
	if n.IsFile {
		n.FileEntry = &checksum.Entry{RelPath: s.RelPath, DigestHex: s.DigestHex, Size: s.ByteCount}
	} else {
		n.Children = make(map[string]*Node, len(s.Children))
		for name, child := range s.Children {
			n.Children[name] = fromSerialized(child)
		}
	}
	return n
}

// Save writes a finalized tree to path as JSON, for later use by the
// "compare" subcommand.
func Save(root *Node, rootPath, path string) error {
	doc := serializedTree{
		Generator: "zarr-checksum-gallery",
		Created:   time.Now(),
		RootPath:  rootPath,
		Root:      toSerialized(root),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tree: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// Load reads back a tree previously written by Save.
func Load(path string) (root *Node, rootPath string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}
	var doc serializedTree
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal tree: %w", err)
	}
	return fromSerialized(doc.Root), doc.RootPath, nil
}
