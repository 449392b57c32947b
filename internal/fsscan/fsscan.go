// Package fsscan lists a directory's immediate entries and classifies
// each one as a regular file, a subdirectory, or a symlink (skipped
// without recursion or hashing). Every traversal strategy starts each
// directory step here so the classification and error-wrapping rules
// stay identical across strategies.
package fsscan

import (
	"os"
	"path/filepath"
	"sort"

	"zarr-checksum-gallery/internal/zarrerr"
)

// Kind classifies one directory entry.
type Kind int

const (
	KindFile Kind = iota
	KindDir
	KindSkip // symlink or other non-regular, non-directory entry
)

// Entry is one classified child of a directory, with its filesystem path
// (the listed directory's path joined with Name) and size (meaningful
// only for KindFile).
type Entry struct {
	Name string
	Path string
	Kind Kind
	Size int64
}

// List reads dirPath's immediate children and classifies each one.
// Entries are returned sorted by Name so callers that need lexicographic
// order (every strategy does, eventually) don't need a second sort pass.
func List(dirPath string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, &zarrerr.ListFailureError{Path: dirPath, Err: err}
	}

	out := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		childPath := filepath.Join(dirPath, de.Name())
		info, err := de.Info()
		if err != nil {
			return nil, &zarrerr.StatFailureError{Path: childPath, Err: err}
		}

		e := Entry{Name: de.Name(), Path: childPath}
		switch {
		case info.Mode()&os.ModeSymlink != 0:
			e.Kind = KindSkip
		case info.IsDir():
			e.Kind = KindDir
		case info.Mode().IsRegular():
			e.Kind = KindFile
			e.Size = info.Size()
		default:
			e.Kind = KindSkip
		}
		out = append(out, e)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// CheckRoot validates that rootPath exists, is readable, and is a
// directory, returning an InvalidRootError describing the first problem
// found.
func CheckRoot(rootPath string) error {
	info, err := os.Stat(rootPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &zarrerr.InvalidRootError{Path: rootPath, Reason: "does not exist"}
		}
		return &zarrerr.InvalidRootError{Path: rootPath, Reason: err.Error()}
	}
	if !info.IsDir() {
		return &zarrerr.InvalidRootError{Path: rootPath, Reason: "not a directory"}
	}
	if _, err := os.ReadDir(rootPath); err != nil {
		return &zarrerr.InvalidRootError{Path: rootPath, Reason: "not readable: " + err.Error()}
	}
	return nil
}
