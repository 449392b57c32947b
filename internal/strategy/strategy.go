// Package strategy implements the gallery of interchangeable traversal and
// aggregation engines that walk a directory tree and combine per-file
// digests into a single root checksum. Every strategy in this package must
// agree bit-for-bit with every other one on the same input.
package strategy

import (
	"os"
	"path/filepath"

	"zarr-checksum-gallery/internal/checksum"
	"zarr-checksum-gallery/internal/digest"
	"zarr-checksum-gallery/internal/logging"
	"zarr-checksum-gallery/internal/pathpolicy"
	"zarr-checksum-gallery/internal/zarrerr"
)

// Options configures a traversal run. RootPath is the absolute or
// relative filesystem path to walk. Threads and Workers are strategy-
// specific concurrency knobs; strategies that don't use one ignore it.
type Options struct {
	RootPath        string
	ExcludeDotfiles []string // nil means dotfile exclusion is off
	Threads         int
	Workers         int
	Logger          *logging.Logger
}

// excluded reports whether name is in o's dotfile-exclusion set; it is
// always false when exclusion is off.
func (o Options) excluded(name string) bool {
	if o.ExcludeDotfiles == nil {
		return false
	}
	return pathpolicy.ExcludedByDotfiles(name, o.ExcludeDotfiles)
}

// Result is a run's final root checksum and aggregate counts.
type Result struct {
	DigestHex string
	FileCount int64
	ByteCount int64
}

// String renders Result in the stdout format: "<hex>-<count>--<bytes>".
func (r Result) String() string {
	return checksum.FullString(r.DigestHex, r.FileCount, r.ByteCount)
}

// hashFile opens path, streams it through the digest primitive, and
// returns the hex digest and byte count. I/O failures are wrapped as a
// ReadFailureError.
func hashFile(path string) (digestHex string, size int64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, &zarrerr.ReadFailureError{Path: path, Err: err}
	}
	defer f.Close()

	digestHex, size, err = digest.File(f)
	if err != nil {
		return "", 0, &zarrerr.ReadFailureError{Path: path, Err: err}
	}
	return digestHex, size, nil
}

// joinRelpath appends name to a "/"-joined relative path; parent == ""
// denotes the root. name is validated as a single path component first,
// guarding against the pathological entries (embedded "/", NUL, "." or
// "..") that PathPolicyError exists for — none of these can occur from a
// real os.ReadDir result, but every strategy validates at the same point
// rather than trusting the filesystem.
func joinRelpath(parent, name string) (string, error) {
	if !pathpolicy.ValidComponent(name) {
		return "", &zarrerr.PathPolicyError{Path: joinRaw(parent, name), Reason: "invalid path component: " + name}
	}
	return joinRaw(parent, name), nil
}

func joinRaw(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}

// fullPath resolves a relpath against the traversal root into a
// filesystem path for I/O; it is relative whenever root is.
func fullPath(root, relpath string) string {
	if relpath == "" {
		return root
	}
	return filepath.Join(root, relpath)
}
