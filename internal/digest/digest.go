// Package digest implements the fixed-length byte-hash primitive every
// traversal strategy uses to fingerprint a file's contents.
//
// All strategies must agree bit-for-bit on the root checksum, which means
// they must all hash file bytes with the same algorithm. This package pins
// that algorithm to MD5 so swapping the underlying hash.Hash implementation
// can never silently desynchronize two strategies.
package digest

import (
	"crypto/md5"
	"encoding/hex"
	"hash"
	"io"
)

// Size is the length, in bytes, of a finalized digest.
const Size = md5.Size

// State is a streaming digest accumulator. Its zero value is not usable;
// construct one with New.
type State struct {
	h hash.Hash
}

// New returns a fresh digest accumulator.
func New() *State {
	return &State{h: md5.New()}
}

// Update feeds bytes into the digest. It is associative over concatenation:
// Update(a); Update(b) produces the same final digest as Update(a+b).
func (s *State) Update(p []byte) {
	s.h.Write(p)
}

// Finalize returns the 16-byte digest of everything written so far.
func (s *State) Finalize() [Size]byte {
	var out [Size]byte
	copy(out[:], s.h.Sum(nil))
	return out
}

// Hex renders a finalized digest as 32 lowercase hex characters.
func Hex(d [Size]byte) string {
	return hex.EncodeToString(d[:])
}

// String computes the MD5 digest of a byte string directly, rendered as hex.
// This is the primitive the combine function uses to fold a directory's
// child descriptors into its own digest.
func String(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// File streams a reader's bytes through MD5 and returns the hex digest and
// the number of bytes read. Buffering is left to the standard io.Copy
// default, which satisfies the "any value >= 4 KiB" requirement.
func File(r io.Reader) (string, int64, error) {
	h := md5.New()
	n, err := io.Copy(h, r)
	if err != nil {
		return "", 0, err
	}
	return hex.EncodeToString(h.Sum(nil)), n, nil
}
