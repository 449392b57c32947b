package digest

import (
	"strings"
	"testing"
)

func TestFile_EmptyReaderMatchesKnownMD5(t *testing.T) {
	hex, n, err := File(strings.NewReader(""))
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if n != 0 {
		t.Errorf("n = %d, want 0", n)
	}
	if hex != "d41d8cd98f00b204e9800998ecf8427e" {
		t.Errorf("hex = %q, want the MD5 of the empty string", hex)
	}
}

func TestFile_TwoByteContentMatchesKnownMD5(t *testing.T) {
	hex, n, err := File(strings.NewReader("hi"))
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if n != 2 {
		t.Errorf("n = %d, want 2", n)
	}
	if hex != "49f68a5c8493ec2c0bf489821c21fc3b" {
		t.Errorf("hex = %q, want 49f68a5c8493ec2c0bf489821c21fc3b", hex)
	}
}

func TestUpdate_AssociativeOverConcatenation(t *testing.T) {
	s1 := New()
	s1.Update([]byte("ab"))
	s1.Update([]byte("cd"))

	s2 := New()
	s2.Update([]byte("abcd"))

	if Hex(s1.Finalize()) != Hex(s2.Finalize()) {
		t.Error("splitting an Update call changed the final digest")
	}
}

func TestString_MatchesFileDigestOfSameBytes(t *testing.T) {
	fromString := String("hi")
	fromFile, _, err := File(strings.NewReader("hi"))
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if fromString != fromFile {
		t.Errorf("String() = %q, File() = %q, want equal", fromString, fromFile)
	}
}
