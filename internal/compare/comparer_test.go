package compare

import (
	"testing"

	"zarr-checksum-gallery/internal/checksum"
	"zarr-checksum-gallery/internal/tree"
)

func buildTree(t *testing.T, entries ...checksum.Entry) *tree.Node {
	b := tree.New()
	for _, e := range entries {
		if err := b.Insert(e); err != nil {
			t.Fatalf("Insert(%s): %v", e.RelPath, err)
		}
	}
	b.Finalize(nil)
	return b.Root()
}

func TestCompare_NoChanges(t *testing.T) {
	old := buildTree(t, checksum.Entry{RelPath: "a.txt", DigestHex: "1111", Size: 1})
	now := buildTree(t, checksum.Entry{RelPath: "a.txt", DigestHex: "1111", Size: 1})

	result := Compare(old, now)
	if result.HasChanges() {
		t.Fatalf("expected no changes, got %+v", result)
	}
}

func TestCompare_AddedModifiedDeleted(t *testing.T) {
	old := buildTree(t,
		checksum.Entry{RelPath: "a.txt", DigestHex: "1111", Size: 1},
		checksum.Entry{RelPath: "b.txt", DigestHex: "2222", Size: 2},
	)
	now := buildTree(t,
		checksum.Entry{RelPath: "a.txt", DigestHex: "9999", Size: 1}, // modified
		checksum.Entry{RelPath: "c.txt", DigestHex: "3333", Size: 3}, // added
	)

	result := Compare(old, now)
	if len(result.Added) != 1 || result.Added[0].Path != "c.txt" {
		t.Errorf("Added = %+v, want [c.txt]", result.Added)
	}
	if len(result.Modified) != 1 || result.Modified[0].Path != "a.txt" {
		t.Errorf("Modified = %+v, want [a.txt]", result.Modified)
	}
	if len(result.Deleted) != 1 || result.Deleted[0].Path != "b.txt" {
		t.Errorf("Deleted = %+v, want [b.txt]", result.Deleted)
	}
}

func TestFormatReport_NoChanges(t *testing.T) {
	result := &Result{}
	if got := FormatReport(result); got != "No changes detected." {
		t.Errorf("FormatReport() = %q", got)
	}
}
