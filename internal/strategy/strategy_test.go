package strategy

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"zarr-checksum-gallery/internal/logging"
)

func TestJoinRelpath_RejectsInvalidComponent(t *testing.T) {
	_, err := joinRelpath("d", "e\x00f")
	require.Error(t, err)

	got, err := joinRelpath("d", "e")
	require.NoError(t, err)
	require.Equal(t, "d/e", got)
}

func writeTree(t *testing.T, files map[string]string) string {
	root := t.TempDir()
	for relpath, content := range files {
		full := filepath.Join(root, relpath)
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func baseOptions(root string) Options {
	return Options{RootPath: root, Threads: 4, Workers: 4, Logger: logging.Default()}
}

func TestStrategies_AgreeOnSameTree(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.txt":      "",
		"b.txt":      "hi",
		"d/x":        "",
		"d/e/y":      "some bytes",
		"other.data": "more bytes here",
	})
	opts := baseOptions(root)

	breadthResult, _, err := IterBreadth(opts)
	require.NoError(t, err)

	depthResult, err := IterDepth(opts)
	require.NoError(t, err)
	recursiveResult, err := Recursive(opts)
	require.NoError(t, err)
	poolResult, _, err := PoolTree(opts)
	require.NoError(t, err)
	asyncResult, _, err := AsyncTree(opts)
	require.NoError(t, err)
	arcResult, err := CollapseArc(opts)
	require.NoError(t, err)
	mpscResult, err := CollapseMPSC(opts)
	require.NoError(t, err)

	want := breadthResult.String()
	got := map[string]string{
		"iter-depth":      depthResult.String(),
		"recursive-depth": recursiveResult.String(),
		"pool-tree":       poolResult.String(),
		"async-tree":      asyncResult.String(),
		"collapse-arc":    arcResult.String(),
		"collapse-mpsc":   mpscResult.String(),
	}
	for name, s := range got {
		require.Equal(t, want, s, "%s disagreed with iter-breadth", name)
	}
}

func TestStrategies_EmptyDirectory(t *testing.T) {
	root := t.TempDir()
	opts := baseOptions(root)

	result, _, err := IterBreadth(opts)
	if err != nil {
		t.Fatalf("IterBreadth: %v", err)
	}
	if result.FileCount != 0 || result.ByteCount != 0 {
		t.Fatalf("got fc=%d bc=%d, want 0,0", result.FileCount, result.ByteCount)
	}
}

func TestStrategies_ExcludeDotfiles(t *testing.T) {
	withDotfile := writeTree(t, map[string]string{
		".git/config": "ignored",
		"data.bin":    "payload",
	})
	without := writeTree(t, map[string]string{
		"data.bin": "payload",
	})

	optsExcluded := baseOptions(withDotfile)
	optsExcluded.ExcludeDotfiles = []string{".dandi", ".datalad", ".git", ".gitattributes", ".gitmodules"}

	withResult, _, err := IterBreadth(optsExcluded)
	if err != nil {
		t.Fatalf("IterBreadth(with dotfile): %v", err)
	}
	withoutResult, _, err := IterBreadth(baseOptions(without))
	if err != nil {
		t.Fatalf("IterBreadth(without dotfile): %v", err)
	}

	if withResult.String() != withoutResult.String() {
		t.Errorf("excluding .git did not match the dotfile-free tree: %q vs %q", withResult.String(), withoutResult.String())
	}
}

func TestStrategies_Determinism(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.txt": "1",
		"b/c":   "2",
	})
	opts := baseOptions(root)

	r1, _, err := PoolTree(opts)
	if err != nil {
		t.Fatalf("PoolTree: %v", err)
	}
	r2, _, err := PoolTree(opts)
	if err != nil {
		t.Fatalf("PoolTree: %v", err)
	}
	if r1.String() != r2.String() {
		t.Errorf("two runs diverged: %q vs %q", r1.String(), r2.String())
	}
}

func TestStrategies_AddingFileChangesDigest(t *testing.T) {
	root := writeTree(t, map[string]string{"a.txt": "x"})
	opts := baseOptions(root)
	before, _, err := IterBreadth(opts)
	if err != nil {
		t.Fatalf("IterBreadth: %v", err)
	}

	if err := os.WriteFile(filepath.Join(root, "b.txt"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	after, _, err := IterBreadth(opts)
	if err != nil {
		t.Fatalf("IterBreadth: %v", err)
	}
	if before.String() == after.String() {
		t.Error("adding a file should change the root digest")
	}
}

func TestTreePrint_PrintsEveryNodeThenRootLine(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.txt": "",
		"d/x":   "y",
	})
	opts := baseOptions(root)
	var buf bytes.Buffer
	result, _, err := TreePrint(opts, &buf)
	if err != nil {
		t.Fatalf("TreePrint: %v", err)
	}
	out := buf.String()
	if out == "" {
		t.Fatal("expected tree output, got none")
	}
	if !bytes.Contains(buf.Bytes(), []byte("a.txt\t")) {
		t.Errorf("output missing a.txt line: %q", out)
	}
	if !bytes.Contains(buf.Bytes(), []byte("d\t")) {
		t.Errorf("output missing d directory line: %q", out)
	}
	if result.FileCount != 2 {
		t.Errorf("got FileCount=%d, want 2", result.FileCount)
	}
}
