package strategy

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// randomTree generates a bounded random directory tree under root: depth
// at most maxDepth, at most maxBranch entries per directory, file content
// at most maxBytes long. Returns the filesystem paths of every file
// written, for nothing more than diagnostics on failure.
func randomTree(t *testing.T, rng *rand.Rand, root string, depth, maxDepth, maxBranch, maxBytes int) []string {
	var written []string
	if depth >= maxDepth {
		return written
	}
	n := rng.Intn(maxBranch + 1)
	for i := 0; i < n; i++ {
		if rng.Intn(3) == 0 && depth < maxDepth-1 {
			dir := filepath.Join(root, fmt.Sprintf("dir%d", i))
			require.NoError(t, os.Mkdir(dir, 0755))
			written = append(written, randomTree(t, rng, dir, depth+1, maxDepth, maxBranch, maxBytes)...)
			continue
		}
		size := rng.Intn(maxBytes + 1)
		content := make([]byte, size)
		rng.Read(content)
		path := filepath.Join(root, fmt.Sprintf("file%d.bin", i))
		require.NoError(t, os.WriteFile(path, content, 0644))
		written = append(written, path)
	}
	return written
}

// TestStrategies_AgreeOnRandomTrees builds bounded random trees (depth up
// to 6, branching up to 8, file sizes up to 64 KiB) and checks that every
// strategy's root checksum string agrees with IterBreadth's, the same
// property TestStrategies_AgreeOnSameTree checks for one fixed tree.
func TestStrategies_AgreeOnRandomTrees(t *testing.T) {
	const (
		trials    = 12
		maxDepth  = 6
		maxBranch = 8
		maxBytes  = 64 * 1024
	)

	for trial := 0; trial < trials; trial++ {
		rng := rand.New(rand.NewSource(int64(trial) * 104729))
		root := t.TempDir()
		randomTree(t, rng, root, 0, maxDepth, maxBranch, maxBytes)

		opts := baseOptions(root)

		breadth, _, err := IterBreadth(opts)
		require.NoError(t, err)
		want := breadth.String()

		depth, err := IterDepth(opts)
		require.NoError(t, err)
		require.Equal(t, want, depth.String(), "trial %d: depth-first", trial)

		rec, err := Recursive(opts)
		require.NoError(t, err)
		require.Equal(t, want, rec.String(), "trial %d: recursive", trial)

		pool, _, err := PoolTree(opts)
		require.NoError(t, err)
		require.Equal(t, want, pool.String(), "trial %d: fastio", trial)

		async, _, err := AsyncTree(opts)
		require.NoError(t, err)
		require.Equal(t, want, async.String(), "trial %d: fastasync", trial)

		arc, err := CollapseArc(opts)
		require.NoError(t, err)
		require.Equal(t, want, arc.String(), "trial %d: collapsio-arc", trial)

		mpsc, err := CollapseMPSC(opts)
		require.NoError(t, err)
		require.Equal(t, want, mpsc.String(), "trial %d: collapsio-mpsc", trial)
	}
}
