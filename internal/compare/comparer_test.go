package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fsindex/internal/hash"
	"fsindex/internal/tree"
)

func snapshot(t *testing.T, sizes map[string]int64) *tree.MerkleTree {
	t.Helper()
	files := make(map[string]tree.FileData, len(sizes))
	for p, size := range sizes {
		files[p] = tree.FileData{Hash: hash.HashEntry(p, size), Size: size}
	}
	mt, err := tree.Build(files, "Root")
	require.NoError(t, err)
	return mt
}

func changedPaths(changes []Change) []string {
	out := make([]string, 0, len(changes))
	for _, c := range changes {
		out = append(out, c.Path)
	}
	return out
}

func TestCompare_NoChanges(t *testing.T) {
	sizes := map[string]int64{"Root/a.txt": 1, "Root/d/b.txt": 2}
	result := Compare(snapshot(t, sizes), snapshot(t, sizes))

	assert.False(t, result.HasChanges())
	assert.Equal(t, "No changes detected.", FormatReport(result))
}

func TestCompare_AddedModifiedDeleted(t *testing.T) {
	oldTree := snapshot(t, map[string]int64{
		"Root/keep.txt":   1,
		"Root/grow.txt":   10,
		"Root/gone.txt":   5,
		"Root/x/also.txt": 7,
	})
	newTree := snapshot(t, map[string]int64{
		"Root/keep.txt":  1,
		"Root/grow.txt":  20,
		"Root/new.txt":   3,
		"Root/y/new.txt": 4,
	})

	result := Compare(oldTree, newTree)

	require.True(t, result.HasChanges())
	assert.Equal(t, []string{"Root/new.txt", "Root/y/new.txt"}, changedPaths(result.Added))
	assert.Equal(t, []string{"Root/grow.txt"}, changedPaths(result.Modified))
	assert.Equal(t, []string{"Root/gone.txt", "Root/x/also.txt"}, changedPaths(result.Deleted))
	assert.Empty(t, result.Moved)

	assert.Equal(t, int64(10), result.Modified[0].OldData.Size)
	assert.Equal(t, int64(20), result.Modified[0].NewData.Size)
}

func TestCompare_Moves(t *testing.T) {
	oldTree := snapshot(t, map[string]int64{
		"Root/a/file6.txt": 75,
		"Root/b/file6.txt": 75,
		"Root/c/other.txt": 9,
	})
	newTree := snapshot(t, map[string]int64{
		"Root/z/file6.txt": 75,
		"Root/b/file6.txt": 75,
		"Root/c/other.txt": 10,
		"Root/d/other.txt": 9,
	})

	result := Compare(oldTree, newTree)

	require.Len(t, result.Moved, 1)
	assert.Equal(t, "Root/a/file6.txt", result.Moved[0].From)
	assert.Equal(t, "Root/z/file6.txt", result.Moved[0].Path)

	// other.txt changed size in place, and a new 9 KB copy appeared.
	assert.Equal(t, []string{"Root/c/other.txt"}, changedPaths(result.Modified))
	assert.Equal(t, []string{"Root/d/other.txt"}, changedPaths(result.Added))
	assert.Empty(t, result.Deleted)
}

func TestFormatReport(t *testing.T) {
	oldTree := snapshot(t, map[string]int64{"Root/a.txt": 1, "Root/b.txt": 2, "Root/m/c.txt": 3})
	newTree := snapshot(t, map[string]int64{"Root/a.txt": 5, "Root/n/c.txt": 3, "Root/d.txt": 4})

	report := FormatReport(Compare(oldTree, newTree))

	assert.Contains(t, report, "ADDED (1 files):\n  + Root/d.txt (4 KB)")
	assert.Contains(t, report, "MODIFIED (1 files):\n  ~ Root/a.txt (1 KB -> 5 KB)")
	assert.Contains(t, report, "MOVED (1 files):\n  > Root/m/c.txt -> Root/n/c.txt")
	assert.Contains(t, report, "DELETED (1 files):\n  - Root/b.txt (2 KB)")
	assert.Contains(t, report, "Summary: 1 added, 1 modified, 1 moved, 1 deleted")
}
