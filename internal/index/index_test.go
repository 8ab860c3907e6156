package index

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fsindex/internal/fsnode"
)

type fixture struct {
	dirs []string
	name string
	size int64
	ext  string
}

// sampleTree mirrors the demo data set shipped with the CLI.
var sampleTree = []fixture{
	{[]string{"dir1", "subdir1"}, "file1.txt", 100, "txt"},
	{[]string{"dir1", "subdir2"}, "file1.txt", 100, "txt"},
	{[]string{"dir1", "subdir2"}, "file2.txt", 200, "txt"},
	{[]string{"dir1", "subdir1", "subdir1-1"}, "file3.jpg", 300, "jpg"},
	{[]string{"dir1", "subdir1", "subdir1-1", "subdir1-1-1"}, "file4.txt", 50, "txt"},
	{[]string{"dir2"}, "file3.jpg", 300, "jpg"},
	{[]string{"dir2", "subdir3"}, "file5.doc", 250, "doc"},
	{[]string{"dir2", "subdir3", "subdir3-1"}, "file6.txt", 75, "txt"},
	{[]string{"dir1", "subdir1"}, "file6.txt", 75, "txt"},
	{[]string{"dir3"}, "archive.zip", 500, "zip"},
}

func newFile(t *testing.T, name string, size int64, ext string) *fsnode.File {
	t.Helper()
	var meta map[string]string
	if ext != "" {
		meta = map[string]string{"extension": ext}
	}
	f, err := fsnode.NewFile(name, size, meta)
	require.NoError(t, err)
	return f
}

func build(t *testing.T, fixtures []fixture) *Index {
	t.Helper()
	idx := New("")
	for _, fx := range fixtures {
		require.NoError(t, idx.Insert(fx.dirs, newFile(t, fx.name, fx.size, fx.ext)))
	}
	return idx
}

func paths(ms []Match) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Path)
	}
	return out
}

func TestNew_DefaultRootName(t *testing.T) {
	assert.Equal(t, DefaultRootName, New("").Root().Name())
	assert.Equal(t, "vol", New("vol").Root().Name())
}

func TestInsert_RootSizeIsSumOfFiles(t *testing.T) {
	idx := build(t, sampleTree)

	var want int64
	for _, fx := range sampleTree {
		want += fx.size
	}
	assert.Equal(t, want, idx.Root().Size())
	assert.Equal(t, want, idx.Stats().TotalSize)

	dir1, ok := idx.Lookup("dir1")
	require.True(t, ok)
	assert.Equal(t, int64(100+100+200+300+50+75), dir1.Size())
}

func TestInsert_EmptySegmentsPlacesUnderRoot(t *testing.T) {
	idx := New("")
	require.NoError(t, idx.Insert(nil, newFile(t, "top.txt", 1, "txt")))

	got := idx.FindByName("top.txt")
	require.Len(t, got, 1)
	assert.Equal(t, "Root/top.txt", got[0].Path)
}

func TestInsert_ReusesDirectories(t *testing.T) {
	idx := New("")
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		require.NoError(t, idx.Insert([]string{"shared", "nested"}, newFile(t, name, 1, "txt")))
	}

	assert.Equal(t, 1, idx.Root().Len())
	shared, ok := idx.Lookup("shared")
	require.True(t, ok)
	assert.Equal(t, 1, shared.(*fsnode.Directory).Len())

	nested, ok := idx.Lookup("shared", "nested")
	require.True(t, ok)
	assert.Equal(t, 3, nested.(*fsnode.Directory).Len())

	// Root, shared and nested.
	assert.Equal(t, Stats{Files: 3, Directories: 3, TotalSize: 3}, idx.Stats())
}

func TestInsert_ThroughFileFails(t *testing.T) {
	idx := New("")
	require.NoError(t, idx.Insert([]string{"dir"}, newFile(t, "blocker", 1, "")))

	err := idx.Insert([]string{"dir", "blocker", "deeper"}, newFile(t, "x.txt", 1, "txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fsnode.ErrInvalidOperation))

	assert.Empty(t, idx.FindByName("x.txt"))
	assert.Equal(t, Stats{Files: 1, Directories: 2, TotalSize: 1}, idx.Stats())
}

func TestInsert_IndicesHoldEachFileOnce(t *testing.T) {
	idx := build(t, sampleTree)

	entries := idx.Files()
	assert.Len(t, entries, len(sampleTree))

	var typed, sized int
	for _, b := range idx.byType.entries {
		typed += len(b)
	}
	for _, b := range idx.bySize.entries {
		sized += len(b)
	}
	assert.Equal(t, len(sampleTree), typed)
	assert.Equal(t, len(sampleTree), sized)

	for _, e := range entries {
		assert.Same(t, e.Dir, e.File.Parent())
	}
}

func TestInsert_MissingExtensionIsUnknown(t *testing.T) {
	idx := New("")
	require.NoError(t, idx.Insert([]string{"bin"}, newFile(t, "Makefile", 3, "")))

	got := idx.FindByMetadata(map[string]string{"extension": UnknownExtension})
	require.Len(t, got, 1)
	assert.Equal(t, "Root/bin/Makefile", got[0].Path)
}

func TestInsert_ConcurrentWritersStayConsistent(t *testing.T) {
	idx := New("")

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				f, err := fsnode.NewFile("f.txt", int64(i), map[string]string{"extension": "txt"})
				if err != nil {
					t.Error(err)
					return
				}
				dir := []string{"w", string(rune('a' + w)), string(rune('a' + i))}
				if err := idx.Insert(dir, f); err != nil {
					t.Error(err)
				}
			}
		}(w)
	}
	wg.Wait()

	assert.Len(t, idx.FindByName("f.txt"), 200)
	assert.Len(t, idx.FindByMetadata(map[string]string{"extension": "txt"}), 200)
	assert.Equal(t, 200, idx.Stats().Files)
}

func TestLookup(t *testing.T) {
	idx := build(t, sampleTree)

	root, ok := idx.Lookup()
	require.True(t, ok)
	assert.Same(t, idx.Root(), root)

	f, ok := idx.Lookup("dir2", "file3.jpg")
	require.True(t, ok)
	assert.Equal(t, fsnode.KindFile, f.Kind())

	_, ok = idx.Lookup("dir2", "file3.jpg", "nope")
	assert.False(t, ok)
	_, ok = idx.Lookup("missing")
	assert.False(t, ok)
}

func TestPrintDirectory(t *testing.T) {
	idx := New("")
	require.NoError(t, idx.Insert([]string{"a"}, newFile(t, "one.txt", 10, "txt")))
	require.NoError(t, idx.Insert([]string{"a", "b"}, newFile(t, "two.txt", 5, "txt")))

	var buf bytes.Buffer
	idx.PrintDirectory(&buf, nil, 0)

	want := strings.Join([]string{
		"Root (Dir, Size: 15 KB)",
		"  a (Dir, Size: 15 KB)",
		"    one.txt (File, Size: 10 KB)",
		"    b (Dir, Size: 5 KB)",
		"      two.txt (File, Size: 5 KB)",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())

	sub, ok := idx.Lookup("a", "b")
	require.True(t, ok)
	buf.Reset()
	idx.PrintDirectory(&buf, sub, 0)
	assert.Equal(t, "b (Dir, Size: 5 KB)\n  two.txt (File, Size: 5 KB)\n", buf.String())
}
