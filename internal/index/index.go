// Package index owns the simulated file tree and keeps the name, extension
// and size indices that the query operations are built on.
//
// The indices are derived state: they only grow, and only as a side effect of
// Insert. Every inserted file appears exactly once in each of them, paired
// with the directory it was attached to.
package index

import (
	"fmt"
	"sync"

	"fsindex/internal/fsnode"
)

// UnknownExtension is the type index key for files without extension metadata.
const UnknownExtension = "unknown"

// DefaultRootName names the root directory when none is configured.
const DefaultRootName = "Root"

// Entry is one indexed occurrence of a file together with its parent.
type Entry struct {
	File *fsnode.File
	Dir  *fsnode.Directory
}

func (e Entry) Path() string {
	return e.Dir.Path() + "/" + e.File.Name()
}

func (e Entry) match() Match {
	return Match{Path: e.Path(), Size: e.File.Size()}
}

// Match is a query result: the full path of a file and its size in KB.
type Match struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}

func (m Match) String() string {
	return fmt.Sprintf("%s (%d KB)", m.Path, m.Size)
}

// buckets is a multimap that remembers the order in which keys first appeared.
type buckets[K comparable] struct {
	keys    []K
	entries map[K][]Entry
}

func newBuckets[K comparable]() *buckets[K] {
	return &buckets[K]{entries: make(map[K][]Entry)}
}

func (b *buckets[K]) add(key K, e Entry) {
	if _, ok := b.entries[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.entries[key] = append(b.entries[key], e)
}

func (b *buckets[K]) get(key K) []Entry {
	return b.entries[key]
}

type Index struct {
	mu     sync.RWMutex
	root   *fsnode.Directory
	byName *buckets[string]
	byType *buckets[string]
	bySize *buckets[int64]
}

// New creates an empty tree whose root directory is called rootName.
func New(rootName string) *Index {
	if rootName == "" {
		rootName = DefaultRootName
	}
	return &Index{
		root:   fsnode.NewDirectory(rootName),
		byName: newBuckets[string](),
		byType: newBuckets[string](),
		bySize: newBuckets[int64](),
	}
}

func (idx *Index) Root() *fsnode.Directory {
	return idx.root
}

// Insert walks segments from the root, creating any missing directories, and
// attaches file to the last one. Existing directories are reused. An empty
// segment list places the file directly under the root.
//
// Insert fails only when a segment names an existing file; nothing is
// created in that case.
func (idx *Index) Insert(segments []string, file *fsnode.File) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	current := idx.root
	for i, segment := range segments {
		child, ok := current.Child(segment)
		if !ok {
			dir := fsnode.NewDirectory(segment)
			if err := current.AddChild(dir); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", segment, err)
			}
			current = dir
			continue
		}
		dir, isDir := child.(*fsnode.Directory)
		if !isDir {
			return fmt.Errorf("failed to insert %q: %s is a file: %w",
				file.Name(), fsnode.JoinPath(segments[:i+1]), fsnode.ErrInvalidOperation)
		}
		current = dir
	}

	if err := current.AddChild(file); err != nil {
		return fmt.Errorf("failed to attach %q: %w", file.Name(), err)
	}
	idx.indexFile(file, current)
	return nil
}

// indexFile must be called with mu held for writing.
func (idx *Index) indexFile(file *fsnode.File, dir *fsnode.Directory) {
	e := Entry{File: file, Dir: dir}

	idx.byName.add(file.Name(), e)

	ext, ok := file.Extension()
	if !ok {
		ext = UnknownExtension
	}
	idx.byType.add(ext, e)

	idx.bySize.add(file.Size(), e)
}

// Lookup resolves a node below the root. No segments returns the root.
func (idx *Index) Lookup(segments ...string) (fsnode.Node, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var node fsnode.Node = idx.root
	for _, segment := range segments {
		dir, ok := node.(*fsnode.Directory)
		if !ok {
			return nil, false
		}
		if node, ok = dir.Child(segment); !ok {
			return nil, false
		}
	}
	return node, true
}

// Files returns every indexed entry, grouped by name in first-seen order.
func (idx *Index) Files() []Entry {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var all []Entry
	for _, name := range idx.byName.keys {
		all = append(all, idx.byName.get(name)...)
	}
	return all
}

type Stats struct {
	Files       int
	Directories int
	TotalSize   int64
}

// Stats counts the nodes reachable from the root. The root counts as a
// directory.
func (idx *Index) Stats() Stats {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var s Stats
	countNodes(idx.root, &s)
	return s
}

func countNodes(node fsnode.Node, s *Stats) {
	dir, ok := node.(*fsnode.Directory)
	if !ok {
		s.Files++
		s.TotalSize += node.Size()
		return
	}
	s.Directories++
	for _, child := range dir.Children() {
		countNodes(child, s)
	}
}
