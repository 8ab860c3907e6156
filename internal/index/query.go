package index

import (
	"errors"
	"fmt"
	"path"
	"slices"

	"fsindex/internal/fsnode"
)

// ErrBadPattern is returned by WildcardSearch for malformed glob patterns.
var ErrBadPattern = errors.New("bad wildcard pattern")

// FindByName returns every file named exactly name, in insertion order.
func (idx *Index) FindByName(name string) []Match {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return matches(idx.byName.get(name))
}

// WildcardSearch matches pattern (shell glob syntax) against file names only.
// Names are visited in the order they were first indexed.
func (idx *Index) WildcardSearch(pattern string) ([]Match, error) {
	// path.Match validates the whole pattern even on a mismatch, so this
	// catches syntax errors on an empty index too.
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrBadPattern, pattern, err)
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	results := []Match{}
	for _, name := range idx.byName.keys {
		ok, err := path.Match(pattern, name)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrBadPattern, pattern, err)
		}
		if ok {
			results = append(results, matches(idx.byName.get(name))...)
		}
	}
	return results, nil
}

// FindByMetadata filters files by metadata. Only the "extension" criterion
// is understood; other keys are ignored.
func (idx *Index) FindByMetadata(criteria map[string]string) []Match {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	ext, ok := criteria["extension"]
	if !ok {
		return []Match{}
	}
	return matches(idx.byType.get(ext))
}

// FindBySize returns every file of exactly size KB.
func (idx *Index) FindBySize(size int64) []Match {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return matches(idx.bySize.get(size))
}

// FindBySizeRange returns every file with lo <= size <= hi. Sizes are
// visited in the order they were first indexed.
func (idx *Index) FindBySizeRange(lo, hi int64) []Match {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	results := []Match{}
	for _, size := range idx.bySize.keys {
		if size >= lo && size <= hi {
			results = append(results, matches(idx.bySize.get(size))...)
		}
	}
	return results
}

// ShortestPath is the result of FindShortestPath. Hops is the number of
// directories between the root and the file.
type ShortestPath struct {
	Path string `json:"path"`
	Hops int    `json:"hops"`
}

type frontierItem struct {
	node     fsnode.Node
	segments []string
}

// FindShortestPath does a breadth-first search from the root for a file
// called name and reports the shallowest one. Ties at the same depth go to
// whichever was reached first, following children in insertion order.
func (idx *Index) FindShortestPath(name string) (ShortestPath, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	queue := []frontierItem{{node: idx.root, segments: []string{idx.root.Name()}}}
	var best []string
	bestDepth := -1

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		// Depth counts edges from the root.
		depth := len(item.segments) - 1
		if bestDepth >= 0 && depth > bestDepth {
			break
		}

		switch n := item.node.(type) {
		case *fsnode.File:
			if n.Name() == name && (bestDepth < 0 || depth < bestDepth) {
				best = item.segments
				bestDepth = depth
			}
		case *fsnode.Directory:
			for _, child := range n.Children() {
				next := append(slices.Clone(item.segments), child.Name())
				queue = append(queue, frontierItem{node: child, segments: next})
			}
		}
	}

	if best == nil {
		return ShortestPath{}, false
	}
	return ShortestPath{Path: fsnode.JoinPath(best), Hops: bestDepth - 1}, true
}

type duplicateKey struct {
	name string
	size int64
}

// FindDuplicates reports files that share both name and size. Contents are
// never compared. The first occurrence of a group is emitted when its second
// one is found.
func (idx *Index) FindDuplicates() []Match {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	first := make(map[duplicateKey]Match)
	emitted := make(map[duplicateKey]bool)
	duplicates := []Match{}

	for _, name := range idx.byName.keys {
		for _, e := range idx.byName.get(name) {
			key := duplicateKey{name: e.File.Name(), size: e.File.Size()}
			m := e.match()

			seen, ok := first[key]
			if !ok {
				first[key] = m
				continue
			}
			if !emitted[key] {
				duplicates = append(duplicates, seen)
				emitted[key] = true
			}
			duplicates = append(duplicates, m)
		}
	}
	return duplicates
}

func matches(entries []Entry) []Match {
	results := make([]Match, 0, len(entries))
	for _, e := range entries {
		results = append(results, e.match())
	}
	return results
}
