package compare

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"fsindex/internal/tree"
)

type ChangeType string

const (
	Added    ChangeType = "ADDED"
	Modified ChangeType = "MODIFIED"
	Deleted  ChangeType = "DELETED"
	Moved    ChangeType = "MOVED"
)

type Change struct {
	Type ChangeType
	Path string
	// From is the old path of a moved file.
	From    string
	OldData *tree.FileData
	NewData *tree.FileData
}

type CompareResult struct {
	Added    []Change
	Modified []Change
	Deleted  []Change
	Moved    []Change
}

func (r *CompareResult) HasChanges() bool {
	return len(r.Added) > 0 || len(r.Modified) > 0 || len(r.Deleted) > 0 || len(r.Moved) > 0
}

// identity is how a file is recognised across directories: the same rule
// duplicate detection uses.
type identity struct {
	name string
	size int64
}

func identityOf(p string, fd tree.FileData) identity {
	return identity{name: path.Base(p), size: fd.Size}
}

// Compare reports the differences between two snapshots. A path present in
// both with another size is modified. A deleted and an added file sharing
// name and size are paired up as a move, in path order.
func Compare(oldTree, newTree *tree.MerkleTree) *CompareResult {
	result := &CompareResult{
		Added:    make([]Change, 0),
		Modified: make([]Change, 0),
		Deleted:  make([]Change, 0),
		Moved:    make([]Change, 0),
	}

	if oldTree.Digest != "" && oldTree.Digest == newTree.Digest {
		return result
	}

	var added, deleted []Change
	for p, newData := range newTree.Files {
		newCopy := newData
		oldData, exists := oldTree.Files[p]
		if !exists {
			added = append(added, Change{Type: Added, Path: p, NewData: &newCopy})
			continue
		}
		if oldData.Hash != newData.Hash || oldData.Size != newData.Size {
			oldCopy := oldData
			result.Modified = append(result.Modified, Change{
				Type:    Modified,
				Path:    p,
				OldData: &oldCopy,
				NewData: &newCopy,
			})
		}
	}
	for p, oldData := range oldTree.Files {
		if _, exists := newTree.Files[p]; !exists {
			oldCopy := oldData
			deleted = append(deleted, Change{Type: Deleted, Path: p, OldData: &oldCopy})
		}
	}

	sortByPath(added)
	sortByPath(deleted)
	sortByPath(result.Modified)

	// Pair moves before classifying the leftovers.
	pending := make(map[identity][]int)
	for i, c := range deleted {
		id := identityOf(c.Path, *c.OldData)
		pending[id] = append(pending[id], i)
	}
	moved := make(map[int]bool)
	for _, c := range added {
		id := identityOf(c.Path, *c.NewData)
		if queue := pending[id]; len(queue) > 0 {
			from := deleted[queue[0]]
			pending[id] = queue[1:]
			moved[queue[0]] = true
			result.Moved = append(result.Moved, Change{
				Type:    Moved,
				Path:    c.Path,
				From:    from.Path,
				OldData: from.OldData,
				NewData: c.NewData,
			})
			continue
		}
		result.Added = append(result.Added, c)
	}
	for i, c := range deleted {
		if !moved[i] {
			result.Deleted = append(result.Deleted, c)
		}
	}

	return result
}

func sortByPath(changes []Change) {
	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Path < changes[j].Path
	})
}

func FormatReport(result *CompareResult) string {
	if !result.HasChanges() {
		return "No changes detected."
	}

	var b strings.Builder
	b.WriteString("Changes detected:\n\n")

	if len(result.Added) > 0 {
		fmt.Fprintf(&b, "ADDED (%d files):\n", len(result.Added))
		for _, change := range result.Added {
			fmt.Fprintf(&b, "  + %s (%d KB)\n", change.Path, change.NewData.Size)
		}
		b.WriteString("\n")
	}

	if len(result.Modified) > 0 {
		fmt.Fprintf(&b, "MODIFIED (%d files):\n", len(result.Modified))
		for _, change := range result.Modified {
			fmt.Fprintf(&b, "  ~ %s (%d KB -> %d KB)\n", change.Path, change.OldData.Size, change.NewData.Size)
		}
		b.WriteString("\n")
	}

	if len(result.Moved) > 0 {
		fmt.Fprintf(&b, "MOVED (%d files):\n", len(result.Moved))
		for _, change := range result.Moved {
			fmt.Fprintf(&b, "  > %s -> %s\n", change.From, change.Path)
		}
		b.WriteString("\n")
	}

	if len(result.Deleted) > 0 {
		fmt.Fprintf(&b, "DELETED (%d files):\n", len(result.Deleted))
		for _, change := range result.Deleted {
			fmt.Fprintf(&b, "  - %s (%d KB)\n", change.Path, change.OldData.Size)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Summary: %d added, %d modified, %d moved, %d deleted\n",
		len(result.Added), len(result.Modified), len(result.Moved), len(result.Deleted))

	return b.String()
}
