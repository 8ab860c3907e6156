package index

import (
	"fmt"
	"io"
	"strings"

	"fsindex/internal/fsnode"
)

// PrintDirectory writes the subtree rooted at node in depth-first pre-order,
// indenting two spaces per level. A nil node prints the whole tree.
func (idx *Index) PrintDirectory(w io.Writer, node fsnode.Node, level int) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if node == nil {
		node = idx.root
	}
	printNode(w, node, level)
}

func printNode(w io.Writer, node fsnode.Node, level int) {
	indent := strings.Repeat(" ", level*2)
	fmt.Fprintf(w, "%s%s (%s, Size: %d KB)\n", indent, node.Name(), node.Kind(), node.Size())

	if dir, ok := node.(*fsnode.Directory); ok {
		for _, child := range dir.Children() {
			printNode(w, child, level+1)
		}
	}
}
