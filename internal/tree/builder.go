package tree

import (
	"encoding/hex"
	"fmt"
	"sort"

	mt "github.com/txaty/go-merkletree"

	"fsindex/internal/hash"
	"fsindex/internal/index"
)

// leaf adapts a file record to go-merkletree's DataBlock.
type leaf struct {
	path string
	data FileData
}

func (l leaf) Serialize() ([]byte, error) {
	return []byte(l.path + "\x00" + l.data.Hash), nil
}

// FromIndex collects every indexed file keyed by its full path.
func FromIndex(idx *index.Index) map[string]FileData {
	files := make(map[string]FileData)
	for _, e := range idx.Files() {
		p := e.Path()
		files[p] = FileData{
			Hash: hash.HashEntry(p, e.File.Size()),
			Size: e.File.Size(),
		}
	}
	return files
}

// Build computes a Merkle digest over files. Paths are sorted so the digest
// does not depend on map order. go-merkletree needs at least two blocks, so
// an empty tree hashes a fixed marker and a single file uses its own hash.
func Build(files map[string]FileData, rootName string) (*MerkleTree, error) {
	var totalSize int64
	for _, fileData := range files {
		totalSize += fileData.Size
	}

	result := &MerkleTree{
		RootName:  rootName,
		TotalSize: totalSize,
		Files:     files,
	}

	switch len(files) {
	case 0:
		rootHash, err := hash.XXHashFunc([]byte("empty-tree"))
		if err != nil {
			return nil, fmt.Errorf("failed to create empty tree hash: %w", err)
		}
		result.Digest = hex.EncodeToString(rootHash)
		result.Files = make(map[string]FileData)
		return result, nil
	case 1:
		for _, fileData := range files {
			result.Digest = fileData.Hash
		}
		return result, nil
	}

	// Sort paths alphabetically for deterministic ordering
	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	blocks := make([]mt.DataBlock, 0, len(paths))
	for _, path := range paths {
		blocks = append(blocks, leaf{path: path, data: files[path]})
	}

	tree, err := mt.New(&mt.Config{
		HashFunc: hash.XXHashFunc,
		Mode:     mt.ModeTreeBuild,
	}, blocks)
	if err != nil {
		return nil, fmt.Errorf("failed to build merkle tree: %w", err)
	}

	result.Digest = hex.EncodeToString(tree.Root)
	return result, nil
}
