package tree

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

type SerializedFile struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
	Hash string `json:"hash"`
}

type SerializedTree struct {
	Generator string           `json:"generator"`
	Created   time.Time        `json:"created"`
	Root      string           `json:"root"`
	Size      string           `json:"size"`
	Digest    string           `json:"digest"`
	Files     []SerializedFile `json:"files"`
}

// formatSize renders a size given in KB.
func formatSize(kb int64) string {
	const (
		MB = 1024
		GB = MB * 1024
	)

	switch {
	case kb >= GB:
		return fmt.Sprintf("%.2f GB", float64(kb)/float64(GB))
	case kb >= MB:
		return fmt.Sprintf("%.2f MB", float64(kb)/float64(MB))
	default:
		return fmt.Sprintf("%d KB", kb)
	}
}

func Save(tree *MerkleTree, path string) error {
	serialized := SerializedTree{
		Generator: "fsindex",
		Created:   time.Now(),
		Root:      tree.RootName,
		Size:      formatSize(tree.TotalSize),
		Digest:    tree.Digest,
		Files:     make([]SerializedFile, 0, len(tree.Files)),
	}

	for p, fd := range tree.Files {
		serialized.Files = append(serialized.Files, SerializedFile{Path: p, Size: fd.Size, Hash: fd.Hash})
	}
	sort.Slice(serialized.Files, func(i, j int) bool {
		return serialized.Files[i].Path < serialized.Files[j].Path
	})

	data, err := json.MarshalIndent(serialized, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tree: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

func Load(path string) (*MerkleTree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var serialized SerializedTree
	if err := json.Unmarshal(data, &serialized); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tree: %w", err)
	}

	var totalSize int64
	files := make(map[string]FileData, len(serialized.Files))
	for _, f := range serialized.Files {
		totalSize += f.Size
		files[f.Path] = FileData{Hash: f.Hash, Size: f.Size}
	}

	return &MerkleTree{
		Digest:    serialized.Digest,
		RootName:  serialized.Root,
		TotalSize: totalSize,
		Files:     files,
	}, nil
}
