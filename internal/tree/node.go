package tree

// FileData is the snapshot record of one indexed file.
type FileData struct {
	Hash string
	Size int64 // KB
}

// MerkleTree is a digest over every indexed file, keyed by full path.
type MerkleTree struct {
	Digest    string
	RootName  string
	TotalSize int64
	Files     map[string]FileData // path -> FileData
}
