package hash

import (
	"encoding/hex"
	"testing"

	"github.com/cespare/xxhash/v2"
)

func TestHashEntry_MatchesXXHash(t *testing.T) {
	hash := HashEntry("Root/dir1/file1.txt", 100)

	// Compute expected hash
	h := xxhash.New()
	h.WriteString("Root/dir1/file1.txt:100")
	expected := hex.EncodeToString(h.Sum(nil))

	if hash != expected {
		t.Errorf("Hash mismatch: expected %s, got %s", expected, hash)
	}
}

func TestHashEntry_SizeChangesHash(t *testing.T) {
	a := HashEntry("Root/a.txt", 1)
	b := HashEntry("Root/a.txt", 2)

	if a == b {
		t.Error("Different sizes should produce different hashes")
	}
}

func TestHashEntry_PathChangesHash(t *testing.T) {
	a := HashEntry("Root/a.txt", 1)
	b := HashEntry("Root/b.txt", 1)

	if a == b {
		t.Error("Different paths should produce different hashes")
	}
}

func TestHashEntry_Empty(t *testing.T) {
	hash := HashEntry("", 0)

	// Empty input should still produce a valid hash
	if len(hash) != 16 {
		t.Errorf("Expected 16 hex characters, got %d", len(hash))
	}
}

func TestXXHashFunc(t *testing.T) {
	data := []byte("test data")

	hashBytes, err := XXHashFunc(data)
	if err != nil {
		t.Fatalf("XXHashFunc failed: %v", err)
	}

	if len(hashBytes) != 8 {
		t.Errorf("Expected 8 bytes, got %d", len(hashBytes))
	}

	// Test consistency - same input should produce same output
	hashBytes2, err := XXHashFunc(data)
	if err != nil {
		t.Fatalf("XXHashFunc failed on second call: %v", err)
	}

	if hex.EncodeToString(hashBytes) != hex.EncodeToString(hashBytes2) {
		t.Error("XXHashFunc should be deterministic")
	}
}

func TestXXHashFunc_EmptyData(t *testing.T) {
	hashBytes, err := XXHashFunc([]byte{})
	if err != nil {
		t.Fatalf("XXHashFunc failed: %v", err)
	}

	if len(hashBytes) != 8 {
		t.Errorf("Expected 8 bytes, got %d", len(hashBytes))
	}
}
