package hash

import (
	"encoding/binary"
	"encoding/hex"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// HashEntry fingerprints an indexed file by its path and size. The tree is
// simulated, so there is no content to stream; two entries hash equal only
// when both path and size agree.
func HashEntry(path string, size int64) string {
	h := xxhash.New()
	h.WriteString(path)
	h.WriteString(":")
	h.WriteString(strconv.FormatInt(size, 10))

	return hex.EncodeToString(h.Sum(nil))
}

// XXHashFunc is a custom hash function adapter for go-merkletree
// It converts []byte input to xxHash []byte output
func XXHashFunc(data []byte) ([]byte, error) {
	sum := xxhash.Sum64(data)

	// Convert uint64 to []byte in big-endian format
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, sum)
	return buf, nil
}
