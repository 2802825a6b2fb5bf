package digest

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"strings"

	"hwcheck/internal/faults"
)

const (
	// AlgorithmSHA256 is the default content fingerprint.
	AlgorithmSHA256 = "sha256"
	// AlgorithmMD5 matches fingerprints produced by older tooling.
	AlgorithmMD5 = "md5"

	// DefaultChunkSize is the read size used when streaming content.
	DefaultChunkSize = 64 * 1024
)

// Hasher computes hex-encoded content fingerprints. The zero value hashes with
// SHA-256 using DefaultChunkSize reads.
type Hasher struct {
	algorithm string
	chunkSize int
}

// New returns a Hasher for the named algorithm. An empty name selects SHA-256.
func New(algorithm string, chunkSize int) (*Hasher, error) {
	algorithm = strings.ToLower(strings.TrimSpace(algorithm))
	switch algorithm {
	case "":
		algorithm = AlgorithmSHA256
	case AlgorithmSHA256, AlgorithmMD5:
	default:
		return nil, faults.Wrap(faults.ErrConfiguration, "digest", "new", fmt.Sprintf("unsupported algorithm %q", algorithm), nil)
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Hasher{algorithm: algorithm, chunkSize: chunkSize}, nil
}

// Algorithm reports the configured algorithm name.
func (h *Hasher) Algorithm() string {
	if h == nil || h.algorithm == "" {
		return AlgorithmSHA256
	}
	return h.algorithm
}

// Sum fingerprints an in-memory buffer.
func (h *Hasher) Sum(data []byte) string {
	hh := h.newHash()
	hh.Write(data)
	return hex.EncodeToString(hh.Sum(nil))
}

// SumReader fingerprints r by streaming fixed-size chunks. The result equals
// Sum over the same bytes.
func (h *Hasher) SumReader(r io.Reader) (string, error) {
	hh := h.newHash()
	buf := make([]byte, h.chunk())
	if _, err := io.CopyBuffer(hh, readerOnly{r}, buf); err != nil {
		return "", faults.Wrap(faults.ErrFileRead, "digest", "read", "", err)
	}
	return hex.EncodeToString(hh.Sum(nil)), nil
}

// Short returns the leading eight characters of a fingerprint for display.
func Short(sum string) string {
	if len(sum) <= 8 {
		return sum
	}
	return sum[:8]
}

func (h *Hasher) newHash() hash.Hash {
	if h.Algorithm() == AlgorithmMD5 {
		return md5.New()
	}
	return sha256.New()
}

func (h *Hasher) chunk() int {
	if h == nil || h.chunkSize <= 0 {
		return DefaultChunkSize
	}
	return h.chunkSize
}

// readerOnly hides WriterTo so CopyBuffer honours the chunk size.
type readerOnly struct {
	io.Reader
}
