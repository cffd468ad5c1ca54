// Package hash provides content hashing for build id derivation.
//
// The content build id strategy hashes every scanned source file and then
// hashes the sorted list of (path, digest) pairs, so an unchanged tree always
// yields the same build id. Callers read files themselves so the hashed
// bytes come through the same FS as the scan.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hasher provides an abstraction for hashing operations.
type Hasher interface {
	// HashBytes computes the hex digest of data.
	HashBytes(data []byte) string
}

// SHA256Hasher implements Hasher using SHA-256.
type SHA256Hasher struct{}

// NewSHA256Hasher creates a new SHA256Hasher.
func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

// HashBytes computes the SHA-256 hash of data.
func (h *SHA256Hasher) HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Short returns the first n hex digits of digest, or all of it when shorter.
func Short(digest string, n int) string {
	if len(digest) <= n {
		return digest
	}
	return digest[:n]
}
