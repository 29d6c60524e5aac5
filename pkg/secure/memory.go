// Package secure holds small helpers for handling secret material: zeroing,
// random generation, and constant-time comparison.
package secure

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"runtime"
)

// Zero overwrites b with zeros. Best effort: Go gives no guarantee about
// copies the runtime may have made.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// SecureRandom returns size cryptographically random bytes.
func SecureRandom(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid length: %d", size)
	}
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		Zero(b)
		return nil, fmt.Errorf("failed to generate secure random bytes: %w", err)
	}
	return b, nil
}

// RandomOverwrite fills b with random data and then zeros it, for scrubbing
// buffers whose previous contents should not linger.
func RandomOverwrite(b []byte) error {
	if _, err := rand.Read(b); err != nil {
		return fmt.Errorf("failed to overwrite with random data: %w", err)
	}
	Zero(b)
	return nil
}

// ConstantTimeCompare reports whether x and y are equal without leaking the
// position of a mismatch through timing.
func ConstantTimeCompare(x, y []byte) bool {
	if len(x) != len(y) {
		return false
	}
	return subtle.ConstantTimeCompare(x, y) == 1
}
