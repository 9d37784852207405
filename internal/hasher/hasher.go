// Package hasher derives and verifies salted secret digests.
//
// The stored form is hex(salt) + "$" + hex(sha256(secret || salt)).
package hasher

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
)

// SaltSize is the number of random salt bytes generated per hash.
const SaltSize = 16

const separator = "$"

// ErrMalformedStoredSecret is returned when a stored form cannot be parsed.
var ErrMalformedStoredSecret = errors.New("malformed stored secret")

// Hasher produces and checks stored forms of secrets.
type Hasher struct {
	rand io.Reader
}

// New creates a Hasher drawing salt from crypto/rand.
func New() *Hasher {
	return &Hasher{rand: rand.Reader}
}

// Hash returns the stored form of secret under a freshly generated salt.
func (h *Hasher) Hash(secret string) (string, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(h.rand, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hex.EncodeToString(salt) + separator + digest(secret, salt), nil
}

// Verify reports whether candidate matches the stored form.
func (h *Hasher) Verify(stored, candidate string) (bool, error) {
	parts := strings.Split(stored, separator)
	if len(parts) != 2 {
		return false, fmt.Errorf("%w: expected salt%sdigest", ErrMalformedStoredSecret, separator)
	}

	salt, err := hex.DecodeString(parts[0])
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedStoredSecret, err)
	}

	got := digest(candidate, salt)
	return subtle.ConstantTimeCompare([]byte(got), []byte(parts[1])) == 1, nil
}

func digest(secret string, salt []byte) string {
	sum := sha256.New()
	sum.Write([]byte(secret))
	sum.Write(salt)
	return hex.EncodeToString(sum.Sum(nil))
}
