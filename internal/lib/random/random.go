package random

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewSeedBytes returns n cryptographically random bytes.
func NewSeedBytes(n int) ([]byte, error) {
	const op = "random.NewSeedBytes"

	buf := make([]byte, n)

	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf, nil
}

// NewRandomString returns a hex string of the given length backed by
// cryptographically random bytes.
func NewRandomString(length int) string {
	buf := make([]byte, (length+1)/2)

	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("random.NewRandomString: %v", err))
	}

	return hex.EncodeToString(buf)[:length]
}
