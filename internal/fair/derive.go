package fair

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"strconv"
)

// Tag separates the pseudorandom streams of different games so one server
// seed can serve all of them at once.
type Tag string

const (
	TagCoin Tag = "coin"
	TagBust Tag = "bust"
)

const twoPow64 = 18446744073709551616.0

// Derive computes the raw round digest:
// HMAC-SHA256(key=seed, message=clientSeed:nonce:tag).
func Derive(seed []byte, clientSeed string, nonce uint64, tag Tag) [sha256.Size]byte {
	h := hmac.New(sha256.New, seed)
	h.Write([]byte(clientSeed + ":" + strconv.FormatUint(nonce, 10) + ":" + string(tag)))

	var digest [sha256.Size]byte
	copy(digest[:], h.Sum(nil))

	return digest
}

// Uniform reduces a digest to a float in [0,1): the first 8 bytes are read as
// a big-endian uint64 and divided by 2^64. The result can be exactly 0 but
// never 1; callers applying log/pow transforms clamp it first.
func Uniform(digest [sha256.Size]byte) float64 {
	n := binary.BigEndian.Uint64(digest[:8])

	return float64(n) / twoPow64
}

// Roll derives the uniform value for one round in a single call.
func Roll(seed []byte, clientSeed string, nonce uint64, tag Tag) float64 {
	return Uniform(Derive(seed, clientSeed, nonce, tag))
}
