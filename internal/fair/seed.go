package fair

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// SeedSize is the length of a server seed in bytes.
const SeedSize = 32

// Snapshot is one epoch's immutable view: the secret seed and the commitment
// published for it. Seed is a private copy, safe to hold across a rotation.
type Snapshot struct {
	Epoch      uint64
	Seed       []byte
	Commitment string
}

// SeedStore owns the current epoch. All reads go through Current, which never
// returns a torn state; Rotate is the only writer.
type SeedStore struct {
	mu      sync.RWMutex
	current Snapshot
}

func NewSeedStore(seed []byte) *SeedStore {
	return &SeedStore{
		current: Snapshot{
			Epoch:      1,
			Seed:       cloneSeed(seed),
			Commitment: Commit(seed),
		},
	}
}

// Commit returns the hex SHA-256 digest published for a seed.
func Commit(seed []byte) string {
	sum := sha256.Sum256(seed)

	return hex.EncodeToString(sum[:])
}

func (s *SeedStore) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current.clone()
}

// Rotate installs a new epoch and returns the retired snapshot so the caller
// can reveal its seed. The swap is a reference replacement; no hashing happens
// under the write lock beyond the one commitment digest.
func (s *SeedStore) Rotate(newSeed []byte) (retired Snapshot, current Snapshot) {
	next := Snapshot{
		Seed:       cloneSeed(newSeed),
		Commitment: Commit(newSeed),
	}

	s.mu.Lock()
	retired = s.current
	next.Epoch = retired.Epoch + 1
	s.current = next
	current = next.clone()
	s.mu.Unlock()

	return retired, current
}

func (sn Snapshot) clone() Snapshot {
	sn.Seed = cloneSeed(sn.Seed)

	return sn
}

func cloneSeed(seed []byte) []byte {
	out := make([]byte, len(seed))
	copy(out, seed)

	return out
}
