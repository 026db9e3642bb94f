package fair

import "sync"

// NonceSequencer issues server-assigned nonces and validates client-assigned
// ones. State is kept per epoch: a request that resolved its snapshot just
// before a rotation still draws from its own epoch's range and can never
// collide with rounds already served under the new one.
type NonceSequencer struct {
	mu       sync.Mutex
	latest   uint64
	counters map[uint64]uint64
	seen     map[uint64]map[string]uint64
}

func NewNonceSequencer() *NonceSequencer {
	return &NonceSequencer{
		latest:   1,
		counters: make(map[uint64]uint64),
		seen:     make(map[uint64]map[string]uint64),
	}
}

// Next returns the next unused nonce for the epoch. Values within one epoch
// form a contiguous increasing range starting at 0.
func (s *NonceSequencer) Next(epoch uint64) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.observe(epoch)

	n := s.counters[epoch]
	s.counters[epoch] = n + 1

	return n
}

// Validate accepts a client-assigned nonce when it is strictly greater than
// the highest value already seen for that client seed in the epoch. This
// discourages replay but cannot match the hard guarantee of server assignment.
func (s *NonceSequencer) Validate(epoch uint64, clientSeed string, nonce uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.observe(epoch)

	marks := s.seen[epoch]
	if marks == nil {
		marks = make(map[string]uint64)
		s.seen[epoch] = marks
	}

	if high, ok := marks[clientSeed]; ok && nonce <= high {
		return ErrInvalidNonce
	}

	marks[clientSeed] = nonce

	return nil
}

// observe advances the latest epoch and prunes state older than the previous
// one. An in-flight request holds its snapshot across at most one rotation,
// so epochs behind latest-1 have no callers left.
func (s *NonceSequencer) observe(epoch uint64) {
	if epoch <= s.latest {
		return
	}

	s.latest = epoch

	for e := range s.counters {
		if e+1 < epoch {
			delete(s.counters, e)
		}
	}
	for e := range s.seen {
		if e+1 < epoch {
			delete(s.seen, e)
		}
	}
}
