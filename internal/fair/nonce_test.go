package fair

import (
	"errors"
	"sync"
	"testing"
)

func TestNonceSequencerContiguousUnderConcurrency(t *testing.T) {
	t.Parallel()

	const n = 500

	seq := NewNonceSequencer()

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	got := make(map[uint64]bool, n)

	for i := 0; i < n; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			nonce := seq.Next(1)

			mu.Lock()
			got[nonce] = true
			mu.Unlock()
		}()
	}

	wg.Wait()

	if len(got) != n {
		t.Fatalf("expected %d distinct nonces, got: %d", n, len(got))
	}

	for v := uint64(0); v < n; v++ {
		if !got[v] {
			t.Fatalf("nonce range is not contiguous, missing: %d", v)
		}
	}
}

func TestNonceSequencerResetsOnRotation(t *testing.T) {
	t.Parallel()

	seq := NewNonceSequencer()

	if first := seq.Next(1); first != 0 {
		t.Fatalf("unexpected first nonce, want: 0, got: %d", first)
	}

	seq.Next(1)

	if fresh := seq.Next(2); fresh != 0 {
		t.Errorf("counter did not reset on rotation, want: 0, got: %d", fresh)
	}
}

// A round that resolved its snapshot just before a rotation may call Next
// with the old epoch after newer rounds already advanced the sequencer. The
// old epoch's allocation must not disturb the new epoch's range.
func TestNonceSequencerStaleEpochInterleaving(t *testing.T) {
	t.Parallel()

	seq := NewNonceSequencer()

	first := seq.Next(2)

	seq.Next(1) // stale pre-rotation snapshot

	second := seq.Next(2)

	if first == second {
		t.Fatalf("nonce %d issued twice within epoch 2", first)
	}
	if second != first+1 {
		t.Errorf("epoch 2 range not contiguous, got: %d then %d", first, second)
	}
}

func TestNonceSequencerValidateStaleEpochInterleaving(t *testing.T) {
	t.Parallel()

	seq := NewNonceSequencer()

	if err := seq.Validate(2, "alice", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// stale pre-rotation snapshot must not clear epoch 2's high-water mark
	if err := seq.Validate(1, "alice", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := seq.Validate(2, "alice", 0); !errors.Is(err, ErrInvalidNonce) {
		t.Errorf("replayed epoch-2 nonce was accepted after stale access: %v", err)
	}
}

func TestNonceSequencerValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		nonces  []uint64
		wantErr bool
	}{
		{
			name:   "Increasing",
			nonces: []uint64{0, 1, 7},
		},
		{
			name:    "Replay",
			nonces:  []uint64{3, 3},
			wantErr: true,
		},
		{
			name:    "Decreasing",
			nonces:  []uint64{5, 4},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			seq := NewNonceSequencer()

			var err error
			for _, nonce := range tc.nonces {
				err = seq.Validate(1, "alice", nonce)
			}

			if tc.wantErr && !errors.Is(err, ErrInvalidNonce) {
				t.Errorf("expected ErrInvalidNonce, got: %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestNonceSequencerValidateScopedByClientSeed(t *testing.T) {
	t.Parallel()

	seq := NewNonceSequencer()

	if err := seq.Validate(1, "alice", 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := seq.Validate(1, "bob", 5); err != nil {
		t.Errorf("high-water mark leaked across client seeds: %v", err)
	}
}
