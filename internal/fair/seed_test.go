package fair

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func TestCommitBindsSeed(t *testing.T) {
	t.Parallel()

	seed := []byte("not-a-real-seed-but-32-bytes-ok!")

	sum := sha256.Sum256(seed)

	want := hex.EncodeToString(sum[:])
	if got := Commit(seed); got != want {
		t.Errorf("unexpected commitment, want: %s, got: %s", want, got)
	}
}

func TestSeedStoreRotate(t *testing.T) {
	t.Parallel()

	first := []byte("first-epoch-seed-of-32-bytes-ok!")
	second := []byte("second-epoch-seed-of-32-bytes-!!")

	store := NewSeedStore(first)

	before := store.Current()
	if before.Epoch != 1 {
		t.Fatalf("unexpected initial epoch, want: 1, got: %d", before.Epoch)
	}

	retired, current := store.Rotate(second)

	if retired.Epoch != 1 || current.Epoch != 2 {
		t.Errorf("unexpected epochs after rotation, retired: %d, current: %d", retired.Epoch, current.Epoch)
	}

	if retired.Commitment == current.Commitment {
		t.Error("rotation did not change the commitment")
	}

	if Commit(retired.Seed) != before.Commitment {
		t.Error("revealed seed does not hash to the published commitment")
	}

	if got := store.Current(); got.Commitment != current.Commitment {
		t.Error("store does not serve the new epoch after rotation")
	}
}

func TestSeedStoreSnapshotIsolation(t *testing.T) {
	t.Parallel()

	seed := []byte("isolation-test-seed-of-32-bytes!")

	store := NewSeedStore(seed)

	snap := store.Current()
	snap.Seed[0] ^= 0xff

	if again := store.Current(); !bytes.Equal(again.Seed, seed) {
		t.Error("mutating a snapshot leaked into the store")
	}
}
