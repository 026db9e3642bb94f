package fair

import (
	"encoding/hex"
	"math"
	"sort"
	"testing"
)

var zeroSeed = make([]byte, SeedSize)

func TestDerivePinnedDigest(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		tag  Tag
		want string
	}{
		{
			name: "Coin",
			tag:  TagCoin,
			want: "15fa65cb9e552955c97d0103336633e2919c2d1001273ec7450de3c467723bc6",
		},
		{
			name: "Bust",
			tag:  TagBust,
			want: "f5f7a7c4ec88b87cf9a34dde43688647239072545c7051a17a734d25df214f7c",
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			digest := Derive(zeroSeed, "alice", 0, tc.tag)

			got := hex.EncodeToString(digest[:])
			if got != tc.want {
				t.Errorf("unexpected digest, want: %s, got: %s", tc.want, got)
			}
		})
	}
}

func TestDeriveDeterminism(t *testing.T) {
	t.Parallel()

	first := Derive(zeroSeed, "alice", 42, TagCoin)

	for i := 0; i < 100; i++ {
		again := Derive(zeroSeed, "alice", 42, TagCoin)
		if again != first {
			t.Fatalf("derivation is not deterministic, want: %x, got: %x", first, again)
		}
	}
}

func TestUniformPinnedFixture(t *testing.T) {
	t.Parallel()

	const want = 1583690144183298389.0 / twoPow64

	got := Roll(zeroSeed, "alice", 0, TagCoin)
	if got != want {
		t.Errorf("unexpected uniform value, want: %v, got: %v", want, got)
	}
}

func TestUniformRange(t *testing.T) {
	t.Parallel()

	for nonce := uint64(0); nonce < 1000; nonce++ {
		u := Roll(zeroSeed, "alice", nonce, TagBust)
		if u < 0 || u >= 1 {
			t.Fatalf("uniform value out of [0,1): %v at nonce %d", u, nonce)
		}
	}
}

func TestTagDomainSeparation(t *testing.T) {
	t.Parallel()

	coin := Derive(zeroSeed, "alice", 0, TagCoin)
	bust := Derive(zeroSeed, "alice", 0, TagBust)

	if coin == bust {
		t.Error("coin and bust streams collide for identical seed and nonce")
	}
}

// Kolmogorov-Smirnov test over 2000 nonces; the critical value for alpha=0.01
// is 1.63/sqrt(n).
func TestUniformDistribution(t *testing.T) {
	t.Parallel()

	const n = 2000

	samples := make([]float64, n)
	for i := range samples {
		samples[i] = Roll(zeroSeed, "alice", uint64(i), TagBust)
	}
	sort.Float64s(samples)

	var maxDev float64
	for i, x := range samples {
		upper := float64(i+1)/n - x
		lower := x - float64(i)/n

		maxDev = math.Max(maxDev, math.Max(upper, lower))
	}

	critical := 1.63 / math.Sqrt(n)
	if maxDev > critical {
		t.Errorf("KS statistic %v exceeds critical value %v", maxDev, critical)
	}
}
