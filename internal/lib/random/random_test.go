package random

import (
	"bytes"
	"testing"
)

func TestNewSeedBytes(t *testing.T) {
	t.Parallel()

	first, err := NewSeedBytes(32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != 32 {
		t.Fatalf("unexpected length, want: 32, got: %d", len(first))
	}

	second, err := NewSeedBytes(32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bytes.Equal(first, second) {
		t.Error("two fresh seeds are identical")
	}
}

func TestNewRandomString(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		length int
	}{
		{
			name:   "Even",
			length: 64,
		},
		{
			name:   "Odd",
			length: 7,
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := NewRandomString(tc.length)
			if len(got) != tc.length {
				t.Errorf("unexpected length, want: %d, got: %d", tc.length, len(got))
			}
		})
	}
}
