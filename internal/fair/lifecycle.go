package fair

import (
	"errors"
	"fmt"

	"github.com/LIL3ASTARD33/CoinClash/internal/lib/random"
	"golang.org/x/exp/slog"
)

var (
	ErrInvalidNonce      = errors.New("invalid nonce")
	ErrClientSeedTooLong = errors.New("client seed too long")
	ErrUnknownTag        = errors.New("unknown stream tag")
)

// DefaultMaxClientSeedLen bounds the client seed so a request cannot force
// unbounded hashing work.
const DefaultMaxClientSeedLen = 256

// RoundResult is everything the caller needs to show the outcome and let the
// player verify it after the seed is revealed.
type RoundResult struct {
	Epoch      uint64
	Nonce      uint64
	Commitment string
	Tag        Tag
	Roll       float64
	Side       Side
	Multiplier float64
}

// RotationResult reveals the retired epoch's seed and publishes the new
// commitment.
type RotationResult struct {
	RevealedSeedHex    string
	PreviousCommitment string
	NewCommitment      string
	NewEpoch           uint64
}

// Manager orchestrates commit, play, reveal and rotate. It is the only place
// that touches the shared seed and nonce state; derive and map stay pure.
type Manager struct {
	log              *slog.Logger
	seeds            *SeedStore
	nonces           *NonceSequencer
	bust             BustParams
	maxClientSeedLen int
}

// NewManager generates the first epoch's seed up front, so a commitment
// exists before any round is served. Bust distribution parameters and the
// client seed cap come from the caller's configuration; a non-positive cap
// falls back to DefaultMaxClientSeedLen.
func NewManager(log *slog.Logger, bust BustParams, maxClientSeedLen int) (*Manager, error) {
	const op = "fair.NewManager"

	seed, err := random.NewSeedBytes(SeedSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if maxClientSeedLen <= 0 {
		maxClientSeedLen = DefaultMaxClientSeedLen
	}

	return &Manager{
		log:              log,
		seeds:            NewSeedStore(seed),
		nonces:           NewNonceSequencer(),
		bust:             bust,
		maxClientSeedLen: maxClientSeedLen,
	}, nil
}

// Commitment returns the current epoch and its published commitment. The raw
// seed is not reachable through this path.
func (m *Manager) Commitment() (epoch uint64, commitment string) {
	snap := m.seeds.Current()

	return snap.Epoch, snap.Commitment
}

// PlayRound resolves the current epoch snapshot and computes one outcome.
// When clientNonce is nil the sequencer assigns the next nonce; otherwise the
// supplied value is validated against the epoch's high-water mark. The
// snapshot read here is used for the whole round even if a rotation lands
// mid-request.
func (m *Manager) PlayRound(clientSeed string, tag Tag, clientNonce *uint64) (*RoundResult, error) {
	const op = "fair.Manager.PlayRound"

	if len(clientSeed) > m.maxClientSeedLen {
		return nil, fmt.Errorf("%s: %w", op, ErrClientSeedTooLong)
	}

	if tag != TagCoin && tag != TagBust {
		return nil, fmt.Errorf("%s: %w", op, ErrUnknownTag)
	}

	snap := m.seeds.Current()

	var nonce uint64
	if clientNonce == nil {
		nonce = m.nonces.Next(snap.Epoch)
	} else {
		nonce = *clientNonce
		if err := m.nonces.Validate(snap.Epoch, clientSeed, nonce); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	u := Roll(snap.Seed, clientSeed, nonce, tag)

	result := &RoundResult{
		Epoch:      snap.Epoch,
		Nonce:      nonce,
		Commitment: snap.Commitment,
		Tag:        tag,
		Roll:       u,
	}

	switch tag {
	case TagCoin:
		result.Side = CoinSide(u)
	case TagBust:
		result.Multiplier = m.bust.Multiplier(u)
	}

	return result, nil
}

// RevealAndRotate retires the current epoch, revealing its seed, and installs
// a fresh one. This is the only path that exposes seed bytes.
func (m *Manager) RevealAndRotate() (*RotationResult, error) {
	const op = "fair.Manager.RevealAndRotate"

	seed, err := random.NewSeedBytes(SeedSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	retired, current := m.seeds.Rotate(seed)

	m.log.Info("seed rotated",
		slog.Uint64("retired_epoch", retired.Epoch),
		slog.Uint64("new_epoch", current.Epoch))

	return &RotationResult{
		RevealedSeedHex:    hexEncode(retired.Seed),
		PreviousCommitment: retired.Commitment,
		NewCommitment:      current.Commitment,
		NewEpoch:           current.Epoch,
	}, nil
}

// BustParams returns the configured crash distribution parameters.
func (m *Manager) BustParams() BustParams {
	return m.bust
}
