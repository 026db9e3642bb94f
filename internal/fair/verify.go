package fair

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// Verification mirrors what third-party audit tooling does with a revealed
// seed: re-derive the round and check the commitment binding.

// VerifyCommitment reports whether SHA-256 of the revealed seed matches the
// commitment that was published for its epoch.
func VerifyCommitment(revealedSeedHex, commitmentHex string) (bool, error) {
	const op = "fair.VerifyCommitment"

	seed, err := hex.DecodeString(revealedSeedHex)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	expected := Commit(seed)

	return subtle.ConstantTimeCompare([]byte(expected), []byte(commitmentHex)) == 1, nil
}

// RecomputeRound re-derives the outcome for a revealed seed. The result must
// be byte-for-byte identical to what was originally shown to the player.
func RecomputeRound(revealedSeedHex, clientSeed string, nonce uint64, tag Tag, bust BustParams) (*RoundResult, error) {
	const op = "fair.RecomputeRound"

	seed, err := hex.DecodeString(revealedSeedHex)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if tag != TagCoin && tag != TagBust {
		return nil, fmt.Errorf("%s: %w", op, ErrUnknownTag)
	}

	u := Roll(seed, clientSeed, nonce, tag)

	result := &RoundResult{
		Nonce:      nonce,
		Commitment: Commit(seed),
		Tag:        tag,
		Roll:       u,
	}

	switch tag {
	case TagCoin:
		result.Side = CoinSide(u)
	case TagBust:
		result.Multiplier = bust.Multiplier(u)
	}

	return result, nil
}

func hexEncode(b []byte) string {
	return hex.EncodeToString(b)
}
