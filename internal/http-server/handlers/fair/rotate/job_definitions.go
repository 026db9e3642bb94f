package rotate

import (
	"github.com/LIL3ASTARD33/CoinClash/internal/fair"
	"github.com/LIL3ASTARD33/CoinClash/internal/http-server/handlers/event"
)

type AnnounceRotationJob struct {
	rotation *fair.RotationResult
	pusher   event.Publisher
}

func (j *AnnounceRotationJob) Execute() {
	// broadcast the reveal so players can start verifying past rounds
	_ = j.pusher.TriggerEvent("games-channel", "seed-rotated-event", map[string]interface{}{
		"revealed_seed_hex":   j.rotation.RevealedSeedHex,
		"previous_commitment": j.rotation.PreviousCommitment,
		"new_commitment":      j.rotation.NewCommitment,
		"new_epoch":           j.rotation.NewEpoch,
	})
}
