package model

import "time"

// SeedEpoch is written on rotation, once the seed is no longer secret.
type SeedEpoch struct {
	ID            int64     `json:"id"`
	Epoch         uint64    `json:"epoch"`
	SeedHex       string    `json:"seed_hex"`
	CommitmentHex string    `json:"commitment_hex"`
	RevealedAt    time.Time `json:"revealed_at"`
	CreatedAt     time.Time `json:"created_at"`
}
