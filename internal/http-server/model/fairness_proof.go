package model

import "time"

// FairnessProof stores everything a player needs to re-derive a round once
// the epoch's seed is revealed.
type FairnessProof struct {
	ID            int64     `json:"id"`
	RoundID       int64     `json:"round_id"`
	Epoch         uint64    `json:"epoch"`
	ClientSeed    string    `json:"client_seed"`
	Nonce         uint64    `json:"nonce"`
	CommitmentHex string    `json:"commitment_hex"`
	Roll          float64   `json:"roll"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
