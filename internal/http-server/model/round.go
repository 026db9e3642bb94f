package model

import (
	"time"

	"github.com/LIL3ASTARD33/CoinClash/internal/config"
	"github.com/google/uuid"
)

type Round struct {
	ID         int64       `json:"id"`
	UUID       uuid.UUID   `json:"uuid"`
	UserID     int64       `json:"user_id"`
	Game       config.Game `json:"game"`
	Epoch      uint64      `json:"epoch"`
	Nonce      uint64      `json:"nonce"`
	Bet        int64       `json:"bet"`
	Multiplier float64     `json:"multiplier"`
	Payout     int64       `json:"payout"`
	DidWin     bool        `json:"did_win"`
	PlayedAt   *time.Time  `json:"played_at"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}
