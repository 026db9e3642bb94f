package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        int64     `json:"id"`
	UUID      uuid.UUID `json:"uuid"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserBalance struct {
	ID        int64      `json:"id"`
	Balance   int64      `json:"balance"`
	UserID    int64      `json:"user_id"`
	UpdatedAt *time.Time `json:"updated_at"`
}
