package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/LIL3ASTARD33/CoinClash/internal/http-server/handlers/mysql"
	"github.com/LIL3ASTARD33/CoinClash/internal/http-server/model"
)

type SeedEpochRepository struct {
	dbhandler mysql.Handler
}

func NewSeedEpochRepository(dbhandler mysql.Handler) *SeedEpochRepository {
	return &SeedEpochRepository{dbhandler: dbhandler}
}

func (repo *SeedEpochRepository) SaveRevealedEpoch(epoch model.SeedEpoch) (int64, error) {
	const op = "repository.seed_epoch.SaveRevealedEpoch"

	now := time.Now()

	const query = "INSERT INTO seed_epochs(epoch, seed_hex, commitment_hex, revealed_at, created_at) " +
		"VALUES(?, ?, ?, ?, ?)"
	res, err := repo.dbhandler.PrepareAndExecute(query,
		epoch.Epoch,
		epoch.SeedHex,
		epoch.CommitmentHex,
		epoch.RevealedAt,
		now)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (repo *SeedEpochRepository) GetRevealedEpoch(epoch uint64) (*model.SeedEpoch, error) {
	const op = "repository.seed_epoch.GetRevealedEpoch"

	const query = "SELECT id, epoch, seed_hex, commitment_hex, revealed_at FROM seed_epochs WHERE epoch = ?"
	row, err := repo.dbhandler.PrepareAndQueryRow(query, epoch)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	revealed := &model.SeedEpoch{}

	err = row.Scan(&revealed.ID, &revealed.Epoch, &revealed.SeedHex, &revealed.CommitmentHex, &revealed.RevealedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return revealed, nil
}
