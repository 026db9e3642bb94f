package repository

import (
	"fmt"
	"time"

	"github.com/LIL3ASTARD33/CoinClash/internal/http-server/handlers/mysql"
	"github.com/LIL3ASTARD33/CoinClash/internal/http-server/model"
)

type RoundRepository struct {
	dbhandler mysql.Handler
}

func NewRoundRepository(dbhandler mysql.Handler) *RoundRepository {
	return &RoundRepository{dbhandler: dbhandler}
}

func (repo *RoundRepository) SaveRound(round model.Round) (int64, error) {
	const op = "repository.round.SaveRound"

	now := time.Now()

	const query = "INSERT INTO rounds(uuid, user_id, game, epoch, nonce, bet, multiplier, payout, did_win, created_at, updated_at) " +
		"VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
	res, err := repo.dbhandler.PrepareAndExecute(query,
		round.UUID.String(),
		round.UserID,
		round.Game,
		round.Epoch,
		round.Nonce,
		round.Bet,
		round.Multiplier,
		round.Payout,
		round.DidWin,
		now,
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

func (repo *RoundRepository) SaveFairnessProof(proof model.FairnessProof) error {
	const op = "repository.round.SaveFairnessProof"

	now := time.Now()

	const query = "INSERT INTO fairness_proofs(round_id, epoch, client_seed, nonce, commitment_hex, roll, created_at, updated_at) " +
		"VALUES(?, ?, ?, ?, ?, ?, ?, ?)"
	_, err := repo.dbhandler.PrepareAndExecute(query,
		proof.RoundID,
		proof.Epoch,
		proof.ClientSeed,
		proof.Nonce,
		proof.CommitmentHex,
		proof.Roll,
		now,
		now)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (repo *RoundRepository) UpdatePlayedAt(roundID int64) error {
	const op = "repository.round.UpdatePlayedAt"

	now := time.Now()

	const query = "UPDATE rounds SET played_at = ?, updated_at = ? WHERE id = ?"
	_, err := repo.dbhandler.PrepareAndExecute(query, now, now, roundID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (repo *RoundRepository) CountRoundsByEpoch(epoch uint64) (int, error) {
	const op = "repository.round.CountRoundsByEpoch"

	const query = "SELECT COUNT(*) FROM rounds WHERE epoch = ?"
	row, err := repo.dbhandler.PrepareAndQueryRow(query, epoch)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var count int

	err = row.Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return count, nil
}
