package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/LIL3ASTARD33/CoinClash/internal/config"
	"github.com/LIL3ASTARD33/CoinClash/internal/http-server/handlers/mysql"
	"github.com/LIL3ASTARD33/CoinClash/internal/http-server/model"
)

type UserRepository struct {
	dbhandler mysql.Handler
}

func NewUserRepository(dbhandler mysql.Handler) *UserRepository {
	return &UserRepository{dbhandler: dbhandler}
}

func (repo *UserRepository) FindUserByUUID(uuid string) (*model.User, error) {
	const op = "repository.user.FindUserByUUID"

	const query = "SELECT id, uuid FROM users WHERE uuid = ?"
	row, err := repo.dbhandler.PrepareAndQueryRow(query, uuid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := &model.User{}

	err = row.Scan(&user.ID, &user.UUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (repo *UserRepository) GetUserByID(userID int64) (*model.User, error) {
	const op = "repository.user.GetUserByID"

	const query = "SELECT id, uuid FROM users WHERE id = ?"
	row, err := repo.dbhandler.PrepareAndQueryRow(query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := &model.User{}

	err = row.Scan(&user.ID, &user.UUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (repo *UserRepository) FindUserBalanceByID(userID int64) (*model.UserBalance, error) {
	const op = "repository.user.FindUserBalanceByID"

	const query = "SELECT balance FROM user_balances WHERE user_id = ?"
	row, err := repo.dbhandler.PrepareAndQueryRow(query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	userBalance := &model.UserBalance{}

	err = row.Scan(&userBalance.Balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return userBalance, nil
}

// SettleWager debits the bet, credits any payout and records both ledger rows
// in one transaction, so a failure cannot leave a half-settled balance.
func (repo *UserRepository) SettleWager(userID int64, bet int64, payout int64, game config.Game) error {
	const op = "repository.user.SettleWager"

	const balanceQuery = "UPDATE user_balances SET balance = balance + ?, updated_at = ? WHERE user_id = ?"
	const ledgerQuery = "INSERT INTO user_balance_transactions(user_id, value, type, module, created_at, updated_at) " +
		"VALUES(?, ?, ?, ?, ?, ?)"

	tx, err := repo.dbhandler.StartTransaction()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now()

	if _, err = tx.Exec(balanceQuery, -bet, now, userID); err != nil {
		_ = tx.Rollback()

		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err = tx.Exec(ledgerQuery, userID, bet, config.Outcome, game, now, now); err != nil {
		_ = tx.Rollback()

		return fmt.Errorf("%s: %w", op, err)
	}

	if payout > 0 {
		if _, err = tx.Exec(balanceQuery, payout, now, userID); err != nil {
			_ = tx.Rollback()

			return fmt.Errorf("%s: %w", op, err)
		}

		if _, err = tx.Exec(ledgerQuery, userID, payout, config.Income, game, now, now); err != nil {
			_ = tx.Rollback()

			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
