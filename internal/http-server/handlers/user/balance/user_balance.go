package balance

import (
	"fmt"

	"github.com/LIL3ASTARD33/CoinClash/internal/config"
	"github.com/LIL3ASTARD33/CoinClash/internal/http-server/handlers/event"
	"github.com/LIL3ASTARD33/CoinClash/internal/http-server/model"
	"github.com/LIL3ASTARD33/CoinClash/internal/lib/converter"
	"github.com/LIL3ASTARD33/CoinClash/internal/lib/logger/sl"
	"golang.org/x/exp/slog"
)

//go:generate go run github.com/vektra/mockery/v2@v2.28.2 --name=Repository
type Repository interface {
	SettleWager(userID int64, bet int64, payout int64, game config.Game) error
	GetUserByID(userID int64) (*model.User, error)
	FindUserBalanceByID(userID int64) (*model.UserBalance, error)
}

type Interface interface {
	Settle(userID int64, bet int64, payout int64, game config.Game) error
}

type Balance struct {
	userRep Repository
	log     *slog.Logger
	pusher  event.Publisher
}

func NewBalance(
	userRep Repository,
	log *slog.Logger,
	pusherClient event.Publisher) *Balance {
	return &Balance{
		userRep: userRep,
		log:     log,
		pusher:  pusherClient,
	}
}

// Settle applies a wager atomically and then publishes the balance events.
// Events fire only after the transaction commits.
func (b *Balance) Settle(userID int64, bet int64, payout int64, game config.Game) error {
	const op = "handlers.user.balance.Settle"

	if err := b.userRep.SettleWager(userID, bet, payout, game); err != nil {
		b.log.Error("failed to settle wager", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	if err := b.notify(userID, bet, config.Outcome, game); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if payout > 0 {
		if err := b.notify(userID, payout, config.Income, game); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}

func (b *Balance) notify(userID int64, amount int64, balanceType config.BalanceType, game config.Game) error {
	user, err := b.userRep.GetUserByID(userID)
	if err != nil || user == nil {
		b.log.Error("failed to find user by id")

		return err
	}

	userBalance, err := b.userRep.FindUserBalanceByID(user.ID)
	if err != nil || userBalance == nil {
		b.log.Error("failed to find user balance by id")

		return err
	}

	data := map[string]interface{}{
		"user_uuid":      user.UUID.String(),
		"amount":         converter.ConvertAmountIntToFloat(amount),
		"operation_type": string(balanceType),
		"module":         string(game),
		"balance":        converter.ConvertAmountIntToFloat(userBalance.Balance),
	}

	return b.pusher.TriggerEvent("balance-channel", string(balanceType)+"-event", data)
}
