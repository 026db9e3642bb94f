package balance_test

import (
	"errors"
	"io"
	"testing"

	"github.com/LIL3ASTARD33/CoinClash/internal/config"
	"github.com/LIL3ASTARD33/CoinClash/internal/http-server/handlers/user/balance"
	"github.com/LIL3ASTARD33/CoinClash/internal/http-server/model"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

type stubRepository struct {
	settleErr  error
	settled    []settleCall
	balanceVal int64
}

type settleCall struct {
	userID int64
	bet    int64
	payout int64
	game   config.Game
}

func (s *stubRepository) SettleWager(userID int64, bet int64, payout int64, game config.Game) error {
	if s.settleErr != nil {
		return s.settleErr
	}

	s.settled = append(s.settled, settleCall{userID: userID, bet: bet, payout: payout, game: game})

	return nil
}

func (s *stubRepository) GetUserByID(userID int64) (*model.User, error) {
	return &model.User{ID: userID, UUID: uuid.New()}, nil
}

func (s *stubRepository) FindUserBalanceByID(userID int64) (*model.UserBalance, error) {
	return &model.UserBalance{UserID: userID, Balance: s.balanceVal}, nil
}

type capturingPublisher struct {
	events []publishedEvent
}

type publishedEvent struct {
	channel string
	name    string
	data    map[string]interface{}
}

func (p *capturingPublisher) TriggerEvent(channel string, eventName string, data map[string]interface{}) error {
	p.events = append(p.events, publishedEvent{channel: channel, name: eventName, data: data})

	return nil
}

func newTestBalance(repo *stubRepository, pub *capturingPublisher) *balance.Balance {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	return balance.NewBalance(repo, log, pub)
}

func TestSettleWinningWagerPublishesBothEvents(t *testing.T) {
	t.Parallel()

	repo := &stubRepository{balanceVal: 150_00}
	pub := &capturingPublisher{}
	b := newTestBalance(repo, pub)

	if err := b.Settle(7, 100_00, 200_00, config.Coin); err != nil {
		t.Fatalf("Settle returned error: %v", err)
	}

	if len(repo.settled) != 1 {
		t.Fatalf("expected one repository settlement, got %d", len(repo.settled))
	}

	call := repo.settled[0]
	if call.userID != 7 || call.bet != 100_00 || call.payout != 200_00 || call.game != config.Coin {
		t.Fatalf("unexpected settlement call: %+v", call)
	}

	if len(pub.events) != 2 {
		t.Fatalf("expected outcome and income events, got %d", len(pub.events))
	}

	if pub.events[0].name != string(config.Outcome)+"-event" {
		t.Errorf("first event = %q, want outcome event", pub.events[0].name)
	}

	if pub.events[1].name != string(config.Income)+"-event" {
		t.Errorf("second event = %q, want income event", pub.events[1].name)
	}
}

func TestSettleLosingWagerPublishesOutcomeOnly(t *testing.T) {
	t.Parallel()

	repo := &stubRepository{}
	pub := &capturingPublisher{}
	b := newTestBalance(repo, pub)

	if err := b.Settle(3, 50_00, 0, config.Bust); err != nil {
		t.Fatalf("Settle returned error: %v", err)
	}

	if len(pub.events) != 1 {
		t.Fatalf("expected a single outcome event, got %d", len(pub.events))
	}

	if pub.events[0].name != string(config.Outcome)+"-event" {
		t.Errorf("event = %q, want outcome event", pub.events[0].name)
	}
}

func TestSettleRepositoryErrorSuppressesEvents(t *testing.T) {
	t.Parallel()

	repo := &stubRepository{settleErr: errors.New("deadlock")}
	pub := &capturingPublisher{}
	b := newTestBalance(repo, pub)

	if err := b.Settle(3, 50_00, 100_00, config.Coin); err == nil {
		t.Fatal("expected error from failed settlement")
	}

	if len(pub.events) != 0 {
		t.Fatalf("no events should fire when the transaction fails, got %d", len(pub.events))
	}
}
