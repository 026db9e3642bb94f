package play

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/LIL3ASTARD33/CoinClash/internal/config"
	"github.com/LIL3ASTARD33/CoinClash/internal/fair"
	"github.com/LIL3ASTARD33/CoinClash/internal/http-server/handlers/event"
	"github.com/LIL3ASTARD33/CoinClash/internal/http-server/handlers/job"
	"github.com/LIL3ASTARD33/CoinClash/internal/http-server/handlers/user/balance"
	"github.com/LIL3ASTARD33/CoinClash/internal/http-server/model"
	resp "github.com/LIL3ASTARD33/CoinClash/internal/lib/api/response"
	"github.com/LIL3ASTARD33/CoinClash/internal/lib/converter"
	"github.com/LIL3ASTARD33/CoinClash/internal/lib/logger/sl"
	"github.com/LIL3ASTARD33/CoinClash/internal/repository"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/exp/slog"
)

type Request struct {
	Game         config.Game `json:"game" validate:"required,oneof=coin bust"`
	Bet          float64     `json:"bet" validate:"required,gt=0"`
	Multiplier   float64     `json:"multiplier" validate:"required,gt=1"`
	ClientSeed   string      `json:"client_seed" validate:"required,max=256"`
	PlayerChoice string      `json:"player_choice" validate:"omitempty,oneof=heads tails"`
	Nonce        *int64      `json:"nonce"`
	UserUUID     string      `json:"user_uuid" validate:"omitempty,uuid"`
}

type Response struct {
	resp.Response
	RoundUUID      string  `json:"round_uuid"`
	DidWin         bool    `json:"did_win"`
	RollWon        bool    `json:"roll_won"`
	ChoiceMatched  bool    `json:"choice_matched"`
	Payout         float64 `json:"payout"`
	Roll           float64 `json:"roll"`
	WinChance      float64 `json:"win_chance"`
	CoinSide       string  `json:"coin_side,omitempty"`
	BustMultiplier float64 `json:"bust_multiplier,omitempty"`
	Epoch          uint64  `json:"epoch"`
	Nonce          uint64  `json:"nonce"`
	ServerSeedHash string  `json:"server_seed_hash"`
}

// RoundPlayer is the provably-fair core as the handler sees it.
//
//go:generate go run github.com/vektra/mockery/v2@v2.28.2 --name=RoundPlayer
type RoundPlayer interface {
	PlayRound(clientSeed string, tag fair.Tag, clientNonce *uint64) (*fair.RoundResult, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.28.2 --name=RoundSaver
type RoundSaver interface {
	SaveRound(round model.Round) (int64, error)
	SaveFairnessProof(proof model.FairnessProof) error
	UpdatePlayedAt(roundID int64) error
}

type Play struct {
	log       *slog.Logger
	validator *validator.Validate
	fair      RoundPlayer
	rounds    RoundSaver
	userRep   repository.UserRepository
	balance   balance.Interface
	pusher    event.Publisher
	cache     *cache.Cache
}

func NewPlay(
	log *slog.Logger,
	fairManager RoundPlayer,
	rounds RoundSaver,
	userRep repository.UserRepository,
	balance balance.Interface,
	pusherClient event.Publisher) *Play {
	return &Play{
		log:       log,
		validator: validator.New(),
		fair:      fairManager,
		rounds:    rounds,
		userRep:   userRep,
		balance:   balance,
		pusher:    pusherClient,
		cache:     cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (p *Play) New() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.game.play.New"

		var (
			err  error
			req  Request
			log  *slog.Logger
			user *model.User
		)

		log = p.log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		err = render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))

			render.JSON(w, r, resp.Error("failed to decode request body", http.StatusBadRequest))

			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err = p.validator.Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)

			log.Error("invalid request", sl.Err(err))

			render.JSON(w, r, resp.ValidationError(validateErr))

			return
		}

		if msg, ok := p.checkWagerBounds(req); !ok {
			log.Error("wager out of bounds", slog.String("reason", msg))

			render.JSON(w, r, resp.Error(msg, http.StatusBadRequest))

			return
		}

		var clientNonce *uint64
		if req.Nonce != nil {
			if *req.Nonce < 0 {
				log.Error("negative nonce supplied")

				render.JSON(w, r, resp.Error("invalid nonce", http.StatusBadRequest))

				return
			}

			n := uint64(*req.Nonce)
			clientNonce = &n
		}

		result, err := p.fair.PlayRound(req.ClientSeed, fair.Tag(req.Game), clientNonce)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, fair.ErrInvalidNonce) ||
				errors.Is(err, fair.ErrClientSeedTooLong) ||
				errors.Is(err, fair.ErrUnknownTag) {
				status = http.StatusBadRequest
			}

			log.Error("failed to play round", sl.Err(err))

			render.JSON(w, r, resp.Error("failed to play round", status))

			return
		}

		winChance := fair.WinChance(config.FairGameConfig.RTP, req.Multiplier)

		outcome := settle(req, result, winChance)

		log.Info("round played",
			slog.String("game", string(req.Game)),
			slog.Uint64("epoch", result.Epoch),
			slog.Uint64("nonce", result.Nonce),
			slog.Bool("did_win", outcome.didWin))

		if req.UserUUID != "" {
			user, err = p.settleBalance(req, outcome)
			if err != nil {
				log.Error("failed to settle balance", sl.Err(err))

				render.JSON(w, r, resp.Error("failed to settle balance", http.StatusInternalServerError))

				return
			}
		}

		roundUUID := uuid.New()

		roundID, err := p.saveRound(roundUUID, req, result, outcome, user)
		if err != nil {
			log.Error("failed to save round", sl.Err(err))

			render.JSON(w, r, resp.Error("failed to save round", http.StatusInternalServerError))

			return
		}

		job.Dispatch(&RoundPlayedAtJob{roundID: roundID, rounds: p.rounds}, 0)

		if err = p.sendRoundPlayedEvent(roundUUID, req, result, outcome); err != nil {
			log.Error("failed to send round played event", sl.Err(err))
		}

		render.JSON(w, r, Response{
			Response:       resp.OK(),
			RoundUUID:      roundUUID.String(),
			DidWin:         outcome.didWin,
			RollWon:        outcome.rollWon,
			ChoiceMatched:  outcome.choiceMatched,
			Payout:         outcome.payout,
			Roll:           result.Roll,
			WinChance:      winChance,
			CoinSide:       string(result.Side),
			BustMultiplier: result.Multiplier,
			Epoch:          result.Epoch,
			Nonce:          result.Nonce,
			ServerSeedHash: result.Commitment,
		})
	}
}

type settledOutcome struct {
	didWin        bool
	rollWon       bool
	choiceMatched bool
	payout        float64
}

// settle composes the target win probability with the derived outcome. The
// coin game decides the win against the same uniform draw that picked the
// side; the bust game wins when the crash multiplier reaches the requested
// payout.
func settle(req Request, result *fair.RoundResult, winChance float64) settledOutcome {
	var out settledOutcome

	switch req.Game {
	case config.Coin:
		out.rollWon = result.Roll < winChance
		out.choiceMatched = req.PlayerChoice == "" || string(result.Side) == req.PlayerChoice
		out.didWin = out.rollWon && out.choiceMatched
	case config.Bust:
		out.rollWon = result.Multiplier >= req.Multiplier
		out.choiceMatched = true
		out.didWin = out.rollWon
	}

	if out.didWin {
		out.payout = req.Bet * req.Multiplier
	}

	return out
}

func (p *Play) checkWagerBounds(req Request) (string, bool) {
	cfg := config.FairGameConfig

	if req.Bet > cfg.MaxBet {
		return "bet exceeds the maximum", false
	}

	if req.Multiplier < cfg.MinPayoutMultiplier || req.Multiplier > cfg.MaxPayoutMultiplier {
		return "multiplier out of range", false
	}

	return "", true
}

func (p *Play) settleBalance(req Request, outcome settledOutcome) (*model.User, error) {
	user, err := p.userRep.FindUserByUUID(req.UserUUID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	err = p.balance.Settle(
		user.ID,
		converter.ConvertAmountFloatToInt(req.Bet),
		converter.ConvertAmountFloatToInt(outcome.payout),
		req.Game,
	)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (p *Play) saveRound(
	roundUUID uuid.UUID,
	req Request,
	result *fair.RoundResult,
	outcome settledOutcome,
	user *model.User,
) (int64, error) {
	round := model.Round{
		UUID:       roundUUID,
		Game:       req.Game,
		Epoch:      result.Epoch,
		Nonce:      result.Nonce,
		Bet:        converter.ConvertAmountFloatToInt(req.Bet),
		Multiplier: req.Multiplier,
		Payout:     converter.ConvertAmountFloatToInt(outcome.payout),
		DidWin:     outcome.didWin,
	}
	if user != nil {
		round.UserID = user.ID
	}

	roundID, err := p.rounds.SaveRound(round)
	if err != nil {
		return 0, err
	}

	err = p.rounds.SaveFairnessProof(model.FairnessProof{
		RoundID:       roundID,
		Epoch:         result.Epoch,
		ClientSeed:    req.ClientSeed,
		Nonce:         result.Nonce,
		CommitmentHex: result.Commitment,
		Roll:          result.Roll,
	})
	if err != nil {
		return 0, err
	}

	return roundID, nil
}

func (p *Play) sendRoundPlayedEvent(
	roundUUID uuid.UUID,
	req Request,
	result *fair.RoundResult,
	outcome settledOutcome,
) error {
	data := map[string]interface{}{
		"round_uuid":   roundUUID.String(),
		"game":         string(req.Game),
		"epoch":        result.Epoch,
		"nonce":        result.Nonce,
		"did_win":      outcome.didWin,
		"epoch_rounds": p.countEpochRound(result.Epoch),
	}

	return p.pusher.TriggerEvent("games-channel", "round-played-event", data)
}

// countEpochRound tracks how many rounds this process served for the epoch
// without a database hit.
func (p *Play) countEpochRound(epoch uint64) int64 {
	key := "epoch_rounds_" + strconv.FormatUint(epoch, 10)

	count, err := p.cache.IncrementInt64(key, 1)
	if err != nil {
		p.cache.Set(key, int64(1), cache.DefaultExpiration)

		return 1
	}

	return count
}
