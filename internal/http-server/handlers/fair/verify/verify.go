package verify

import (
	"net/http"

	"github.com/LIL3ASTARD33/CoinClash/internal/config"
	"github.com/LIL3ASTARD33/CoinClash/internal/fair"
	resp "github.com/LIL3ASTARD33/CoinClash/internal/lib/api/response"
	"github.com/LIL3ASTARD33/CoinClash/internal/lib/logger/sl"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"golang.org/x/exp/slog"
)

type Request struct {
	ServerSeedHex string      `json:"server_seed_hex" validate:"required,hexadecimal,len=64"`
	ClientSeed    string      `json:"client_seed" validate:"required,max=256"`
	Nonce         int64       `json:"nonce" validate:"min=0"`
	Game          config.Game `json:"game" validate:"required,oneof=coin bust"`
	Commitment    string      `json:"commitment" validate:"omitempty,hexadecimal,len=64"`
}

type Response struct {
	resp.Response
	Valid          bool    `json:"valid"`
	CommitmentOK   bool    `json:"commitment_ok"`
	Roll           float64 `json:"roll"`
	CoinSide       string  `json:"coin_side,omitempty"`
	BustMultiplier float64 `json:"bust_multiplier,omitempty"`
	ServerSeedHash string  `json:"server_seed_hash"`
}

// Verify lets auditors recompute any past round from a revealed seed, the
// same way third-party tooling would.
type Verify struct {
	log       *slog.Logger
	validator *validator.Validate
	bust      fair.BustParams
}

func NewVerify(log *slog.Logger, bust fair.BustParams) *Verify {
	return &Verify{
		log:       log,
		validator: validator.New(),
		bust:      bust,
	}
}

func (h *Verify) New() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.fair.verify.New"

		var req Request

		log := h.log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))

			render.JSON(w, r, resp.Error("failed to decode request body", http.StatusBadRequest))

			return
		}

		if err = h.validator.Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)

			log.Error("invalid request", sl.Err(err))

			render.JSON(w, r, resp.ValidationError(validateErr))

			return
		}

		recomputed, err := fair.RecomputeRound(req.ServerSeedHex, req.ClientSeed, uint64(req.Nonce), fair.Tag(req.Game), h.bust)
		if err != nil {
			log.Error("failed to recompute round", sl.Err(err))

			render.JSON(w, r, resp.Error("failed to recompute round", http.StatusBadRequest))

			return
		}

		commitmentOK := true
		if req.Commitment != "" {
			commitmentOK, err = fair.VerifyCommitment(req.ServerSeedHex, req.Commitment)
			if err != nil {
				log.Error("failed to verify commitment", sl.Err(err))

				render.JSON(w, r, resp.Error("failed to verify commitment", http.StatusBadRequest))

				return
			}
		}

		log.Info("round recomputed",
			slog.String("game", string(req.Game)),
			slog.Bool("commitment_ok", commitmentOK))

		render.JSON(w, r, Response{
			Response:       resp.OK(),
			Valid:          commitmentOK,
			CommitmentOK:   commitmentOK,
			Roll:           recomputed.Roll,
			CoinSide:       string(recomputed.Side),
			BustMultiplier: recomputed.Multiplier,
			ServerSeedHash: recomputed.Commitment,
		})
	}
}
