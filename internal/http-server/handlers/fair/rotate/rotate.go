package rotate

import (
	"net/http"
	"time"

	"github.com/LIL3ASTARD33/CoinClash/internal/fair"
	"github.com/LIL3ASTARD33/CoinClash/internal/http-server/handlers/event"
	"github.com/LIL3ASTARD33/CoinClash/internal/http-server/handlers/job"
	"github.com/LIL3ASTARD33/CoinClash/internal/http-server/model"
	resp "github.com/LIL3ASTARD33/CoinClash/internal/lib/api/response"
	"github.com/LIL3ASTARD33/CoinClash/internal/lib/logger/sl"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"golang.org/x/exp/slog"
)

type Response struct {
	resp.Response
	RevealedSeedHex    string `json:"revealed_seed_hex"`
	PreviousCommitment string `json:"previous_commitment"`
	NewCommitment      string `json:"new_commitment"`
	NewEpoch           uint64 `json:"new_epoch"`
}

type SeedRotator interface {
	RevealAndRotate() (*fair.RotationResult, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.28.2 --name=EpochSaver
type EpochSaver interface {
	SaveRevealedEpoch(epoch model.SeedEpoch) (int64, error)
}

type Rotate struct {
	log    *slog.Logger
	fair   SeedRotator
	epochs EpochSaver
	pusher event.Publisher
}

func NewRotate(
	log *slog.Logger,
	fairManager SeedRotator,
	epochs EpochSaver,
	pusherClient event.Publisher) *Rotate {
	return &Rotate{
		log:    log,
		fair:   fairManager,
		epochs: epochs,
		pusher: pusherClient,
	}
}

func (h *Rotate) New() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.fair.rotate.New"

		log := h.log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		rotation, err := h.fair.RevealAndRotate()
		if err != nil {
			log.Error("failed to rotate seed", sl.Err(err))

			render.JSON(w, r, resp.Error("failed to rotate seed", http.StatusInternalServerError))

			return
		}

		_, err = h.epochs.SaveRevealedEpoch(model.SeedEpoch{
			Epoch:         rotation.NewEpoch - 1,
			SeedHex:       rotation.RevealedSeedHex,
			CommitmentHex: rotation.PreviousCommitment,
			RevealedAt:    time.Now(),
		})
		if err != nil {
			log.Error("failed to save revealed epoch", sl.Err(err))

			render.JSON(w, r, resp.Error("failed to save revealed epoch", http.StatusInternalServerError))

			return
		}

		log.Info("seed revealed and rotated", slog.Uint64("new_epoch", rotation.NewEpoch))

		job.Dispatch(&AnnounceRotationJob{rotation: rotation, pusher: h.pusher}, 0)

		render.JSON(w, r, Response{
			Response:           resp.OK(),
			RevealedSeedHex:    rotation.RevealedSeedHex,
			PreviousCommitment: rotation.PreviousCommitment,
			NewCommitment:      rotation.NewCommitment,
			NewEpoch:           rotation.NewEpoch,
		})
	}
}
