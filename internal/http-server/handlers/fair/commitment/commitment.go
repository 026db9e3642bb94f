package commitment

import (
	"net/http"

	resp "github.com/LIL3ASTARD33/CoinClash/internal/lib/api/response"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"golang.org/x/exp/slog"
)

type Response struct {
	resp.Response
	Epoch          uint64 `json:"epoch"`
	ServerSeedHash string `json:"server_seed_hash"`
}

// CommitmentReader exposes the published commitment without any path to the
// raw seed.
type CommitmentReader interface {
	Commitment() (epoch uint64, commitment string)
}

type Commitment struct {
	log  *slog.Logger
	fair CommitmentReader
}

func NewCommitment(log *slog.Logger, fairManager CommitmentReader) *Commitment {
	return &Commitment{
		log:  log,
		fair: fairManager,
	}
}

func (c *Commitment) New() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.fair.commitment.New"

		log := c.log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		epoch, hash := c.fair.Commitment()

		log.Info("commitment served", slog.Uint64("epoch", epoch))

		render.JSON(w, r, Response{
			Response:       resp.OK(),
			Epoch:          epoch,
			ServerSeedHash: hash,
		})
	}
}
