package ratelimit

import (
	"net/http"
	"time"

	resp "github.com/LIL3ASTARD33/CoinClash/internal/lib/api/response"
	"github.com/go-chi/render"
	"github.com/patrickmn/go-cache"
)

// Allower decides whether a client may play at all; the game handlers never
// see rejected requests.
type Allower interface {
	Allow(clientID string) bool
}

// WindowLimiter counts requests per client in a fixed window.
type WindowLimiter struct {
	counters *cache.Cache
	limit    int64
}

func NewWindowLimiter(limit int64, window time.Duration) *WindowLimiter {
	return &WindowLimiter{
		counters: cache.New(window, 2*window),
		limit:    limit,
	}
}

func (l *WindowLimiter) Allow(clientID string) bool {
	count, err := l.counters.IncrementInt64(clientID, 1)
	if err != nil {
		l.counters.Set(clientID, int64(1), cache.DefaultExpiration)

		return true
	}

	return count <= l.limit
}

// New gates requests on the injected Allower, keyed by remote address.
func New(allower Allower) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			if !allower.Allow(r.RemoteAddr) {
				render.JSON(w, r, resp.Error("too many requests", http.StatusTooManyRequests))

				return
			}

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}
