package rotate

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/LIL3ASTARD33/CoinClash/internal/fair"
	"github.com/LIL3ASTARD33/CoinClash/internal/http-server/handlers/job"
	"github.com/LIL3ASTARD33/CoinClash/internal/http-server/model"
	"golang.org/x/exp/slog"
)

type stubEpochSaver struct {
	mu     sync.Mutex
	saved  []model.SeedEpoch
	nextID int64
}

func (s *stubEpochSaver) SaveRevealedEpoch(epoch model.SeedEpoch) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saved = append(s.saved, epoch)
	s.nextID++

	return s.nextID, nil
}

type stubPublisher struct{}

func (stubPublisher) TriggerEvent(channel string, eventName string, data map[string]interface{}) error {
	return nil
}

func TestRotateRevealsAndRotates(t *testing.T) {
	job.Queue = make(job.JobQueue, 16)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	manager, err := fair.NewManager(log, fair.DefaultBustParams, fair.DefaultMaxClientSeedLen)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	_, before := manager.Commitment()

	saver := &stubEpochSaver{}
	h := NewRotate(log, manager, saver, stubPublisher{})

	req := httptest.NewRequest(http.MethodPost, "/fair/rotate", nil)
	rr := httptest.NewRecorder()

	h.New().ServeHTTP(rr, req)

	var out Response
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if out.Status != 200 {
		t.Fatalf("unexpected status: %d (%s)", out.Status, out.Error)
	}

	if out.PreviousCommitment != before {
		t.Errorf("revealed wrong epoch, want commitment %s, got: %s", before, out.PreviousCommitment)
	}

	ok, err := fair.VerifyCommitment(out.RevealedSeedHex, out.PreviousCommitment)
	if err != nil || !ok {
		t.Errorf("revealed seed does not bind to the previous commitment (err: %v)", err)
	}

	saver.mu.Lock()
	defer saver.mu.Unlock()

	if len(saver.saved) != 1 {
		t.Fatalf("expected one revealed epoch saved, got: %d", len(saver.saved))
	}

	if saver.saved[0].SeedHex != out.RevealedSeedHex {
		t.Error("persisted seed differs from the revealed one")
	}
}
