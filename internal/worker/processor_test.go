package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"marketplace-ledger-service/internal/events"
	"marketplace-ledger-service/internal/metrics"
	"marketplace-ledger-service/internal/worker"
)

type fakeRepo struct {
	mu        sync.Mutex
	seen      map[uuid.UUID]events.Envelope
	insertErr error
}

func (r *fakeRepo) Insert(ctx context.Context, env events.Envelope) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return false, r.insertErr
	}
	if r.seen == nil {
		r.seen = map[uuid.UUID]events.Envelope{}
	}
	if _, ok := r.seen[env.ID]; ok {
		return false, nil
	}
	r.seen[env.ID] = env
	return true, nil
}

func (r *fakeRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.seen)
}

func payload(t *testing.T, e events.Event) string {
	t.Helper()
	raw, err := events.NewEnvelope(e, time.Now()).Marshal()
	require.NoError(t, err)
	return string(raw)
}

func TestProcessor_IndexesOnce(t *testing.T) {
	repo := &fakeRepo{}
	p := worker.NewProcessor(repo, metrics.New(), nil)
	msg := payload(t, events.NFTSold{NFTID: "N1"})

	require.NoError(t, p.Process(context.Background(), msg))
	require.NoError(t, p.Process(context.Background(), msg))
	require.Equal(t, 1, repo.count())
}

func TestProcessor_Malformed(t *testing.T) {
	p := worker.NewProcessor(&fakeRepo{}, nil, nil)
	err := p.Process(context.Background(), `{"type":"NFTSold"}`)
	require.ErrorIs(t, err, worker.ErrMalformed)
}

func TestProcessor_RepoErrorIsRetryable(t *testing.T) {
	down := errors.New("connection refused")
	p := worker.NewProcessor(&fakeRepo{insertErr: down}, nil, nil)
	err := p.Process(context.Background(), payload(t, events.PaymentReleased{JobID: "J1"}))
	require.ErrorIs(t, err, down)
	require.False(t, errors.Is(err, worker.ErrMalformed))
}
