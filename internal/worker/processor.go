package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"marketplace-ledger-service/internal/events"
	"marketplace-ledger-service/internal/metrics"
)

// ErrMalformed marks payloads that can never be indexed; they are acked
// and dropped instead of being retried.
var ErrMalformed = errors.New("malformed envelope")

type EventRepo interface {
	Insert(ctx context.Context, env events.Envelope) (bool, error)
}

type Processor struct {
	repo    EventRepo
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewProcessor(repo EventRepo, m *metrics.Metrics, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{repo: repo, metrics: m, logger: logger}
}

func (p *Processor) Process(ctx context.Context, payload string) error {
	start := time.Now()

	env, err := events.DecodeEnvelope([]byte(payload))
	if err != nil {
		p.metrics.EventIndexed("malformed")
		p.logger.WarnContext(ctx, "[worker] dropping envelope", "error", err)
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	inserted, err := p.repo.Insert(ctx, env)
	if err != nil {
		p.metrics.EventIndexed("error")
		p.logger.ErrorContext(ctx, "[worker] index failed", "envelope_id", env.ID.String(), "type", env.Type, "error", err)
		return err
	}

	outcome := "ok"
	if !inserted {
		outcome = "duplicate"
	}
	p.metrics.EventIndexed(outcome)
	p.logger.InfoContext(ctx, "[worker] event indexed",
		"envelope_id", env.ID.String(),
		"type", env.Type,
		"subject", env.Subject,
		"outcome", outcome,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
