package service

import (
	"context"
	"log/slog"
	"time"

	"marketplace-ledger-service/internal/events"
)

// EventQueue is the slice of Queue the emitter needs.
type EventQueue interface {
	Enqueue(ctx context.Context, payload string) error
}

// OutboxEmitter pushes each event onto the outbox as an Envelope.
type OutboxEmitter struct {
	queue  EventQueue
	logger *slog.Logger
	now    func() time.Time
}

func NewOutboxEmitter(queue EventQueue, logger *slog.Logger) *OutboxEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &OutboxEmitter{queue: queue, logger: logger, now: time.Now}
}

func (o *OutboxEmitter) Emit(ctx context.Context, e events.Event) {
	env := events.NewEnvelope(e, o.now())
	raw, err := env.Marshal()
	if err != nil {
		o.logger.ErrorContext(ctx, "outbox encode failed", "type", e.EventType(), "subject", e.Subject(), "error", err)
		return
	}
	if err := o.queue.Enqueue(ctx, string(raw)); err != nil {
		o.logger.ErrorContext(ctx, "outbox enqueue failed", "envelope_id", env.ID.String(), "type", env.Type, "subject", env.Subject, "error", err)
	}
}
