package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"marketplace-ledger-service/internal/service"
)

type Pool struct {
	queue      service.Queue
	processor  *Processor
	workers    int
	claimDelay time.Duration
	maxBackoff time.Duration
	logger     *slog.Logger
}

func NewPool(queue service.Queue, processor *Processor, workers int, logger *slog.Logger) *Pool {
	if workers <= 0 {
		workers = 4
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pool{
		queue:      queue,
		processor:  processor,
		workers:    workers,
		claimDelay: 5 * time.Second,
		maxBackoff: 10 * time.Second,
		logger:     logger,
	}
}

// Run claims envelopes until ctx is done. An envelope is acked once indexed
// or found malformed; otherwise it stays in processing for the reaper.
func (p *Pool) Run(ctx context.Context) {
	p.logger.Info("[worker] pool started", "workers", p.workers)

	payloads := make(chan string)
	done := make(chan struct{})

	for i := 0; i < p.workers; i++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			for payload := range payloads {
				err := p.processor.Process(ctx, payload)
				if err != nil && !errors.Is(err, ErrMalformed) {
					p.logger.Warn("[worker] leaving envelope for retry", "worker", n, "error", err)
					continue
				}
				if ackErr := p.queue.Ack(ctx, payload); ackErr != nil {
					p.logger.Error("[worker] ack failed", "worker", n, "error", ackErr)
				}
			}
		}(i + 1)
	}

	defer func() {
		close(payloads)
		for i := 0; i < p.workers; i++ {
			<-done
		}
		p.logger.Info("[worker] pool stopped")
	}()

	var backoff time.Duration
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		payload, err := p.queue.ClaimBlocking(ctx, p.claimDelay)
		if errors.Is(err, service.ErrQueueEmpty) || (err != nil && ctx.Err() != nil) {
			continue
		}
		if err != nil {
			backoff = min(max(2*backoff, 100*time.Millisecond), p.maxBackoff)
			p.logger.Error("[worker] claim failed", "error", err, "retry_in", backoff)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return
			}
			continue
		}
		backoff = 0
		select {
		case payloads <- payload:
		case <-ctx.Done():
			return
		}
	}
}

// RunReaper periodically moves unacked envelopes back to the queue.
func RunReaper(ctx context.Context, queue service.Queue, interval time.Duration, batch int64, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := queue.RequeueStale(ctx, batch)
			if err != nil {
				logger.Error("[worker] requeue failed", "error", err)
				continue
			}
			if n > 0 {
				logger.Info("[worker] requeued stale envelopes", "count", n)
			}
		}
	}
}
