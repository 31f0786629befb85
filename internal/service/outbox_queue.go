package service

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrQueueEmpty means a claim timed out with nothing to hand out.
var ErrQueueEmpty = errors.New("outbox: queue empty")

// Queue is the outbox carrying event envelopes from the API to the indexer.
type Queue interface {
	Enqueue(ctx context.Context, payload string) error
	ClaimBlocking(ctx context.Context, timeout time.Duration) (string, error)
	Ack(ctx context.Context, payload string) error
	RequeueStale(ctx context.Context, limit int64) (int64, error)
}

type Lane struct {
	QueueKey      string
	ProcessingKey string
}

// redisOutboxQueue is a reliable queue on two Redis lists.
// Enqueue: LPUSH lane.queue
// Claim:   BRPOPLPUSH lane.queue -> lane.processing
// Ack:     LREM lane.processing
type redisOutboxQueue struct {
	rdb  redis.UniversalClient
	lane Lane
}

func NewRedisOutboxQueue(rdb redis.UniversalClient, lane Lane) Queue {
	return &redisOutboxQueue{rdb: rdb, lane: lane}
}

func (q *redisOutboxQueue) Enqueue(ctx context.Context, payload string) error {
	return q.rdb.LPush(ctx, q.lane.QueueKey, payload).Err()
}

// ClaimBlocking waits up to timeout for an envelope and returns
// ErrQueueEmpty when none arrived.
func (q *redisOutboxQueue) ClaimBlocking(ctx context.Context, timeout time.Duration) (string, error) {
	payload, err := q.rdb.BRPopLPush(ctx, q.lane.QueueKey, q.lane.ProcessingKey, timeout).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrQueueEmpty
	}
	return payload, err
}

func (q *redisOutboxQueue) Ack(ctx context.Context, payload string) error {
	return q.rdb.LRem(ctx, q.lane.ProcessingKey, 1, payload).Err()
}

// RequeueStale moves up to limit envelopes from processing back to the queue.
// It's the reaper half of at-least-once delivery; the indexer dedups by
// envelope id.
func (q *redisOutboxQueue) RequeueStale(ctx context.Context, limit int64) (int64, error) {
	var moved int64
	for i := int64(0); i < limit; i++ {
		payload, err := q.rdb.RPopLPush(ctx, q.lane.ProcessingKey, q.lane.QueueKey).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				break
			}
			return moved, err
		}
		if payload != "" {
			moved++
		}
	}
	return moved, nil
}
