// Package events defines the notifications the ledger fires on state
// transitions and the sinks that carry them to observers.
package events

import (
	"context"
	"log/slog"
	"sync"
)

const (
	TypePaymentReleased = "PaymentReleased"
	TypeNFTSold         = "NFTSold"
)

// Event is a notification carrying a single identifier.
type Event interface {
	EventType() string
	Subject() string
}

// PaymentReleased fires when a completed job's payment is released.
type PaymentReleased struct {
	JobID string
}

func (PaymentReleased) EventType() string  { return TypePaymentReleased }
func (e PaymentReleased) Subject() string { return e.JobID }

// NFTSold fires when a listed NFT changes hands.
type NFTSold struct {
	NFTID string
}

func (NFTSold) EventType() string  { return TypeNFTSold }
func (e NFTSold) Subject() string { return e.NFTID }

// Emitter is fire-and-forget: sinks report their own failures.
type Emitter interface {
	Emit(ctx context.Context, e Event)
}

// NoopEmitter discards every event.
type NoopEmitter struct{}

func (NoopEmitter) Emit(context.Context, Event) {}

// Multi fans an event out to every emitter in order.
type Multi []Emitter

func (m Multi) Emit(ctx context.Context, e Event) {
	for _, em := range m {
		if em != nil {
			em.Emit(ctx, e)
		}
	}
}

// Recorder keeps every emitted event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Emit(_ context.Context, e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of what was recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// LogEmitter writes one structured line per event.
type LogEmitter struct {
	Logger *slog.Logger
}

func (l LogEmitter) Emit(ctx context.Context, e Event) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "ledger event", "type", e.EventType(), "subject", e.Subject())
}
