package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"marketplace-ledger-service/internal/entity"
	"marketplace-ledger-service/internal/events"
	"marketplace-ledger-service/internal/ledger"
	"marketplace-ledger-service/internal/metrics"
	"marketplace-ledger-service/internal/store"
)

// LedgerService hosts the ledger: it runs one call at a time, each inside a
// single store transaction, and emits the call's notification only after the
// transaction commits.
type LedgerService struct {
	mu      sync.Mutex
	store   store.Store
	ledger  *ledger.Ledger
	emitter events.Emitter
	metrics *metrics.Metrics
	tracer  trace.Tracer
	logger  *slog.Logger
}

// emitTimeout bounds delivery of a committed call's notification. Delivery
// is detached from the caller's context: the write is already durable.
const emitTimeout = 5 * time.Second

type Option func(*LedgerService)

func WithEmitter(e events.Emitter) Option {
	return func(s *LedgerService) {
		if e != nil {
			s.emitter = e
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *LedgerService) { s.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *LedgerService) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewLedgerService(st store.Store, l *ledger.Ledger, opts ...Option) *LedgerService {
	s := &LedgerService{
		store:   st,
		ledger:  l,
		emitter: events.NoopEmitter{},
		tracer:  otel.Tracer("marketplace-ledger-service/ledger"),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type CreateJobRequest struct {
	ID      string
	Creator entity.Identity
	Maker   entity.Identity
	Price   entity.Amount
}

type MintNFTRequest struct {
	ID       string
	Owner    entity.Identity
	Metadata string
}

func (s *LedgerService) CreateAccount(ctx context.Context, caller entity.Identity, role entity.Role, address entity.Identity) (*entity.Account, error) {
	var acc *entity.Account
	err := s.call(ctx, "create_account", []attribute.KeyValue{attribute.String("ledger.address", string(address))},
		func(ctx context.Context, tx store.Tx) (events.Event, error) {
			var err error
			acc, err = s.ledger.CreateAccount(ctx, tx, caller, role, address)
			return nil, err
		})
	return acc, err
}

func (s *LedgerService) GetAccount(ctx context.Context, address entity.Identity) (*entity.Account, error) {
	var acc *entity.Account
	err := s.call(ctx, "get_account", []attribute.KeyValue{attribute.String("ledger.address", string(address))},
		func(ctx context.Context, tx store.Tx) (events.Event, error) {
			var err error
			acc, err = s.ledger.GetAccount(ctx, tx, address)
			return nil, err
		})
	return acc, err
}

func (s *LedgerService) CreateJob(ctx context.Context, req CreateJobRequest) (*entity.Job, error) {
	var job *entity.Job
	err := s.call(ctx, "create_job", jobAttrs(req.ID),
		func(ctx context.Context, tx store.Tx) (events.Event, error) {
			var err error
			job, err = s.ledger.CreateJob(ctx, tx, req.ID, req.Creator, req.Maker, req.Price)
			return nil, err
		})
	return job, err
}

func (s *LedgerService) CompleteJob(ctx context.Context, id string) (*entity.Job, error) {
	var job *entity.Job
	err := s.call(ctx, "complete_job", jobAttrs(id),
		func(ctx context.Context, tx store.Tx) (events.Event, error) {
			var err error
			job, err = s.ledger.CompleteJob(ctx, tx, id)
			return nil, err
		})
	return job, err
}

func (s *LedgerService) ReleasePayment(ctx context.Context, id string) error {
	return s.call(ctx, "release_payment", jobAttrs(id),
		func(ctx context.Context, tx store.Tx) (events.Event, error) {
			return s.ledger.ReleasePayment(ctx, tx, id)
		})
}

func (s *LedgerService) GetJob(ctx context.Context, id string) (*entity.Job, error) {
	var job *entity.Job
	err := s.call(ctx, "get_job", jobAttrs(id),
		func(ctx context.Context, tx store.Tx) (events.Event, error) {
			var err error
			job, err = s.ledger.GetJob(ctx, tx, id)
			return nil, err
		})
	return job, err
}

func (s *LedgerService) MintNFT(ctx context.Context, req MintNFTRequest) (*entity.NFT, error) {
	var nft *entity.NFT
	err := s.call(ctx, "mint_nft", nftAttrs(req.ID),
		func(ctx context.Context, tx store.Tx) (events.Event, error) {
			var err error
			nft, err = s.ledger.MintNFT(ctx, tx, req.ID, req.Owner, req.Metadata)
			return nil, err
		})
	return nft, err
}

func (s *LedgerService) GetNFT(ctx context.Context, id string) (*entity.NFT, error) {
	var nft *entity.NFT
	err := s.call(ctx, "get_nft", nftAttrs(id),
		func(ctx context.Context, tx store.Tx) (events.Event, error) {
			var err error
			nft, err = s.ledger.GetNFT(ctx, tx, id)
			return nil, err
		})
	return nft, err
}

func (s *LedgerService) ListNFT(ctx context.Context, caller entity.Identity, nftID string, price entity.Amount) (*entity.Listing, error) {
	var listing *entity.Listing
	err := s.call(ctx, "list_nft", nftAttrs(nftID),
		func(ctx context.Context, tx store.Tx) (events.Event, error) {
			var err error
			listing, err = s.ledger.ListNFT(ctx, tx, caller, nftID, price)
			return nil, err
		})
	return listing, err
}

func (s *LedgerService) BuyNFT(ctx context.Context, nftID string, buyer entity.Identity) error {
	return s.call(ctx, "buy_nft", nftAttrs(nftID),
		func(ctx context.Context, tx store.Tx) (events.Event, error) {
			return s.ledger.BuyNFT(ctx, tx, nftID, buyer)
		})
}

func (s *LedgerService) GetListing(ctx context.Context, nftID string) (*entity.Listing, error) {
	var listing *entity.Listing
	err := s.call(ctx, "get_listing", nftAttrs(nftID),
		func(ctx context.Context, tx store.Tx) (events.Event, error) {
			var err error
			listing, err = s.ledger.GetListing(ctx, tx, nftID)
			return nil, err
		})
	return listing, err
}

func (s *LedgerService) call(ctx context.Context, op string, attrs []attribute.KeyValue, fn func(context.Context, store.Tx) (events.Event, error)) error {
	ctx, span := s.tracer.Start(ctx, "ledger."+op, trace.WithAttributes(attrs...))
	defer span.End()
	start := time.Now()

	evt, err := s.commit(ctx, fn)

	outcome := ledger.Kind(err)
	s.metrics.ObserveCall(op, outcome, time.Since(start))
	span.SetAttributes(attribute.String("ledger.outcome", outcome))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		level := slog.LevelInfo
		if outcome == "internal" {
			level = slog.LevelError
		}
		s.logger.Log(ctx, level, "ledger call rejected", "op", op, "outcome", outcome, "error", err)
		return err
	}
	if evt != nil {
		s.logger.InfoContext(ctx, "ledger call committed", "op", op, "event", evt.EventType(), "subject", evt.Subject())
	}
	return nil
}

// commit holds the lock through emission so observers see notifications in
// commit order.
func (s *LedgerService) commit(ctx context.Context, fn func(context.Context, store.Tx) (events.Event, error)) (events.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var evt events.Event
	err := s.store.Update(ctx, func(tx store.Tx) error {
		var err error
		evt, err = fn(ctx, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	if evt != nil {
		emitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), emitTimeout)
		s.emitter.Emit(emitCtx, evt)
		cancel()
		s.metrics.EventEmitted(evt.EventType())
	}
	return evt, nil
}

func jobAttrs(id string) []attribute.KeyValue {
	return []attribute.KeyValue{attribute.String("ledger.job_id", id)}
}

func nftAttrs(id string) []attribute.KeyValue {
	return []attribute.KeyValue{attribute.String("ledger.nft_id", id)}
}
