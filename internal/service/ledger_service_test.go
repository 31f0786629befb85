package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"marketplace-ledger-service/internal/entity"
	"marketplace-ledger-service/internal/events"
	"marketplace-ledger-service/internal/ledger"
	"marketplace-ledger-service/internal/metrics"
	"marketplace-ledger-service/internal/service"
	"marketplace-ledger-service/internal/store"
	"marketplace-ledger-service/internal/store/memory"
)

func newService(t *testing.T, policy ledger.Policy) (*service.LedgerService, *events.Recorder, *metrics.Metrics) {
	t.Helper()
	rec := &events.Recorder{}
	m := metrics.New()
	svc := service.NewLedgerService(memory.New(), ledger.New(policy),
		service.WithEmitter(rec),
		service.WithMetrics(m),
	)
	return svc, rec, m
}

func TestLedgerService_JobEscrowEmitsAfterCommit(t *testing.T) {
	ctx := context.Background()
	svc, rec, _ := newService(t, ledger.DefaultPolicy())

	_, err := svc.CreateJob(ctx, service.CreateJobRequest{ID: "J1", Creator: "GC", Maker: "GM", Price: entity.NewAmount(100)})
	require.NoError(t, err)

	err = svc.ReleasePayment(ctx, "J1")
	require.ErrorIs(t, err, ledger.ErrInvalidState)
	require.Empty(t, rec.Events())

	job, err := svc.CompleteJob(ctx, "J1")
	require.NoError(t, err)
	require.True(t, job.IsCompleted)

	require.NoError(t, svc.ReleasePayment(ctx, "J1"))
	require.NoError(t, svc.ReleasePayment(ctx, "J1"))
	require.Equal(t, []events.Event{
		events.PaymentReleased{JobID: "J1"},
		events.PaymentReleased{JobID: "J1"},
	}, rec.Events())

	job, err = svc.GetJob(ctx, "J1")
	require.NoError(t, err)
	require.True(t, job.IsCompleted)
}

func TestLedgerService_ResaleScenario(t *testing.T) {
	ctx := context.Background()
	svc, rec, m := newService(t, ledger.DefaultPolicy())

	_, err := svc.MintNFT(ctx, service.MintNFTRequest{ID: "N1", Owner: "GA", Metadata: "ipfs://x"})
	require.NoError(t, err)
	_, err = svc.ListNFT(ctx, "GA", "N1", entity.NewAmount(50))
	require.NoError(t, err)
	require.NoError(t, svc.BuyNFT(ctx, "N1", "GB"))

	nft, err := svc.GetNFT(ctx, "N1")
	require.NoError(t, err)
	require.Equal(t, entity.Identity("GB"), nft.Owner)

	listing, err := svc.GetListing(ctx, "N1")
	require.NoError(t, err)
	require.Equal(t, entity.ListingSold, listing.Status)

	err = svc.BuyNFT(ctx, "N1", "GC")
	require.ErrorIs(t, err, ledger.ErrInvalidState)

	require.Equal(t, []events.Event{events.NFTSold{NFTID: "N1"}}, rec.Events())
	n, err := testutil.GatherAndCount(m.Registry(), "ledger_events_emitted_total")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestLedgerService_AccountsRequireSelfSignature(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t, ledger.DefaultPolicy())

	_, err := svc.CreateAccount(ctx, "GB", entity.RoleShopper, "GA")
	require.ErrorIs(t, err, ledger.ErrUnauthorized)

	acc, err := svc.CreateAccount(ctx, "GA", entity.RoleShopper, "GA")
	require.NoError(t, err)
	require.Equal(t, entity.RoleShopper, acc.Role)

	got, err := svc.GetAccount(ctx, "GA")
	require.NoError(t, err)
	require.Equal(t, *acc, *got)
}

// failingStore commits nothing and reports a backend error on every write.
type failingStore struct {
	inner store.Store
	err   error
}

type failingTx struct {
	store.Tx
	err error
}

func (f failingTx) Set(context.Context, store.Key, []byte) error { return f.err }

func (f *failingStore) Update(ctx context.Context, fn func(store.Tx) error) error {
	return f.inner.Update(ctx, func(tx store.Tx) error {
		return fn(failingTx{Tx: tx, err: f.err})
	})
}

func (f *failingStore) Close() error { return f.inner.Close() }

func TestLedgerService_StoreFailureEmitsNothing(t *testing.T) {
	ctx := context.Background()
	inner := memory.New()
	rec := &events.Recorder{}

	healthy := service.NewLedgerService(inner, ledger.New(ledger.DefaultPolicy()), service.WithEmitter(rec))
	_, err := healthy.MintNFT(ctx, service.MintNFTRequest{ID: "N1", Owner: "GA"})
	require.NoError(t, err)
	_, err = healthy.ListNFT(ctx, "GA", "N1", entity.NewAmount(5))
	require.NoError(t, err)

	diskFull := errors.New("disk full")
	broken := service.NewLedgerService(&failingStore{inner: inner, err: diskFull}, ledger.New(ledger.DefaultPolicy()), service.WithEmitter(rec))
	err = broken.BuyNFT(ctx, "N1", "GB")
	require.ErrorIs(t, err, diskFull)
	require.Equal(t, "internal", ledger.Kind(err))
	require.Empty(t, rec.Events())

	listing, err := healthy.GetListing(ctx, "N1")
	require.NoError(t, err)
	require.Equal(t, entity.ListingListed, listing.Status)
}

// cancelAfterCommit cancels the caller's context as soon as the wrapped
// store has committed, like a client that hangs up mid-response.
type cancelAfterCommit struct {
	store.Store
	cancel context.CancelFunc
}

func (c *cancelAfterCommit) Update(ctx context.Context, fn func(store.Tx) error) error {
	err := c.Store.Update(ctx, fn)
	if err == nil {
		c.cancel()
	}
	return err
}

// ctxQueue rejects enqueues on a done context, as go-redis does.
type ctxQueue struct {
	payloads []string
}

func (q *ctxQueue) Enqueue(ctx context.Context, payload string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	q.payloads = append(q.payloads, payload)
	return nil
}

func TestLedgerService_CommittedEventSurvivesCallerCancel(t *testing.T) {
	inner := memory.New()
	setup := service.NewLedgerService(inner, ledger.New(ledger.Policy{SelfSignedAccounts: true, SingleRelease: true}))
	_, err := setup.CreateJob(context.Background(), service.CreateJobRequest{ID: "J1", Creator: "GC", Maker: "GM", Price: entity.NewAmount(10)})
	require.NoError(t, err)
	_, err = setup.CompleteJob(context.Background(), "J1")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q := &ctxQueue{}
	svc := service.NewLedgerService(&cancelAfterCommit{Store: inner, cancel: cancel},
		ledger.New(ledger.Policy{SelfSignedAccounts: true, SingleRelease: true}),
		service.WithEmitter(service.NewOutboxEmitter(q, nil)),
	)

	require.NoError(t, svc.ReleasePayment(ctx, "J1"))
	require.ErrorIs(t, ctx.Err(), context.Canceled)
	require.Len(t, q.payloads, 1)

	env, err := events.DecodeEnvelope([]byte(q.payloads[0]))
	require.NoError(t, err)
	require.Equal(t, events.TypePaymentReleased, env.Type)
	require.Equal(t, "J1", env.Subject)
}
