package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"marketplace-ledger-service/internal/metrics"
)

func TestMetrics_Counts(t *testing.T) {
	m := metrics.New()
	m.ObserveCall("buy_nft", "ok", 3*time.Millisecond)
	m.ObserveCall("buy_nft", "invalid_state", time.Millisecond)
	m.ObserveCall("buy_nft", "ok", time.Millisecond)
	m.EventEmitted("NFTSold")
	m.EventIndexed("ok")

	n, err := testutil.GatherAndCount(m.Registry(), "ledger_calls_total")
	require.NoError(t, err)
	require.Equal(t, 2, n)

	n, err = testutil.GatherAndCount(m.Registry(), "ledger_events_emitted_total", "ledger_events_indexed_total")
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *metrics.Metrics
	m.ObserveCall("get_job", "ok", time.Millisecond)
	m.EventEmitted("PaymentReleased")
	m.EventIndexed("ok")
}
