package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"marketplace-ledger-service/internal/ledger"
)

func TestParseOverwritePolicy(t *testing.T) {
	for in, want := range map[string]ledger.OverwritePolicy{
		"":        ledger.OverwriteAllow,
		"allow":   ledger.OverwriteAllow,
		" Reject": ledger.OverwriteReject,
	} {
		got, err := ledger.ParseOverwritePolicy(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := ledger.ParseOverwritePolicy("merge")
	require.Error(t, err)

	require.Equal(t, "reject", ledger.OverwriteReject.String())
}

func TestDefaultPolicy(t *testing.T) {
	p := ledger.DefaultPolicy()
	require.True(t, p.SelfSignedAccounts)
	require.False(t, p.SingleRelease)
	require.Equal(t, ledger.OverwriteAllow, p.Accounts)
	require.Equal(t, ledger.OverwriteAllow, p.Jobs)
	require.Equal(t, ledger.OverwriteAllow, p.NFTs)
}
