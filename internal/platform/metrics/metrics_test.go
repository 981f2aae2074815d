package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := NewWith(prometheus.NewRegistry())

	m.IncrementWalletConnections("freighter")
	m.IncrementWalletConnections("")
	m.IncrementCredentialsIssued(OutcomeSuccess)
	m.IncrementCredentialsIssued(OutcomeSuccess)
	m.IncrementVaultOperation("create", OutcomeFailure)

	assert.InDelta(t, 1, testutil.ToFloat64(m.WalletConnections.WithLabelValues("freighter")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.WalletConnections.WithLabelValues("unknown")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.CredentialsIssued.WithLabelValues(OutcomeSuccess)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.VaultOperations.WithLabelValues("create", OutcomeFailure)), 0)
}
