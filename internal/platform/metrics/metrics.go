// Package metrics holds the domain counters shared by the HTTP services.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeSuccess      = "success"
	OutcomePrecondition = "precondition"
	OutcomeFailure      = "failure"
)

// Metrics holds Prometheus metrics for wallet, identity, credential and vault flows.
type Metrics struct {
	WalletConnections    *prometheus.CounterVec
	WalletDisconnections prometheus.Counter
	DIDOperations        *prometheus.CounterVec
	CredentialsIssued    *prometheus.CounterVec
	IssueLatency         prometheus.Histogram
	VaultOperations      *prometheus.CounterVec
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers against reg. Tests pass a fresh prometheus.NewRegistry().
func NewWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		WalletConnections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "actavc_wallet_connections_total",
			Help: "Wallet connections by wallet module",
		}, []string{"module"}),
		WalletDisconnections: f.NewCounter(prometheus.CounterOpts{
			Name: "actavc_wallet_disconnections_total",
			Help: "Wallet disconnections",
		}),
		DIDOperations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "actavc_did_operations_total",
			Help: "Owner DID operations (save, reconcile, clear)",
		}, []string{"operation"}),
		CredentialsIssued: f.NewCounterVec(prometheus.CounterOpts{
			Name: "actavc_credentials_issued_total",
			Help: "Credential issuance attempts by outcome",
		}, []string{"outcome"}),
		IssueLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "actavc_credential_issue_duration_seconds",
			Help:    "End-to-end duration of credential issuance",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		VaultOperations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "actavc_vault_operations_total",
			Help: "Vault operations by operation and outcome",
		}, []string{"operation", "outcome"}),
	}
}

func (m *Metrics) IncrementWalletConnections(module string) {
	if module == "" {
		module = "unknown"
	}
	m.WalletConnections.WithLabelValues(module).Inc()
}

func (m *Metrics) IncrementWalletDisconnections() {
	m.WalletDisconnections.Inc()
}

func (m *Metrics) IncrementDIDOperation(operation string) {
	m.DIDOperations.WithLabelValues(operation).Inc()
}

func (m *Metrics) IncrementCredentialsIssued(outcome string) {
	m.CredentialsIssued.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveIssueLatency(durationSeconds float64) {
	m.IssueLatency.Observe(durationSeconds)
}

func (m *Metrics) IncrementVaultOperation(operation, outcome string) {
	m.VaultOperations.WithLabelValues(operation, outcome).Inc()
}
