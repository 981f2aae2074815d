package identity

import (
	"context"
	"log/slog"

	"actavc/internal/platform/metrics"
	"actavc/pkg/platform/audit"
)

// Deriver computes the owner DID from a wallet address and keeps the persisted
// copy in step with the connected wallet. Storage failures never fail a call:
// they are logged and the computed value is still returned.
type Deriver struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	auditor *audit.Logger
}

// Option configures a Deriver.
type Option func(*Deriver)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Deriver) {
		d.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Deriver) {
		d.metrics = m
	}
}

func WithAuditLogger(l *audit.Logger) Option {
	return func(d *Deriver) {
		d.auditor = l
	}
}

func NewDeriver(store Store, opts ...Option) *Deriver {
	d := &Deriver{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SaveComputedDID derives the DID for address and persists it, replacing any
// previous value. It reports false, and touches nothing, for an empty address.
func (d *Deriver) SaveComputedDID(ctx context.Context, address string) (DID, bool) {
	did, ok := ComputeDID(address)
	if !ok {
		return "", false
	}
	if d.persist(ctx, did) {
		d.count("save")
		d.auditor.Log(ctx, audit.EventDIDSaved, "wallet", address, "subject", did.String())
	}
	return did, true
}

// CurrentDID returns the persisted DID when one exists, otherwise the DID
// derived from connectedAddress (without persisting it).
func (d *Deriver) CurrentDID(ctx context.Context, connectedAddress string) (DID, bool) {
	if stored := d.stored(ctx); stored != "" {
		return stored, true
	}
	return ComputeDID(connectedAddress)
}

// Reconcile makes the persisted DID match the connected wallet. A missing DID
// is saved; a DID derived from a different address is overwritten. With no
// connected wallet it behaves like CurrentDID.
func (d *Deriver) Reconcile(ctx context.Context, connectedAddress string) (DID, bool) {
	computed, ok := ComputeDID(connectedAddress)
	if !ok {
		return d.CurrentDID(ctx, "")
	}

	stored := d.stored(ctx)
	if stored == computed {
		return stored, true
	}
	if d.persist(ctx, computed) {
		if stored == "" {
			d.count("save")
			d.auditor.Log(ctx, audit.EventDIDSaved, "wallet", connectedAddress, "subject", computed.String())
		} else {
			d.count("reconcile")
			d.logger.InfoContext(ctx, "owner DID replaced for connected wallet",
				"previous_did", stored.String(),
				"did", computed.String(),
			)
			d.auditor.Log(ctx, audit.EventDIDReconciled, "wallet", connectedAddress, "subject", computed.String())
		}
	}
	return computed, true
}

// Clear removes the persisted DID.
func (d *Deriver) Clear(ctx context.Context) error {
	if err := d.store.Clear(ctx); err != nil {
		d.logger.WarnContext(ctx, "failed to clear owner DID", "error", err)
		return err
	}
	d.count("clear")
	d.auditor.Log(ctx, audit.EventDIDCleared)
	return nil
}

func (d *Deriver) stored(ctx context.Context) DID {
	did, err := d.store.Get(ctx)
	if err != nil {
		d.logger.WarnContext(ctx, "failed to read owner DID", "error", err)
		return ""
	}
	return did
}

func (d *Deriver) persist(ctx context.Context, did DID) bool {
	if err := d.store.Set(ctx, did); err != nil {
		d.logger.WarnContext(ctx, "failed to persist owner DID", "error", err, "did", did.String())
		return false
	}
	return true
}

func (d *Deriver) count(op string) {
	if d.metrics != nil {
		d.metrics.IncrementDIDOperation(op)
	}
}
