package credential

import "context"

// IssuanceStore keeps the local log of submitted credentials.
type IssuanceStore interface {
	Save(ctx context.Context, issuance Issuance) error
	// ListByOwner returns the owner's issuances, newest first.
	ListByOwner(ctx context.Context, owner string) ([]Issuance, error)
}
