package credential

import (
	"context"
	"slices"
	"sync"

	"actavc/internal/sentinel"
)

// InMemoryIssuanceStore is the default IssuanceStore when no database is configured.
type InMemoryIssuanceStore struct {
	mu        sync.RWMutex
	issuances []Issuance
	byVCID    map[string]struct{}
}

func NewInMemoryIssuanceStore() *InMemoryIssuanceStore {
	return &InMemoryIssuanceStore{byVCID: make(map[string]struct{})}
}

// Save appends issuance. A second record for the same credential id is a conflict.
func (s *InMemoryIssuanceStore) Save(_ context.Context, issuance Issuance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byVCID[issuance.VCID]; ok {
		return sentinel.ErrConflict
	}
	s.byVCID[issuance.VCID] = struct{}{}
	s.issuances = append(s.issuances, issuance)
	return nil
}

func (s *InMemoryIssuanceStore) ListByOwner(_ context.Context, owner string) ([]Issuance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Issuance{}
	for _, iss := range s.issuances {
		if iss.Owner == owner {
			out = append(out, iss)
		}
	}
	slices.SortStableFunc(out, func(a, b Issuance) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}
