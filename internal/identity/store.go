package identity

import (
	"context"
	"errors"

	"actavc/internal/localstate"
	"actavc/internal/sentinel"
)

// Store persists at most one owner DID.
type Store interface {
	// Get returns the persisted DID, or "" when none is stored.
	Get(ctx context.Context) (DID, error)
	Set(ctx context.Context, did DID) error
	Clear(ctx context.Context) error
}

// StateStore keeps the owner DID under StorageKey in a localstate.Store.
type StateStore struct {
	state localstate.Store
}

func NewStateStore(state localstate.Store) *StateStore {
	return &StateStore{state: state}
}

func (s *StateStore) Get(ctx context.Context) (DID, error) {
	v, err := s.state.Get(ctx, StorageKey)
	if errors.Is(err, sentinel.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return DID(v), nil
}

func (s *StateStore) Set(ctx context.Context, did DID) error {
	return s.state.Set(ctx, StorageKey, string(did))
}

func (s *StateStore) Clear(ctx context.Context) error {
	return s.state.Delete(ctx, StorageKey)
}
