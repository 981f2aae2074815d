package wallet

import (
	"context"
	"errors"

	"actavc/internal/localstate"
	"actavc/internal/sentinel"
)

// Local state keys for the connected wallet.
const (
	KeyAddress = "walletAddress"
	KeyName    = "walletName"
	KeyID      = "walletId"
)

// Session is the restorable display state of a connected wallet. It is not
// trust-bearing: requests are authorized by the session token instead.
type Session struct {
	Address  string `json:"address"`
	Name     string `json:"name"`
	ModuleID string `json:"module_id"`
	Device   string `json:"device,omitempty"`
}

// SessionStore persists Session in a localstate.Store under the wallet keys.
type SessionStore struct {
	state localstate.Store
}

func NewSessionStore(state localstate.Store) *SessionStore {
	return &SessionStore{state: state}
}

// Load returns the stored session. ok is false when no address is stored.
func (s *SessionStore) Load(ctx context.Context) (Session, bool, error) {
	address, err := s.get(ctx, KeyAddress)
	if err != nil || address == "" {
		return Session{}, false, err
	}
	name, err := s.get(ctx, KeyName)
	if err != nil {
		return Session{}, false, err
	}
	moduleID, err := s.get(ctx, KeyID)
	if err != nil {
		return Session{}, false, err
	}
	return Session{Address: address, Name: name, ModuleID: moduleID}, true, nil
}

func (s *SessionStore) Save(ctx context.Context, session Session) error {
	for _, kv := range [][2]string{
		{KeyAddress, session.Address},
		{KeyName, session.Name},
		{KeyID, session.ModuleID},
	} {
		if err := s.state.Set(ctx, kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	return s.state.Delete(ctx, KeyAddress, KeyName, KeyID)
}

func (s *SessionStore) get(ctx context.Context, key string) (string, error) {
	v, err := s.state.Get(ctx, key)
	if errors.Is(err, sentinel.ErrNotFound) {
		return "", nil
	}
	return v, err
}
