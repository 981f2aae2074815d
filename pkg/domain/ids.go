// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/stellar/go-stellar-sdk/strkey"

	dErrors "actavc/pkg/domain-errors"
)

// IssuanceID identifies one locally recorded credential submission.
type IssuanceID uuid.UUID

// StellarAddress is a public account key in StrKey form ("G...").
type StellarAddress string

const stellarAddressLength = 56

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParseIssuanceID(s string) (IssuanceID, error) {
	id, err := parseUUID(s, "issuance ID")
	return IssuanceID(id), err
}

func NewIssuanceID() IssuanceID {
	return IssuanceID(uuid.New())
}

// ParseStellarAddress checks the StrKey envelope: length, base32 alphabet,
// account version byte and checksum.
func ParseStellarAddress(s string) (StellarAddress, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "stellar address cannot be empty")
	}
	if len(s) != stellarAddressLength || s[0] != 'G' {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid stellar address format")
	}
	if _, err := strkey.Decode(strkey.VersionByteAccountID, s); err != nil {
		if errors.Is(err, strkey.ErrInvalidVersionByte) {
			return "", dErrors.New(dErrors.CodeInvalidInput, "stellar address is not an account key")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid stellar address: "+err.Error())
	}
	return StellarAddress(s), nil
}

// String methods - for logging and debugging.

func (id IssuanceID) String() string    { return uuid.UUID(id).String() }
func (a StellarAddress) String() string { return string(a) }

// IsNil checks - used for service-layer validation.

func (id IssuanceID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (a StellarAddress) IsNil() bool { return a == "" }

// Short renders an address as "GABC…WXYZ" for log lines and CLI output.
func (a StellarAddress) Short() string {
	if len(a) <= 8 {
		return string(a)
	}
	return string(a[:4]) + "…" + string(a[len(a)-4:])
}

// parseUUID is the shared validation logic.
func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label+" format")
	}
	if id == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be nil")
	}
	return id, nil
}
