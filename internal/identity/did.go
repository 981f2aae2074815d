// Package identity derives and persists the owner's decentralized identifier
// (did:pkh) from the connected Stellar wallet address.
package identity

import (
	"fmt"
	"strings"
)

const (
	// Network is the only Stellar network this service targets.
	Network = "testnet"
	// MethodPrefix is the did:pkh prefix for Stellar accounts.
	MethodPrefix = "did:pkh:stellar:"
	// StorageKey is the well-known local state key holding the owner DID.
	StorageKey = "acta_owner_did"
)

// DID is a did:pkh identifier. The zero value means "no identity".
type DID string

func (d DID) String() string { return string(d) }

// Binding ties a wallet address to its DID on a given network.
type Binding struct {
	Address string
	Network string
	DID     DID
}

// ComputeDID derives the testnet DID for a wallet address. It reports false
// when the address is empty. Any other address is embedded verbatim; it is
// neither trimmed nor checksum-validated here, so callers normalize input at
// their own boundary.
func ComputeDID(address string) (DID, bool) {
	if address == "" {
		return "", false
	}
	return DID(MethodPrefix + Network + ":" + address), true
}

// ParseDID splits a did:pkh:stellar identifier into its network and address.
func ParseDID(s string) (Binding, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(s), MethodPrefix)
	if !ok {
		return Binding{}, fmt.Errorf("not a did:pkh:stellar identifier: %q", s)
	}
	network, address, ok := strings.Cut(rest, ":")
	if !ok || network == "" || address == "" || strings.Contains(address, ":") {
		return Binding{}, fmt.Errorf("malformed did:pkh:stellar identifier: %q", s)
	}
	return Binding{Address: address, Network: network, DID: DID(MethodPrefix + rest)}, nil
}

// Encodes reports whether d was derived from address.
func (d DID) Encodes(address string) bool {
	b, err := ParseDID(string(d))
	if err != nil {
		return false
	}
	return b.Address == address
}
