package testutil

import (
	"testing"

	id "actavc/pkg/domain"
)

// Stellar public keys with valid checksums for deterministic test data.
const (
	AddressExample = "GAGPI5M5M4CZHQPZSTXOWX4J6UQMUJWFKACPXDRQMZTK43GPOSPW6NVU"
	AddressZero    = "GAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAWHF"
	AddressSeq     = "GAAQEAYEAUDAOCAJBIFQYDIOB4IBCEQTCQKRMFYYDENBWHA5DYPSABOV"
)

// MustAddress parses a Stellar address or fails the test.
func MustAddress(t testing.TB, raw string) id.StellarAddress {
	t.Helper()
	addr, err := id.ParseStellarAddress(raw)
	if err != nil {
		t.Fatalf("MustAddress(%q): %v", raw, err)
	}
	return addr
}

// TestnetDID returns the did:pkh identifier for a testnet address.
func TestnetDID(address string) string {
	return "did:pkh:stellar:testnet:" + address
}
