package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleAddress = "GAGPI5M5M4CZHQPZSTXOWX4J6UQMUJWFKACPXDRQMZTK43GPOSPW6NVU"

func TestComputeDID(t *testing.T) {
	t.Run("derives the testnet pkh identifier", func(t *testing.T) {
		did, ok := ComputeDID(exampleAddress)
		require.True(t, ok)
		assert.Equal(t, DID("did:pkh:stellar:testnet:"+exampleAddress), did)
	})

	t.Run("is deterministic", func(t *testing.T) {
		a, _ := ComputeDID(exampleAddress)
		b, _ := ComputeDID(exampleAddress)
		assert.Equal(t, a, b)
	})

	t.Run("embeds the address verbatim", func(t *testing.T) {
		for _, in := range []string{" " + exampleAddress, exampleAddress + "\n", "   "} {
			did, ok := ComputeDID(in)
			require.True(t, ok, quote(in))
			assert.Equal(t, DID("did:pkh:stellar:testnet:"+in), did)
		}
	})

	t.Run("absent for empty input", func(t *testing.T) {
		did, ok := ComputeDID("")
		assert.False(t, ok)
		assert.Empty(t, did)
	})

	t.Run("does not validate the address", func(t *testing.T) {
		did, ok := ComputeDID("not-a-key")
		require.True(t, ok)
		assert.Equal(t, DID("did:pkh:stellar:testnet:not-a-key"), did)
	})
}

func TestParseDID(t *testing.T) {
	t.Run("round trips ComputeDID", func(t *testing.T) {
		did, _ := ComputeDID(exampleAddress)
		b, err := ParseDID(did.String())
		require.NoError(t, err)
		assert.Equal(t, Binding{Address: exampleAddress, Network: Network, DID: did}, b)
	})

	for _, in := range []string{
		"",
		"did:key:z6Mk",
		"did:pkh:stellar:",
		"did:pkh:stellar:testnet:",
		"did:pkh:stellar:testnet",
		"did:pkh:stellar:testnet:GA:extra",
	} {
		t.Run("rejects "+quote(in), func(t *testing.T) {
			_, err := ParseDID(in)
			assert.Error(t, err)
		})
	}
}

func TestDIDEncodes(t *testing.T) {
	did, _ := ComputeDID(exampleAddress)
	assert.True(t, did.Encodes(exampleAddress))
	assert.False(t, did.Encodes("GAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAWHF"))
	assert.False(t, DID("").Encodes(exampleAddress))
}

func quote(s string) string { return "\"" + s + "\"" }
