package credential

import (
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var credentialIDPattern = regexp.MustCompile(`^cred_[0-9a-f]{32}$`)

func exampleBuildFields() Fields {
	ex := ExampleFields()
	return Fields{
		IssuerDID:  "did:pkh:stellar:testnet:GAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAWHF",
		IssuerName: ex.IssuerName,
		SubjectDID: ex.SubjectDID,
		DegreeType: ex.DegreeType,
		DegreeName: ex.DegreeName,
		ValidFrom:  ex.ValidFrom,
	}
}

func TestGenerateCredentialID(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for range 1000 {
		id := GenerateCredentialID()
		require.Regexp(t, credentialIDPattern, id)
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestBuild(t *testing.T) {
	t.Run("fixed context, type and proof", func(t *testing.T) {
		doc := Build(exampleBuildFields())

		assert.Equal(t, []string{ContextV2, ContextExamplesV2}, doc.Context)
		assert.Equal(t, []string{"VerifiableCredential", "ExampleDegreeCredential"}, doc.Type)
		assert.Regexp(t, credentialIDPattern, doc.ID)
		assert.Equal(t, "Example University", doc.Issuer.Name)
		assert.Equal(t, "did:pkh:stellar:testnet:GAGPI5M5M4CZHQPZSTXOWX4J6UQMUJWFKACPXDRQMZTK43GPOSPW6NVU", doc.CredentialSubject.ID)
		assert.Equal(t, Degree{Type: "ExampleBachelorDegree", Name: "Bachelor of Science and Arts"}, doc.CredentialSubject.Degree)
		assert.Equal(t, "2010-01-01T19:23:24Z", doc.ValidFrom)
		assert.Equal(t, Proof{
			Type:               "DataIntegrityProof",
			Created:            "2010-01-01T19:23:24Z",
			VerificationMethod: "did:key:zDnaebSRtPnW6YCpxAhR5JPxJqt9UunCsBPhLEtUokUvp87nQ",
			Cryptosuite:        "ecdsa-rdfc-2019",
			ProofPurpose:       "assertionMethod",
			ProofValue:         "z35CwmxThsUQ4t79JfacmMcw4y1kCqtD4rKqUooKM2NyKwdF5jmXMRo9oGnzHerf8hfQiWkEReycSXC2NtRrdMZN4",
		}, doc.Proof)
	})

	t.Run("same fields differ only in id", func(t *testing.T) {
		a := Build(exampleBuildFields())
		b := Build(exampleBuildFields())
		require.NotEqual(t, a.ID, b.ID)
		b.ID = a.ID
		assert.Equal(t, a, b)
	})

	t.Run("empty validFrom uses the current time", func(t *testing.T) {
		fields := exampleBuildFields()
		fields.ValidFrom = ""
		now := time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)

		doc := build(fields, func() time.Time { return now })
		assert.Equal(t, "2026-04-02T09:30:00Z", doc.ValidFrom)
		assert.Equal(t, doc.ValidFrom, doc.Proof.Created)
	})

	t.Run("no validation of inputs", func(t *testing.T) {
		doc := Build(Fields{ValidFrom: "x"})
		assert.Empty(t, doc.Issuer.ID)
		assert.Empty(t, doc.CredentialSubject.Degree.Name)
	})
}

func TestSerialize(t *testing.T) {
	doc := Build(exampleBuildFields())
	doc.Issuer.Name = "Smith & <Sons>"

	out, err := Serialize(doc)
	require.NoError(t, err)
	assert.NotContains(t, out, "\n")
	assert.Contains(t, out, `"name":"Smith & <Sons>"`)
	assert.Contains(t, out, `"@context":["https://www.w3.org/ns/credentials/v2","https://www.w3.org/ns/credentials/examples/v2"]`)

	var back VerifiableCredential
	require.NoError(t, json.Unmarshal([]byte(out), &back))
	assert.Equal(t, doc, back)
}

func TestExplorerURL(t *testing.T) {
	assert.Equal(t, "https://stellar.expert/explorer/testnet/tx/abc123", ExplorerURL("abc123"))
}
