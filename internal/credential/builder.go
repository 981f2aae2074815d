package credential

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"actavc/internal/acta"
)

// GenerateCredentialID returns "cred_" followed by 32 lowercase hex characters
// from a cryptographically secure source.
func GenerateCredentialID() string {
	var b [16]byte
	// crypto/rand.Read never returns an error on supported platforms.
	_, _ = rand.Read(b[:])
	return IDPrefix + hex.EncodeToString(b[:])
}

// Build assembles a credential from fields with a fresh id. An empty
// ValidFrom becomes the current time. The proof's created timestamp equals
// validFrom, so two builds from the same fields differ only in id.
func Build(fields Fields) VerifiableCredential {
	return build(fields, time.Now)
}

func build(fields Fields, now func() time.Time) VerifiableCredential {
	validFrom := fields.ValidFrom
	if validFrom == "" {
		validFrom = now().UTC().Format(time.RFC3339)
	}
	return VerifiableCredential{
		Context: []string{ContextV2, ContextExamplesV2},
		ID:      GenerateCredentialID(),
		Type:    []string{TypeVerifiableCredential, TypeExampleDegree},
		Issuer: Issuer{
			ID:   fields.IssuerDID,
			Name: fields.IssuerName,
		},
		ValidFrom: validFrom,
		CredentialSubject: CredentialSubject{
			ID: fields.SubjectDID,
			Degree: Degree{
				Type: fields.DegreeType,
				Name: fields.DegreeName,
			},
		},
		Proof: Proof{
			Type:               ProofType,
			Created:            validFrom,
			VerificationMethod: ProofVerificationMethod,
			Cryptosuite:        ProofCryptosuite,
			ProofPurpose:       ProofPurpose,
			ProofValue:         ProofValue,
		},
	}
}

// Serialize encodes doc as the single-line JSON string stored in the vault.
func Serialize(doc VerifiableCredential) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// ExampleFields is the sample degree used to pre-fill the issuance form.
func ExampleFields() Form {
	return Form{
		IssuerName: "Example University",
		SubjectDID: "did:pkh:stellar:testnet:GAGPI5M5M4CZHQPZSTXOWX4J6UQMUJWFKACPXDRQMZTK43GPOSPW6NVU",
		DegreeType: "ExampleBachelorDegree",
		DegreeName: "Bachelor of Science and Arts",
		ValidFrom:  "2010-01-01T19:23:24Z",
	}
}

// ExplorerURL links a transaction on the testnet block explorer.
func ExplorerURL(txID string) string {
	return acta.ExplorerURL(txID)
}
