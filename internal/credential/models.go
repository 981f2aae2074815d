// Package credential assembles W3C verifiable credentials for degrees and
// submits them to the owner's vault through a wallet-signed transaction.
package credential

import (
	"time"

	id "actavc/pkg/domain"
)

// Fixed parts of every credential issued here.
const (
	ContextV2         = "https://www.w3.org/ns/credentials/v2"
	ContextExamplesV2 = "https://www.w3.org/ns/credentials/examples/v2"

	TypeVerifiableCredential = "VerifiableCredential"
	TypeExampleDegree        = "ExampleDegreeCredential"

	IDPrefix = "cred_"
)

// The proof block is a static placeholder. Authorization comes from the
// wallet-signed transaction that carries the credential, not from this proof.
const (
	ProofType               = "DataIntegrityProof"
	ProofVerificationMethod = "did:key:zDnaebSRtPnW6YCpxAhR5JPxJqt9UunCsBPhLEtUokUvp87nQ"
	ProofCryptosuite        = "ecdsa-rdfc-2019"
	ProofPurpose            = "assertionMethod"
	ProofValue              = "z35CwmxThsUQ4t79JfacmMcw4y1kCqtD4rKqUooKM2NyKwdF5jmXMRo9oGnzHerf8hfQiWkEReycSXC2NtRrdMZN4"
)

// VerifiableCredential is the document serialized into the vault.
type VerifiableCredential struct {
	Context           []string          `json:"@context"`
	ID                string            `json:"id"`
	Type              []string          `json:"type"`
	Issuer            Issuer            `json:"issuer"`
	ValidFrom         string            `json:"validFrom"`
	CredentialSubject CredentialSubject `json:"credentialSubject"`
	Proof             Proof             `json:"proof"`
}

type Issuer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CredentialSubject struct {
	ID     string `json:"id"`
	Degree Degree `json:"degree"`
}

type Degree struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

type Proof struct {
	Type               string `json:"type"`
	Created            string `json:"created"`
	VerificationMethod string `json:"verificationMethod"`
	Cryptosuite        string `json:"cryptosuite"`
	ProofPurpose       string `json:"proofPurpose"`
	ProofValue         string `json:"proofValue"`
}

// Fields are the inputs to Build. Build does not validate them.
type Fields struct {
	IssuerDID  string
	IssuerName string
	SubjectDID string
	DegreeType string
	DegreeName string
	// ValidFrom is an RFC 3339 timestamp; empty means now.
	ValidFrom string
}

// Form is the user-facing issuance form.
type Form struct {
	IssuerName string `json:"issuer_name" validate:"required"`
	SubjectDID string `json:"subject_did" validate:"required"`
	DegreeType string `json:"degree_type" validate:"required"`
	DegreeName string `json:"degree_name" validate:"required"`
	ValidFrom  string `json:"valid_from" validate:"omitempty,rfc3339"`
}

// Issuance is what is kept locally after a successful submission.
type Issuance struct {
	ID        id.IssuanceID
	VCID      string
	TxID      string
	Owner     string
	IssuerDID string
	CreatedAt time.Time
}

// Result is returned by Submit and Issue.
type Result struct {
	VCID        string `json:"vc_id"`
	TxID        string `json:"tx_id"`
	IssuerDID   string `json:"issuer_did"`
	ExplorerURL string `json:"explorer_url"`
}
