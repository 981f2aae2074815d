// Package acta is the client for the hosted credential vault API. Transaction
// operations are prepared by the API, signed by the user's wallet and then
// submitted; read operations are plain calls keyed by owner.
package acta

import (
	"context"
	"encoding/json"

	"actavc/internal/wallet"
)

// TestnetPassphrase is the Stellar test network passphrase.
const TestnetPassphrase = "Test SDF Network ; September 2015"

const explorerTxURL = "https://stellar.expert/explorer/testnet/tx/"

// ExplorerURL links a transaction on the testnet block explorer.
func ExplorerURL(txID string) string {
	return explorerTxURL + txID
}

// Client is the vault/issuance surface used by the credential and vault services.
type Client interface {
	Issue(ctx context.Context, req IssueRequest) (*TxResult, error)
	CreateVault(ctx context.Context, req CreateVaultRequest) (*TxResult, error)
	AuthorizeIssuer(ctx context.Context, req AuthorizeIssuerRequest) (*TxResult, error)
	ListVCIDs(ctx context.Context, owner string) ([]string, error)
	// GetVC returns the raw record JSON. A JSON null means no such credential.
	GetVC(ctx context.Context, ref VCRef) (json.RawMessage, error)
	VerifyVC(ctx context.Context, ref VCRef) (map[string]any, error)
}

// IssueRequest registers a serialized credential against the owner's vault.
type IssueRequest struct {
	Owner     string
	VCID      string
	VCData    string
	Issuer    string
	IssuerDID string
	Sign      wallet.Signer
}

type CreateVaultRequest struct {
	Owner    string
	OwnerDID string
	Sign     wallet.Signer
}

type AuthorizeIssuerRequest struct {
	Owner  string
	Issuer string
	Sign   wallet.Signer
}

// VCRef addresses one credential in an owner's vault.
type VCRef struct {
	Owner string `json:"owner"`
	VCID  string `json:"vcId"`
}

// TxResult is the outcome of a submitted transaction.
type TxResult struct {
	TxID string `json:"txId"`
}
