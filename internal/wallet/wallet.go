// Package wallet manages the connected Stellar wallet: which module the user
// picked, the address it exposes, and the signer used for vault transactions.
// Keys never enter this process; signing is delegated to a wallet bridge.
package wallet

import (
	"context"
	"strings"
)

// Wallet module identifiers understood by the bridge.
const (
	ModuleFreighter     = "freighter"
	ModuleAlbedo        = "albedo"
	ModuleXBull         = "xbull"
	ModuleWalletConnect = "walletconnect"
)

// ModuleIDForName maps a wallet display name to its module id by
// case-insensitive substring match. It returns "" for unknown wallets.
func ModuleIDForName(name string) string {
	n := strings.ToLower(name)
	for _, id := range []string{ModuleFreighter, ModuleAlbedo, ModuleXBull, ModuleWalletConnect} {
		if strings.Contains(n, id) {
			return id
		}
	}
	return ""
}

// SignOptions accompany a transaction sent to the wallet for signing.
type SignOptions struct {
	NetworkPassphrase string
	// Address selects the signing account when the wallet holds several.
	Address string
}

// Signer signs a base64 XDR transaction envelope and returns the signed envelope.
type Signer func(ctx context.Context, xdr string, opts SignOptions) (string, error)

// Connector talks to the user's wallet.
type Connector interface {
	Address(ctx context.Context, moduleID string) (string, error)
	SignTransaction(ctx context.Context, xdr string, opts SignOptions) (string, error)
	Disconnect(ctx context.Context, address string) error
}

// SignerFor binds a connector to the connected address. It returns nil when
// there is no connector or no address, which callers treat as "signer unavailable".
func SignerFor(c Connector, address string) Signer {
	if c == nil || strings.TrimSpace(address) == "" {
		return nil
	}
	return func(ctx context.Context, xdr string, opts SignOptions) (string, error) {
		if opts.Address == "" {
			opts.Address = address
		}
		return c.SignTransaction(ctx, xdr, opts)
	}
}
