package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	jwttoken "actavc/internal/jwt_token"
	id "actavc/pkg/domain"
)

// devSigningKey matches the server default when SESSION_SIGNING_KEY is unset.
// Tokens signed with it do not work against a production deployment.
const devSigningKey = "dev-secret-key-change-in-production"

type tokenOutput struct {
	Token     string `json:"token"`
	Address   string `json:"address"`
	ExpiresAt string `json:"expires_at"`
	Usage     string `json:"usage"`
}

func newSessionTokenCmd(opts *options) *cobra.Command {
	var (
		signingKey string
		issuer     string
		walletID   string
		walletName string
		ttl        time.Duration
	)
	cmd := &cobra.Command{
		Use:   "session-token <address>",
		Short: "Mint a wallet session token for local testing of protected routes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			address := args[0]
			if _, err := id.ParseStellarAddress(address); err != nil {
				return fmt.Errorf("invalid address %q: %w", address, err)
			}
			token, expiresAt, err := jwttoken.NewJWTService(signingKey, issuer, ttl).
				GenerateSessionToken(context.Background(), jwttoken.SessionInput{
					Address:    address,
					WalletName: walletName,
					WalletID:   walletID,
					Device:     "vcctl",
				})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			usage := fmt.Sprintf(`curl -H "Authorization: Bearer %s" http://localhost:8080/vault/credentials`, token)
			if opts.json {
				return printJSON(out, tokenOutput{
					Token:     token,
					Address:   address,
					ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
					Usage:     usage,
				})
			}
			fmt.Fprintln(out, token)
			if signingKey == devSigningKey {
				labelColor.Fprintln(cmd.ErrOrStderr(), "signed with the development key")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&signingKey, "signing-key", devSigningKey, "HMAC key the server validates sessions with")
	cmd.Flags().StringVar(&issuer, "issuer", "actavc", "Token issuer, matching SESSION_ISSUER")
	cmd.Flags().StringVar(&walletID, "wallet-id", "freighter", "Wallet module id")
	cmd.Flags().StringVar(&walletName, "wallet-name", "Freighter", "Wallet display name")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token time-to-live")
	return cmd
}
