package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"actavc/internal/identity"
	id "actavc/pkg/domain"
)

func newDIDCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "did <address>",
		Short: "Derive the did:pkh identifier of a Stellar testnet address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			address, err := id.ParseStellarAddress(args[0])
			if err != nil {
				errorColor.Fprintln(cmd.ErrOrStderr(), "✗ not a valid Stellar account address")
				return fmt.Errorf("invalid address %q: %w", args[0], err)
			}
			did, _ := identity.ComputeDID(address.String())
			out := cmd.OutOrStdout()
			if opts.json {
				return printJSON(out, map[string]string{"address": address.String(), "did": did.String()})
			}
			fmt.Fprintln(out, did)
			return nil
		},
	}
}
