package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"actavc/internal/credential"
	"actavc/pkg/validation"
)

func newCredentialCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credential",
		Short: "Build degree credentials",
	}
	cmd.AddCommand(newExampleCmd(), newBuildCmd(opts))
	return cmd
}

func newExampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example",
		Short: "Print the example issuance form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printJSON(cmd.OutOrStdout(), credential.ExampleFields())
		},
	}
}

func newBuildCmd(opts *options) *cobra.Command {
	var (
		issuerDID string
		formFile  string
		form      credential.Form
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Assemble a degree credential document from a form",
		Long:  "Assembles the W3C credential document that would be issued, from flags or from a JSON form file (--form, \"-\" for stdin). Flags override form values.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var f credential.Form
			if formFile != "" {
				raw, err := readInput(cmd, formFile)
				if err != nil {
					return err
				}
				if err := json.Unmarshal(raw, &f); err != nil {
					return fmt.Errorf("parsing form: %w", err)
				}
			}
			overlay(&f, form)

			if err := validation.Validate(f); err != nil {
				return err
			}
			if issuerDID == "" {
				return fmt.Errorf("--issuer-did is required")
			}

			doc := credential.Build(credential.Fields{
				IssuerDID:  issuerDID,
				IssuerName: f.IssuerName,
				SubjectDID: f.SubjectDID,
				DegreeType: f.DegreeType,
				DegreeName: f.DegreeName,
				ValidFrom:  f.ValidFrom,
			})
			out := cmd.OutOrStdout()
			if opts.json {
				return printJSON(out, doc)
			}
			serialized, err := credential.Serialize(doc)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, serialized)
			return nil
		},
	}
	cmd.Flags().StringVar(&issuerDID, "issuer-did", "", "DID of the issuing owner")
	cmd.Flags().StringVar(&formFile, "form", "", "JSON form file")
	cmd.Flags().StringVar(&form.IssuerName, "issuer-name", "", "Issuer display name")
	cmd.Flags().StringVar(&form.SubjectDID, "subject-did", "", "Subject DID")
	cmd.Flags().StringVar(&form.DegreeType, "degree-type", "", "Degree type")
	cmd.Flags().StringVar(&form.DegreeName, "degree-name", "", "Degree name")
	cmd.Flags().StringVar(&form.ValidFrom, "valid-from", "", "RFC 3339 validity start (default now)")
	return cmd
}

func overlay(dst *credential.Form, src credential.Form) {
	if src.IssuerName != "" {
		dst.IssuerName = src.IssuerName
	}
	if src.SubjectDID != "" {
		dst.SubjectDID = src.SubjectDID
	}
	if src.DegreeType != "" {
		dst.DegreeType = src.DegreeType
	}
	if src.DegreeName != "" {
		dst.DegreeName = src.DegreeName
	}
	if src.ValidFrom != "" {
		dst.ValidFrom = src.ValidFrom
	}
}
