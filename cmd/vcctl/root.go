package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	labelColor   = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
)

type options struct {
	json    bool
	noColor bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "vcctl",
		Short: "Derive owner DIDs, build degree credentials and read vault records",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "Output as JSON")
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		newDIDCmd(opts),
		newCredentialCmd(opts),
		newSummarizeCmd(opts),
		newSessionTokenCmd(opts),
	)
	return root
}

// readInput returns the file named by arg, or stdin when arg is empty or "-".
func readInput(cmd *cobra.Command, arg string) ([]byte, error) {
	if arg == "" || arg == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", arg, err)
	}
	return data, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func printHeader(w io.Writer, title string) {
	headerColor.Fprintln(w, title)
	headerColor.Fprintln(w, strings.Repeat("─", 50))
}

func printField(w io.Writer, label, value string) {
	labelColor.Fprintf(w, "  %-12s ", label+":")
	fmt.Fprintln(w, value)
}
