package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/citeparse/citeparse/citeparse"
	"github.com/citeparse/citeparse/diagnostics"
)

var parsePretty bool

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a citation file and print the resulting records as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parsePretty, "pretty", true, "Pretty-print JSON output")
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := readInput(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	citations, detected, cerr := citeparse.DetectAndParse(string(data))
	if cerr != nil {
		if cerr.Parse != nil {
			fmt.Fprintln(os.Stderr, diagnostics.Render(path, string(data), cerr.Parse))
		}
		return cerr
	}

	fmt.Fprintf(os.Stderr, "Detected format: %s (%d records)\n", detected, len(citations))

	enc := json.NewEncoder(os.Stdout)
	if parsePretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(citations)
}
