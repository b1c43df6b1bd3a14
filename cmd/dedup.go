package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/citeparse/citeparse/citeparse"
	"github.com/citeparse/citeparse/dedup"
)

var (
	dedupGroupByYear bool
	dedupParallel    bool
	dedupPreferences []string
)

var dedupCmd = &cobra.Command{
	Use:   "dedup <file>",
	Short: "Find duplicate citations within a single file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDedup,
}

func init() {
	dedupCmd.Flags().BoolVar(&dedupGroupByYear, "group-by-year", true, "Partition candidates by publication year before comparing")
	dedupCmd.Flags().BoolVar(&dedupParallel, "parallel", false, "Process year buckets concurrently")
	dedupCmd.Flags().StringSliceVar(&dedupPreferences, "prefer-source", nil, "Source names in priority order for representative selection; no effect here, since a single input file supplies no per-record source names")
}

func runDedup(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := readInput(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	citations, detected, cerr := citeparse.DetectAndParse(string(data))
	if cerr != nil {
		return cerr
	}
	fmt.Fprintf(os.Stderr, "Detected format: %s (%d records)\n", detected, len(citations))

	cfg := dedup.NewDeduplicatorConfig()
	cfg.GroupByYear = dedupGroupByYear
	cfg.RunInParallel = dedupParallel
	cfg.SourcePreferences = dedupPreferences

	groups, err := dedup.FindDuplicatesWithConfig(citations, nil, cfg)
	if err != nil {
		return fmt.Errorf("deduplicating: %w", err)
	}

	dupCount := 0
	for _, g := range groups {
		dupCount += len(g.Duplicates)
	}
	fmt.Fprintf(os.Stderr, "%d groups, %d duplicate records (of %d total)\n", len(groups), dupCount, len(citations))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(groups)
}
