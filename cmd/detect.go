package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/citeparse/citeparse/format"
)

var detectCmd = &cobra.Command{
	Use:   "detect <file>",
	Short: "Detect which citation format a file contains",
	Args:  cobra.ExactArgs(1),
	RunE:  runDetect,
}

func runDetect(cmd *cobra.Command, args []string) error {
	data, err := readInput(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	peek := data
	if len(peek) > 4096 {
		peek = peek[:4096]
	}

	_, f, ok := format.Detect(peek)
	if !ok {
		fmt.Println("unknown")
		return nil
	}
	fmt.Println(f.String())
	return nil
}
