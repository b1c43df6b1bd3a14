// Package cmd provides CLI commands for citeparse.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func setupLogger() {
	logLevel := strings.ToUpper(os.Getenv("LOG_LEVEL"))
	if logLevel == "" {
		logLevel = "INFO"
	}

	var level slog.Level
	switch logLevel {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN", "WARNING":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	logger := slog.New(handler)

	slog.SetDefault(logger)
}

var rootCmd = &cobra.Command{
	Use:   "citeparse",
	Short: "Parse and deduplicate bibliographic citation files",
	Long: `citeparse is a CLI wrapper around the citeparse library: it detects which
of four citation formats (RIS, PubMed/MEDLINE, EndNote XML, CSV) a file uses,
parses it into a normalized in-memory representation, and can find
fuzzy-matched duplicate citations within a collection.

Examples:
  citeparse detect refs.ris
  citeparse parse refs.ris > refs.json
  citeparse dedup library.xml --prefer-source PubMed --prefer-source Embase`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	setupLogger()
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(dedupCmd)
}
