package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "docsift",
	Short: "PDF outline extraction and persona-relevance ranking",
	Long: `Docsift extracts structural outlines (title plus H1/H2/H3 headings)
from PDF documents using font-signal heuristics, and ranks document
sections by relevance to a persona/task query.

Commands:
  outline    - extract one outline JSON per PDF in a directory
  relevance  - rank sections across PDFs against a persona descriptor
  serve      - run the HTTP API`,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(outlineCmd)
	rootCmd.AddCommand(relevanceCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the process logger. Batch commands log to stderr so
// stdout stays free for piped output.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
