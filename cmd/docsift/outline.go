package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docsift/docsift/internal/config"
	"github.com/docsift/docsift/internal/runner"
)

var (
	outlineInputDir  string
	outlineOutputDir string
)

var outlineCmd = &cobra.Command{
	Use:   "outline",
	Short: "Extract a structural outline from every PDF in a directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		cfg := config.Load()

		run := runner.New(cfg, nil, log)
		sum, err := run.OutlineDir(cmd.Context(), outlineInputDir, outlineOutputDir)
		if err != nil {
			return err
		}
		log.Info("outline run complete", "processed", sum.Processed, "failed", sum.Failed)
		if sum.Processed == 0 && sum.Failed > 0 {
			return fmt.Errorf("all %d documents failed", sum.Failed)
		}
		return nil
	},
}

func init() {
	outlineCmd.Flags().StringVarP(&outlineInputDir, "input", "i", "input", "directory of input PDFs")
	outlineCmd.Flags().StringVarP(&outlineOutputDir, "output", "o", "output", "directory for outline JSON files")
}
