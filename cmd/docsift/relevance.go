package main

import (
	"github.com/spf13/cobra"

	"github.com/docsift/docsift/internal/config"
	"github.com/docsift/docsift/internal/embed"
	"github.com/docsift/docsift/internal/persona"
	"github.com/docsift/docsift/internal/runner"
)

var (
	relevanceInputDir    string
	relevancePersonaFile string
	relevanceOutput      string
)

var relevanceCmd = &cobra.Command{
	Use:   "relevance",
	Short: "Rank document sections by relevance to a persona/task query",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		cfg := config.Load()
		if err := cfg.ValidateEmbedding(); err != nil {
			return err
		}

		d, err := persona.Load(relevancePersonaFile)
		if err != nil {
			return err
		}

		embedder := embed.NewCache(embed.NewOpenAIEmbedder(embed.OpenAIConfig{
			APIKey:     cfg.EmbedAPIKey,
			BaseURL:    cfg.EmbedBaseURL,
			Model:      cfg.EmbedModel,
			MaxRetries: cfg.EmbedMaxRetries,
			RetryDelay: cfg.EmbedRetryDelay,
			Timeout:    cfg.EmbedTimeout,
		}))

		run := runner.New(cfg, embedder, log)
		report, sum, err := run.Analyze(cmd.Context(), relevanceInputDir, d)
		if err != nil {
			return err
		}
		log.Info("relevance run complete", "processed", sum.Processed, "failed", sum.Failed,
			"sections", len(report.ExtractedSections))

		return runner.WriteReportFile(relevanceOutput, report)
	},
}

func init() {
	relevanceCmd.Flags().StringVarP(&relevanceInputDir, "input", "i", "input", "directory of input PDFs")
	relevanceCmd.Flags().StringVarP(&relevancePersonaFile, "persona", "p", "persona.json", "persona descriptor file")
	relevanceCmd.Flags().StringVarP(&relevanceOutput, "output", "o", "output.json", "report output file")
}
