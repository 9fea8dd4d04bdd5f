package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8091" {
		t.Errorf("Port = %q, want 8091", cfg.Port)
	}
	if cfg.EmbedModel != "text-embedding-3-small" {
		t.Errorf("EmbedModel = %q", cfg.EmbedModel)
	}
	if cfg.WorkerCount != 4 || cfg.MaxQueueSize != 100 {
		t.Errorf("worker pool defaults wrong: %d/%d", cfg.WorkerCount, cfg.MaxQueueSize)
	}
	if cfg.MaxUploadBytes != 52428800 {
		t.Errorf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
	}
	if cfg.TopSections != 5 || cfg.TopSentences != 3 || cfg.MinSentenceLen != 20 || cfg.SnippetLength != 200 {
		t.Errorf("ranking defaults wrong: %+v", cfg)
	}
	if cfg.HeadingSizeRatio != 1.1 || cfg.FirstBlockTitleCap != 100 {
		t.Errorf("segmentation defaults wrong: %v/%d", cfg.HeadingSizeRatio, cfg.FirstBlockTitleCap)
	}
	if cfg.JobTTL != time.Hour {
		t.Errorf("JobTTL = %v", cfg.JobTTL)
	}
}

func TestLoad_EnvOverridesAndClamps(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("WORKER_COUNT", "-3")
	t.Setenv("TOP_SECTIONS", "7")
	t.Setenv("EMBED_TIMEOUT", "30s")
	t.Setenv("HEADING_SIZE_RATIO", "0.5")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("negative worker count must clamp to default, got %d", cfg.WorkerCount)
	}
	if cfg.TopSections != 7 {
		t.Errorf("TopSections = %d", cfg.TopSections)
	}
	if cfg.EmbedTimeout != 30*time.Second {
		t.Errorf("EmbedTimeout = %v", cfg.EmbedTimeout)
	}
	if cfg.HeadingSizeRatio != 1.1 {
		t.Errorf("ratio at or below 1 must clamp to default, got %v", cfg.HeadingSizeRatio)
	}
}

func TestLoad_InvalidEnvFallsBack(t *testing.T) {
	t.Setenv("WORKER_COUNT", "not-a-number")
	t.Setenv("EMBED_TIMEOUT", "soon")

	cfg := Load()
	if cfg.WorkerCount != 4 {
		t.Errorf("WorkerCount = %d, want 4", cfg.WorkerCount)
	}
	if cfg.EmbedTimeout != 60*time.Second {
		t.Errorf("EmbedTimeout = %v, want 60s", cfg.EmbedTimeout)
	}
}

func TestValidate(t *testing.T) {
	base := Config{APIKey: "k", EmbedAPIKey: "e"}
	if err := base.ValidateServe(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
	if err := (Config{EmbedAPIKey: "e"}).ValidateServe(); err == nil {
		t.Error("missing API key accepted")
	}
	if err := (Config{APIKey: "k"}).ValidateServe(); err == nil {
		t.Error("missing embed key accepted")
	}
	if err := (Config{}).ValidateEmbedding(); err == nil {
		t.Error("missing embed key accepted by ValidateEmbedding")
	}
	if err := (Config{EmbedAPIKey: "e"}).ValidateEmbedding(); err != nil {
		t.Errorf("outline-only config rejected: %v", err)
	}
}
