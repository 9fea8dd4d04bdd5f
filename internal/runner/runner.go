// Package runner drives the batch pipelines: outline extraction over a
// directory of PDFs, and persona-relevance analysis across a document set.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/docsift/docsift/internal/config"
	"github.com/docsift/docsift/internal/embed"
	"github.com/docsift/docsift/internal/outline"
	"github.com/docsift/docsift/internal/pdftext"
	"github.com/docsift/docsift/internal/persona"
	"github.com/docsift/docsift/internal/rank"
	"github.com/docsift/docsift/internal/section"
	"github.com/docsift/docsift/internal/subsection"
)

// Runner executes batch runs. Documents are processed one at a time; a
// document that fails to parse is logged and skipped without aborting the
// run.
type Runner struct {
	cfg      config.Config
	embedder embed.Embedder
	log      *slog.Logger
}

// New creates a Runner. The embedder may be nil when only outline runs
// are needed.
func New(cfg config.Config, embedder embed.Embedder, log *slog.Logger) *Runner {
	return &Runner{cfg: cfg, embedder: embedder, log: log}
}

// Summary reports the outcome of a batch run.
type Summary struct {
	Processed int
	Failed    int
}

// ListPDFs returns the names of PDF files directly inside dir, in
// directory order.
func ListPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// OutlineDir extracts an outline from every PDF in inputDir and writes
// one <basename>.json per document into outputDir. Failed documents
// produce no output file.
func (r *Runner) OutlineDir(ctx context.Context, inputDir, outputDir string) (Summary, error) {
	names, err := ListPDFs(inputDir)
	if err != nil {
		return Summary{}, err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("create output dir: %w", err)
	}

	var sum Summary
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		base := strings.TrimSuffix(name, filepath.Ext(name))
		outPath := filepath.Join(outputDir, base+".json")
		if err := r.outlineOne(filepath.Join(inputDir, name), outPath); err != nil {
			r.log.Error("outline extraction failed", "document", name, "error", err)
			sum.Failed++
			continue
		}
		r.log.Info("outline written", "document", name, "output", base+".json")
		sum.Processed++
	}
	return sum, nil
}

func (r *Runner) outlineOne(path, outPath string) error {
	doc, err := pdftext.Open(path)
	if err != nil {
		return err
	}
	defer doc.Close()

	title := doc.Title()
	candidates := outline.Collect(doc.Pages())
	entries := outline.Classify(candidates)
	return outline.WriteJSONFile(outPath, title, entries)
}

// Analyze runs the relevance pipeline over every PDF in inputDir: segment
// each document into sections, rank per document, re-rank globally, and
// refine the top sections into sentences. Documents that cannot be parsed
// or embedded are skipped.
func (r *Runner) Analyze(ctx context.Context, inputDir string, d persona.Descriptor) (*RelevanceReport, Summary, error) {
	if r.embedder == nil {
		return nil, Summary{}, fmt.Errorf("no embedder configured")
	}
	names, err := ListPDFs(inputDir)
	if err != nil {
		return nil, Summary{}, err
	}

	ranker := rank.New(r.embedder, r.cfg.SnippetLength)
	segOpts := section.Options{
		HeadingSizeRatio:   r.cfg.HeadingSizeRatio,
		FirstBlockTitleCap: r.cfg.FirstBlockTitleCap,
	}

	var sum Summary
	var all []section.Section
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, sum, err
		}
		ranked, err := r.analyzeOne(ctx, filepath.Join(inputDir, name), name, d, ranker, segOpts)
		if err != nil {
			r.log.Error("document analysis failed", "document", name, "error", err)
			sum.Failed++
			continue
		}
		r.log.Info("document analyzed", "document", name, "sections", len(ranked))
		all = append(all, ranked...)
		sum.Processed++
	}

	report := r.buildReport(names, d, rank.Rerank(all))
	return report, sum, nil
}

func (r *Runner) analyzeOne(ctx context.Context, path, name string, d persona.Descriptor, ranker *rank.Ranker, opts section.Options) ([]section.Section, error) {
	doc, err := pdftext.Open(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	sections := section.Segment(name, doc.Pages(), opts)
	return ranker.Rank(ctx, sections, d.Persona, d.JobToBeDone)
}

func (r *Runner) buildReport(inputDocs []string, d persona.Descriptor, ranked []section.Section) *RelevanceReport {
	topK := r.cfg.TopSections
	if topK > len(ranked) {
		topK = len(ranked)
	}

	subOpts := subsection.Options{
		MinSentenceLen: r.cfg.MinSentenceLen,
		TopSentences:   r.cfg.TopSentences,
	}

	extracted := make([]ExtractedSection, 0, topK)
	subs := []subsection.Entry{}
	for _, sec := range ranked[:topK] {
		extracted = append(extracted, ExtractedSection{
			Document:       sec.Document,
			PageNumber:     sec.Page,
			SectionTitle:   sec.Title,
			ImportanceRank: sec.ImportanceRank,
		})
		subs = append(subs, subsection.Extract(sec, d.Persona, d.JobToBeDone, subOpts)...)
	}

	if inputDocs == nil {
		inputDocs = []string{}
	}
	return &RelevanceReport{
		Metadata: Metadata{
			InputDocuments:      inputDocs,
			Persona:             d.Persona,
			JobToBeDone:         d.JobToBeDone,
			ProcessingTimestamp: timestamp(),
		},
		ExtractedSections:  extracted,
		SubSectionAnalysis: subs,
	}
}
