package runner

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/docsift/docsift/internal/subsection"
)

// Metadata describes one relevance run.
type Metadata struct {
	InputDocuments      []string `json:"input_documents"`
	Persona             string   `json:"persona"`
	JobToBeDone         string   `json:"job_to_be_done"`
	ProcessingTimestamp string   `json:"processing_timestamp"`
}

// ExtractedSection is one globally ranked section in the report.
type ExtractedSection struct {
	Document       string `json:"document"`
	PageNumber     int    `json:"page_number"`
	SectionTitle   string `json:"section_title"`
	ImportanceRank int    `json:"importance_rank"`
}

// RelevanceReport is the persisted output of the relevance pipeline:
// the top-ranked sections across all input documents plus the refined
// sentences for each of them.
type RelevanceReport struct {
	Metadata           Metadata           `json:"metadata"`
	ExtractedSections  []ExtractedSection `json:"extracted_sections"`
	SubSectionAnalysis []subsection.Entry `json:"sub_section_analysis"`
}

func timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

// WriteReport emits the report with 2-space indentation; HTML escaping is
// disabled so document text survives verbatim.
func WriteReport(w io.Writer, report *RelevanceReport) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// WriteReportFile writes the report JSON to path.
func WriteReportFile(path string, report *RelevanceReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteReport(f, report); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
