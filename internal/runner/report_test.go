package runner

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/docsift/docsift/internal/subsection"
)

func sampleReport() *RelevanceReport {
	return &RelevanceReport{
		Metadata: Metadata{
			InputDocuments:      []string{"a.pdf", "b.pdf"},
			Persona:             "Travel Planner",
			JobToBeDone:         "Plan a trip",
			ProcessingTimestamp: timestamp(),
		},
		ExtractedSections: []ExtractedSection{
			{Document: "a.pdf", PageNumber: 3, SectionTitle: "Beaches & Coves", ImportanceRank: 1},
		},
		SubSectionAnalysis: []subsection.Entry{
			{Document: "a.pdf", RefinedText: "Visit the hidden coves at low tide.", PageNumber: 3},
		},
	}
}

func TestWriteReport_FieldNames(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteReport(&buf, sampleReport()); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	out := buf.String()

	for _, field := range []string{
		`"metadata"`, `"input_documents"`, `"persona"`, `"job_to_be_done"`,
		`"processing_timestamp"`, `"extracted_sections"`, `"document"`,
		`"page_number"`, `"section_title"`, `"importance_rank"`,
		`"sub_section_analysis"`, `"refined_text"`,
	} {
		if !strings.Contains(out, field) {
			t.Errorf("report missing field %s:\n%s", field, out)
		}
	}

	var round RelevanceReport
	if err := json.Unmarshal(buf.Bytes(), &round); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if round.ExtractedSections[0].SectionTitle != "Beaches & Coves" {
		t.Errorf("section title escaped or lost: %q", round.ExtractedSections[0].SectionTitle)
	}
	if !strings.Contains(out, "Beaches & Coves") {
		t.Errorf("ampersand must not be HTML-escaped:\n%s", out)
	}
}

func TestTimestampFormat(t *testing.T) {
	ts := timestamp()
	matched, err := regexp.MatchString(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`, ts)
	if err != nil {
		t.Fatal(err)
	}
	if !matched {
		t.Errorf("timestamp %q does not match YYYY-MM-DD HH:MM:SS", ts)
	}
}
