package outline

import (
	"testing"

	"github.com/docsift/docsift/internal/pdftext"
)

func pageWithSpans(number int, spans ...pdftext.Span) pdftext.Page {
	return pdftext.Page{
		Number: number,
		Blocks: []pdftext.Block{{Lines: []pdftext.Line{{Spans: spans}}}},
	}
}

func TestCollect_FlattensAndTrims(t *testing.T) {
	pages := []pdftext.Page{
		pageWithSpans(1,
			pdftext.Span{Text: "  Heading One  ", Font: "F-Bold", Size: 20, Flags: pdftext.FlagBold, Page: 1},
			pdftext.Span{Text: "body", Font: "F", Size: 10, Page: 1},
		),
		pageWithSpans(2,
			pdftext.Span{Text: "Second Page", Font: "F", Size: 14, Page: 2},
		),
	}

	cands := Collect(pages)
	if len(cands) != 3 {
		t.Fatalf("expected 3 candidates, got %d: %v", len(cands), cands)
	}
	if cands[0].Text != "Heading One" {
		t.Errorf("text not trimmed: %q", cands[0].Text)
	}
	if cands[0].Page != 1 || cands[2].Page != 2 {
		t.Errorf("page numbers not carried: %v", cands)
	}
	if cands[0].Font != "F-Bold" || cands[0].Size != 20 || cands[0].Flags != pdftext.FlagBold {
		t.Errorf("font metadata not carried: %+v", cands[0])
	}
}

func TestCollect_DropsTinySpans(t *testing.T) {
	pages := []pdftext.Page{
		pageWithSpans(1,
			pdftext.Span{Text: "•", Font: "F", Size: 10, Page: 1},
			pdftext.Span{Text: "  a  ", Font: "F", Size: 10, Page: 1},
			pdftext.Span{Text: "   ", Font: "F", Size: 10, Page: 1},
			pdftext.Span{Text: "ok", Font: "F", Size: 10, Page: 1},
		),
	}
	cands := Collect(pages)
	if len(cands) != 1 || cands[0].Text != "ok" {
		t.Errorf("expected only %q to survive, got %v", "ok", cands)
	}
}

func TestCollect_EmptyPages(t *testing.T) {
	if got := Collect(nil); len(got) != 0 {
		t.Errorf("expected no candidates, got %v", got)
	}
	if got := Collect([]pdftext.Page{{Number: 1}}); len(got) != 0 {
		t.Errorf("expected no candidates from blockless page, got %v", got)
	}
}
