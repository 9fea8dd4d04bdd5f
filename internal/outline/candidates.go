package outline

import (
	"strings"
	"unicode/utf8"

	"github.com/docsift/docsift/internal/pdftext"
)

// Candidate is a heading candidate: one span with its font metadata,
// flattened out of the page/block/line structure.
type Candidate struct {
	Text  string
	Font  string
	Size  float64
	Flags int
	BBox  [4]float64
	Color int
	Page  int
}

// Collect flattens every span on every page into heading candidates.
// Spans whose trimmed text is shorter than two runes carry no useful
// heading signal and are dropped.
func Collect(pages []pdftext.Page) []Candidate {
	var candidates []Candidate
	for _, page := range pages {
		for _, block := range page.Blocks {
			for _, line := range block.Lines {
				for _, span := range line.Spans {
					text := strings.TrimSpace(span.Text)
					if utf8.RuneCountInString(text) < 2 {
						continue
					}
					candidates = append(candidates, Candidate{
						Text:  text,
						Font:  span.Font,
						Size:  span.Size,
						Flags: span.Flags,
						BBox:  span.BBox,
						Color: span.Color,
						Page:  page.Number,
					})
				}
			}
		}
	}
	return candidates
}
