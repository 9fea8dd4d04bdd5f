// Package section segments page content into titled sections using
// font-size heuristics, and carries the relevance fields assigned later
// by ranking.
package section

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/docsift/docsift/internal/pdftext"
)

// Section is a run of page content grouped under the most recent
// heading-like block. Rank and Score are zero until ranking assigns them;
// a Section is never mutated after ranking.
type Section struct {
	Document       string
	Title          string
	Page           int // 1-based page the section was flushed on
	Text           string
	ImportanceRank int
	Score          float64
}

// Options tunes the heading heuristics. Zero values select the defaults.
type Options struct {
	// HeadingSizeRatio: a block whose leading span exceeds the page body
	// font size by this factor is heading-like. Default 1.1.
	HeadingSizeRatio float64

	// FirstBlockTitleCap: the first block of a page is promoted to a
	// heading when its text is shorter than this many runes. Guards
	// against pages that open directly with body text. Default 100.
	FirstBlockTitleCap int
}

func (o Options) withDefaults() Options {
	if o.HeadingSizeRatio <= 0 {
		o.HeadingSizeRatio = 1.1
	}
	if o.FirstBlockTitleCap <= 0 {
		o.FirstBlockTitleCap = 100
	}
	return o
}

// Segment walks the pages of one document and groups content under
// heading-like blocks. Section state never crosses a page boundary; a page
// with no text spans produces no section. Output order follows document
// order.
func Segment(document string, pages []pdftext.Page, opts Options) []Section {
	opts = opts.withDefaults()

	var sections []Section
	for _, page := range pages {
		sections = append(sections, segmentPage(document, page, opts)...)
	}
	return sections
}

func segmentPage(document string, page pdftext.Page, opts Options) []Section {
	body, ok := bodyFontSize(page)
	if !ok {
		return nil
	}

	var sections []Section
	title := fmt.Sprintf("Page %d Content", page.Number)
	var content []string

	flush := func() {
		if len(content) == 0 {
			return
		}
		sections = append(sections, Section{
			Document: document,
			Title:    title,
			Page:     page.Number,
			Text:     strings.TrimSpace(strings.Join(content, "\n")),
		})
	}

	for idx, block := range page.Blocks {
		first, ok := firstSpan(block)
		if !ok {
			continue
		}
		text := strings.TrimSpace(first.Text)

		heading := first.Size > body*opts.HeadingSizeRatio ||
			(first.Bold() && first.Size >= body)
		if idx == 0 && !heading && utf8.RuneCountInString(text) < opts.FirstBlockTitleCap {
			heading = true
		}

		if heading {
			flush()
			title = text
			content = nil
		}
		content = append(content, blockLines(block)...)
	}
	flush()

	return sections
}

// bodyFontSize returns the most frequent span size on the page. Ties go to
// the size encountered first, which keeps the result deterministic.
func bodyFontSize(page pdftext.Page) (float64, bool) {
	counts := make(map[float64]int)
	var order []float64
	for _, block := range page.Blocks {
		for _, line := range block.Lines {
			for _, span := range line.Spans {
				if counts[span.Size] == 0 {
					order = append(order, span.Size)
				}
				counts[span.Size]++
			}
		}
	}
	if len(order) == 0 {
		return 0, false
	}
	best := order[0]
	for _, size := range order[1:] {
		if counts[size] > counts[best] {
			best = size
		}
	}
	return best, true
}

func firstSpan(block pdftext.Block) (pdftext.Span, bool) {
	for _, line := range block.Lines {
		if len(line.Spans) > 0 {
			return line.Spans[0], true
		}
	}
	return pdftext.Span{}, false
}

// blockLines joins the spans of each line and trims the result, one entry
// per line.
func blockLines(block pdftext.Block) []string {
	lines := make([]string, 0, len(block.Lines))
	for _, line := range block.Lines {
		var b strings.Builder
		for _, span := range line.Spans {
			b.WriteString(span.Text)
		}
		lines = append(lines, strings.TrimSpace(b.String()))
	}
	return lines
}
