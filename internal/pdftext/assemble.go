package pdftext

import (
	"sort"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

const (
	// Runs whose baselines differ by less than this many points belong to
	// the same line.
	lineTolerance = 2.0

	// A horizontal gap wider than this fraction of the font size means a
	// word boundary the content stream did not encode as a space glyph.
	wordGapFactor = 0.3

	// Vertical gap between lines, as a multiple of the font size, beyond
	// which a new block starts.
	blockGapFactor = 1.8
)

// assemblePage turns the library's flat list of styled-text runs into the
// span/line/block structure. Runs are ordered top-to-bottom then
// left-to-right; consecutive runs with identical font and size merge into
// one span.
func assemblePage(pageNum int, runs []pdflib.Text) Page {
	page := Page{Number: pageNum}
	if len(runs) == 0 {
		return page
	}

	ordered := make([]pdflib.Text, len(runs))
	copy(ordered, runs)
	// PDF origin is bottom-left, so larger Y comes first.
	sort.SliceStable(ordered, func(i, j int) bool {
		if !sameBaseline(ordered[i].Y, ordered[j].Y) {
			return ordered[i].Y > ordered[j].Y
		}
		return ordered[i].X < ordered[j].X
	})

	lines := groupLines(pageNum, ordered)
	page.Blocks = groupBlocks(lines)
	return page
}

func sameBaseline(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < lineTolerance
}

func groupLines(pageNum int, ordered []pdflib.Text) []Line {
	var lines []Line
	var current []pdflib.Text
	for _, run := range ordered {
		if len(current) > 0 && !sameBaseline(run.Y, current[0].Y) {
			lines = append(lines, buildLine(pageNum, current))
			current = current[:0:0]
		}
		current = append(current, run)
	}
	if len(current) > 0 {
		lines = append(lines, buildLine(pageNum, current))
	}
	return lines
}

// buildLine merges consecutive runs of one baseline into spans. A new span
// starts whenever the font or size changes.
func buildLine(pageNum int, runs []pdflib.Text) Line {
	var line Line
	var (
		text     strings.Builder
		font     string
		size     float64
		x0, x1   float64
		baseline float64
		open     bool
	)

	flush := func() {
		if !open {
			return
		}
		line.Spans = append(line.Spans, Span{
			Text:  text.String(),
			Font:  font,
			Size:  size,
			Flags: flagsForFont(font),
			BBox:  [4]float64{x0, baseline - size, x1, baseline},
			Page:  pageNum,
		})
		text.Reset()
		open = false
	}

	for _, run := range runs {
		if open && (run.Font != font || run.FontSize != size) {
			flush()
		}
		if !open {
			font = run.Font
			size = run.FontSize
			baseline = run.Y
			x0 = run.X
			x1 = run.X
			open = true
		} else if gap := run.X - x1; gap > wordGapFactor*size {
			// The stream positioned this run past the previous one
			// without an explicit space.
			text.WriteByte(' ')
		}
		text.WriteString(run.S)
		if end := run.X + run.W; end > x1 {
			x1 = end
		}
	}
	flush()
	return line
}

// groupBlocks splits the line sequence on large vertical gaps.
func groupBlocks(lines []Line) []Block {
	var blocks []Block
	var current Block
	var prevBaseline, prevSize float64

	for _, line := range lines {
		if len(line.Spans) == 0 {
			continue
		}
		baseline := line.Spans[0].BBox[3]
		size := line.Spans[0].Size
		if len(current.Lines) > 0 {
			gap := prevBaseline - baseline
			threshold := blockGapFactor * prevSize
			if prevSize <= 0 {
				threshold = blockGapFactor * size
			}
			if gap > threshold {
				blocks = append(blocks, current)
				current = Block{}
			}
		}
		current.Lines = append(current.Lines, line)
		prevBaseline = baseline
		prevSize = size
	}
	if len(current.Lines) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

// flagsForFont derives style bits from the font name, the only style
// signal the library exposes.
func flagsForFont(font string) int {
	flags := 0
	lower := strings.ToLower(font)
	if strings.Contains(lower, "bold") || strings.Contains(lower, "black") || strings.Contains(lower, "heavy") {
		flags |= FlagBold
	}
	if strings.Contains(lower, "italic") || strings.Contains(lower, "oblique") {
		flags |= FlagItalic
	}
	return flags
}
