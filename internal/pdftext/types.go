package pdftext

// Style flag bits synthesized by this package. The underlying PDF library
// exposes only font names, so boldness is derived from the name and exposed
// as a single bit consulted by every downstream heuristic.
const (
	FlagBold   = 1 << 1
	FlagItalic = 1 << 2
)

// Span is one styled run of text on a page, the smallest unit the outline
// and segmentation heuristics consume.
type Span struct {
	Text  string
	Font  string
	Size  float64
	Flags int
	BBox  [4]float64 // x0, y0, x1, y1 in page coordinates
	Color int
	Page  int // 1-based
}

// Line groups spans sharing a baseline.
type Line struct {
	Spans []Span
}

// Block groups vertically adjacent lines. Only text blocks are emitted;
// images and vector graphics are invisible at this layer.
type Block struct {
	Lines []Line
}

// Page holds the text blocks of a single page.
type Page struct {
	Number int // 1-based
	Blocks []Block
}

// Bold reports whether the span's style flags carry the bold bit.
func (s Span) Bold() bool {
	return s.Flags&FlagBold != 0
}
