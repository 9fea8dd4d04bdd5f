package outline

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/docsift/docsift/internal/pdftext"
)

// Level is a heading depth in the extracted outline.
type Level string

const (
	LevelH1 Level = "H1"
	LevelH2 Level = "H2"
	LevelH3 Level = "H3"
)

// Entry is one heading in the extracted outline.
type Entry struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// Leading section numbering such as "3 ", "2.1 " or "10.4.2 ".
var numberedRe = regexp.MustCompile(`^\d+(\.\d+)*\s`)

// Classify assigns hierarchy levels to candidates. The largest distinct
// font size maps to H1, the next two to H2 and H3; candidates at smaller
// sizes are not heading-like and are discarded. Size alone is trusted only
// for the top bucket: H2/H3 candidates additionally need bold, all-caps or
// numbering evidence. Pure function, never errors; degenerate input yields
// an empty outline.
func Classify(candidates []Candidate) []Entry {
	levels := sizeLevels(candidates)
	if len(levels) == 0 {
		return nil
	}

	var entries []Entry
	for _, c := range candidates {
		level, ok := levels[c.Size]
		if !ok {
			continue
		}
		bold := strings.Contains(c.Font, "Bold") || c.Flags&pdftext.FlagBold != 0
		caps := isAllUpper(c.Text)
		numbered := numberedRe.MatchString(c.Text)
		if bold || caps || numbered || level == LevelH1 {
			entries = append(entries, Entry{Level: level, Text: c.Text, Page: c.Page})
		}
	}

	return dedupe(entries)
}

// sizeLevels maps the top one-to-three distinct candidate font sizes to
// heading levels. Fewer distinct sizes yield fewer levels; levels are
// never invented.
func sizeLevels(candidates []Candidate) map[float64]Level {
	seen := make(map[float64]bool)
	var sizes []float64
	for _, c := range candidates {
		if !seen[c.Size] {
			seen[c.Size] = true
			sizes = append(sizes, c.Size)
		}
	}
	if len(sizes) == 0 {
		return nil
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sizes)))

	levels := make(map[float64]Level)
	order := []Level{LevelH1, LevelH2, LevelH3}
	for i, size := range sizes {
		if i >= len(order) {
			break
		}
		levels[size] = order[i]
	}
	return levels
}

// isAllUpper reports whether the text contains at least one cased rune and
// no lowercase runes.
func isAllUpper(s string) bool {
	hasCased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasCased = true
		}
	}
	return hasCased
}

type entryKey struct {
	level Level
	text  string
	page  int
}

// dedupe drops repeated (level, text, page) entries, keeping the first
// occurrence and preserving input order.
func dedupe(entries []Entry) []Entry {
	seen := make(map[entryKey]bool, len(entries))
	var out []Entry
	for _, e := range entries {
		key := entryKey{e.Level, e.Text, e.Page}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	return out
}
