// Package subsection surfaces the most query-relevant sentences within a
// ranked section using local TF-IDF term weighting.
package subsection

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/docsift/docsift/internal/section"
)

// Entry is one refined sentence extracted from a section.
type Entry struct {
	Document    string `json:"document"`
	RefinedText string `json:"refined_text"`
	PageNumber  int    `json:"page_number"`
}

// Options tunes extraction. Zero values select the defaults.
type Options struct {
	MinSentenceLen int // sentences at or under this rune count are dropped; default 20
	TopSentences   int // sentences returned per section; default 3
}

func (o Options) withDefaults() Options {
	if o.MinSentenceLen <= 0 {
		o.MinSentenceLen = 20
	}
	if o.TopSentences <= 0 {
		o.TopSentences = 3
	}
	return o
}

// Extract splits the section text into sentences and returns the top few
// by TF-IDF similarity to the persona/job/title query. The term vocabulary
// is local to this one section. Degenerate input (no surviving sentences)
// yields an empty result, never an error.
func Extract(sec section.Section, persona, job string, opts Options) []Entry {
	opts = opts.withDefaults()

	sentences := sentenceCandidates(sec.Text, opts.MinSentenceLen)
	if len(sentences) == 0 {
		return nil
	}

	query := persona + " " + job + " " + sec.Title
	corpus := make([]string, 0, len(sentences)+1)
	corpus = append(corpus, query)
	corpus = append(corpus, sentences...)

	vectors := tfidfVectors(corpus)
	queryVec := vectors[0]

	type scored struct {
		text  string
		score float64
	}
	ranked := make([]scored, len(sentences))
	for i, s := range sentences {
		ranked[i] = scored{text: s, score: dot(queryVec, vectors[i+1])}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	n := opts.TopSentences
	if n > len(ranked) {
		n = len(ranked)
	}
	entries := make([]Entry, 0, n)
	for _, r := range ranked[:n] {
		entries = append(entries, Entry{
			Document:    sec.Document,
			RefinedText: r.text,
			PageNumber:  sec.Page,
		})
	}
	return entries
}

// sentenceCandidates splits on sentence-ending punctuation followed by
// whitespace and keeps trimmed sentences longer than minLen runes.
func sentenceCandidates(text string, minLen int) []string {
	var sentences []string
	keep := func(s string) {
		s = strings.TrimSpace(s)
		if utf8.RuneCountInString(s) > minLen {
			sentences = append(sentences, s)
		}
	}

	runes := []rune(text)
	var current strings.Builder
	for i, r := range runes {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			keep(current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		keep(current.String())
	}
	return sentences
}

// Word tokens of at least two characters.
var tokenRe = regexp.MustCompile(`\w\w+`)

func tokenize(text string) []string {
	raw := tokenRe.FindAllString(strings.ToLower(text), -1)
	tokens := raw[:0]
	for _, t := range raw {
		if !stopWords[t] {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// tfidfVectors computes one L2-normalized TF-IDF vector per corpus entry
// with smoothed inverse document frequency:
//
//	idf(t) = ln((1+n)/(1+df(t))) + 1
func tfidfVectors(corpus []string) []map[string]float64 {
	docs := make([][]string, len(corpus))
	df := make(map[string]int)
	for i, text := range corpus {
		docs[i] = tokenize(text)
		seen := make(map[string]bool)
		for _, t := range docs[i] {
			if !seen[t] {
				seen[t] = true
				df[t]++
			}
		}
	}

	n := float64(len(corpus))
	idf := make(map[string]float64, len(df))
	for t, d := range df {
		idf[t] = math.Log((1+n)/(1+float64(d))) + 1
	}

	vectors := make([]map[string]float64, len(corpus))
	for i, tokens := range docs {
		vec := make(map[string]float64)
		for _, t := range tokens {
			vec[t] += idf[t]
		}
		normalize(vec)
		vectors[i] = vec
	}
	return vectors
}

func normalize(vec map[string]float64) {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for t := range vec {
		vec[t] /= norm
	}
}

func dot(a, b map[string]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for t, v := range a {
		sum += v * b[t]
	}
	return sum
}
