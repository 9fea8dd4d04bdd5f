// Package rank orders sections by embedding similarity to a persona/task
// query.
package rank

import (
	"context"
	"fmt"
	"sort"

	"github.com/docsift/docsift/internal/embed"
	"github.com/docsift/docsift/internal/section"
)

const defaultSnippetLen = 200

// Ranker scores sections against a persona query in a shared embedding
// space.
type Ranker struct {
	embedder   embed.Embedder
	snippetLen int
}

// New creates a Ranker. snippetLen caps how many runes of section body
// join the title in the embedded text; zero selects the default of 200.
func New(embedder embed.Embedder, snippetLen int) *Ranker {
	if snippetLen <= 0 {
		snippetLen = defaultSnippetLen
	}
	return &Ranker{embedder: embedder, snippetLen: snippetLen}
}

// Query builds the persona query string embedded once per ranking pass.
func Query(persona, job string) string {
	return fmt.Sprintf("%s: %s", persona, job)
}

// Rank scores every section by cosine similarity between its embedded
// "title + body snippet" and the persona query, sorts descending with
// stable ties, and assigns 1-based importance ranks. The input slice is
// not reordered; a sorted copy is returned. One batch embedding call
// covers the query and all sections.
func (r *Ranker) Rank(ctx context.Context, sections []section.Section, persona, job string) ([]section.Section, error) {
	if len(sections) == 0 {
		return nil, nil
	}

	texts := make([]string, 0, len(sections)+1)
	texts = append(texts, Query(persona, job))
	for _, s := range sections {
		texts = append(texts, s.Title+" "+truncateRunes(s.Text, r.snippetLen))
	}

	vecs, err := r.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed sections: %w", err)
	}
	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(vecs), len(texts))
	}

	query := vecs[0]
	ranked := make([]section.Section, len(sections))
	copy(ranked, sections)
	for i := range ranked {
		ranked[i].Score = Cosine(query, vecs[i+1])
	}

	return Rerank(ranked), nil
}

// Rerank re-sorts already-scored sections into a fresh total order and
// reassigns contiguous 1..N importance ranks. Used both for the
// per-document pass and for the global pass over the concatenation of all
// documents' sections; ties keep their original encounter order.
func Rerank(sections []section.Section) []section.Section {
	ordered := make([]section.Section, len(sections))
	copy(ordered, sections)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Score > ordered[j].Score
	})
	for i := range ordered {
		ordered[i].ImportanceRank = i + 1
	}
	return ordered
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
