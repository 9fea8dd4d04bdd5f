package embed

import (
	"context"
	"sync"
)

// Cache memoizes embeddings by exact input text. Identical titles and
// snippets recur across documents, and the model is deterministic per
// input, so repeated lookups are pure waste.
type Cache struct {
	mu    sync.Mutex
	inner Embedder
	vecs  map[string][]float32
}

// NewCache wraps an Embedder with a memoization layer.
func NewCache(inner Embedder) *Cache {
	return &Cache{
		inner: inner,
		vecs:  make(map[string][]float32),
	}
}

// Embed returns cached vectors where available and forwards the distinct
// misses to the wrapped embedder in one batch.
func (c *Cache) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	c.mu.Lock()
	var misses []string
	missSet := make(map[string]bool)
	for _, t := range texts {
		if _, ok := c.vecs[t]; !ok && !missSet[t] {
			missSet[t] = true
			misses = append(misses, t)
		}
	}
	c.mu.Unlock()

	if len(misses) > 0 {
		fetched, err := c.inner.Embed(ctx, misses)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		for i, t := range misses {
			c.vecs[t] = fetched[i]
		}
		c.mu.Unlock()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = c.vecs[t]
	}
	return out, nil
}

// Len returns the number of cached texts.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.vecs)
}
