package embed

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

// countingEmbedder returns a one-element vector per text (its index within
// all texts ever seen) and records every batch.
type countingEmbedder struct {
	calls   int
	batches [][]string
	next    float32
	err     error
}

func (c *countingEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	c.calls++
	c.batches = append(c.batches, append([]string(nil), texts...))
	if c.err != nil {
		return nil, c.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{c.next}
		c.next++
	}
	return out, nil
}

func TestCache_HitsSkipInnerEmbedder(t *testing.T) {
	inner := &countingEmbedder{}
	cache := NewCache(inner)
	ctx := context.Background()

	first, err := cache.Embed(ctx, []string{"a", "b"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("expected 1 inner call, got %d", inner.calls)
	}

	second, err := cache.Embed(ctx, []string{"a", "b"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("full cache hit must not call inner, got %d calls", inner.calls)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("cached vectors differ: %v vs %v", first, second)
	}
}

func TestCache_PartialMissBatchesOnlyMisses(t *testing.T) {
	inner := &countingEmbedder{}
	cache := NewCache(inner)
	ctx := context.Background()

	if _, err := cache.Embed(ctx, []string{"a"}); err != nil {
		t.Fatalf("Embed: %v", err)
	}
	vecs, err := cache.Embed(ctx, []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vecs) != 3 {
		t.Fatalf("expected 3 vectors, got %d", len(vecs))
	}
	if inner.calls != 2 {
		t.Fatalf("expected 2 inner calls, got %d", inner.calls)
	}
	if !reflect.DeepEqual(inner.batches[1], []string{"b", "c"}) {
		t.Errorf("second batch must carry only the misses, got %v", inner.batches[1])
	}
	if cache.Len() != 3 {
		t.Errorf("cache size = %d, want 3", cache.Len())
	}
}

func TestCache_DeduplicatesWithinOneBatch(t *testing.T) {
	inner := &countingEmbedder{}
	cache := NewCache(inner)

	vecs, err := cache.Embed(context.Background(), []string{"x", "x", "y", "x"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if !reflect.DeepEqual(inner.batches[0], []string{"x", "y"}) {
		t.Errorf("duplicates must collapse in the inner batch, got %v", inner.batches[0])
	}
	if !reflect.DeepEqual(vecs[0], vecs[1]) || !reflect.DeepEqual(vecs[0], vecs[3]) {
		t.Errorf("duplicate texts must share a vector: %v", vecs)
	}
}

func TestCache_ErrorLeavesCacheClean(t *testing.T) {
	boom := errors.New("boom")
	inner := &countingEmbedder{err: boom}
	cache := NewCache(inner)

	if _, err := cache.Embed(context.Background(), []string{"a"}); !errors.Is(err, boom) {
		t.Fatalf("expected inner error, got %v", err)
	}
	if cache.Len() != 0 {
		t.Errorf("failed batch must not populate the cache, size %d", cache.Len())
	}
}

func TestCache_EmptyInput(t *testing.T) {
	inner := &countingEmbedder{}
	cache := NewCache(inner)
	vecs, err := cache.Embed(context.Background(), nil)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vecs) != 0 || inner.calls != 0 {
		t.Errorf("empty input: vecs=%v, inner calls=%d", vecs, inner.calls)
	}
}
