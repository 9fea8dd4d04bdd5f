// Package embed abstracts the embedding-model provider: text in, fixed
// length vector out.
package embed

import "context"

// Embedder generates embedding vectors for texts. Implementations return
// one vector per input, in input order, and are deterministic for
// identical input text. Batching multiple texts per call must not change
// any individual result.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
