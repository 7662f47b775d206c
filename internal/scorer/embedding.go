package scorer

import (
	"context"
	"fmt"
)

// Embedder turns texts into dense vectors, one per text, in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Embedding scores texts by the cosine similarity of their embeddings to the
// query embedding. Scores lie in [-1,1].
type Embedding struct {
	embedder Embedder
}

// NewEmbedding creates an Embedding scorer backed by embedder.
func NewEmbedding(embedder Embedder) *Embedding {
	return &Embedding{embedder: embedder}
}

// Score embeds the query and all texts in a single batch and returns the
// similarity of each text to the query.
func (e *Embedding) Score(ctx context.Context, query string, texts []string) ([]float64, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyBatch
	}

	batch := make([]string, 0, len(texts)+1)
	batch = append(batch, query)
	batch = append(batch, texts...)

	vectors, err := e.embedder.Embed(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("embed batch: %w", err)
	}
	if len(vectors) != len(batch) {
		return nil, fmt.Errorf("%w: got %d vectors for %d texts", ErrDimensionMismatch, len(vectors), len(batch))
	}

	scores := make([]float64, len(texts))
	for i := range texts {
		s, err := cosine(vectors[0], vectors[i+1])
		if err != nil {
			return nil, err
		}
		scores[i] = s
	}
	return scores, nil
}
