package scorer

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is the embedding model used when none is configured.
const DefaultOpenAIModel = string(openai.SmallEmbedding3)

// OpenAIEmbedder produces embeddings with the OpenAI embeddings API.
type OpenAIEmbedder struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// OpenAIOption configures an OpenAIEmbedder.
type OpenAIOption func(*openai.ClientConfig, *OpenAIEmbedder)

// WithOpenAIModel sets the embedding model name.
func WithOpenAIModel(model string) OpenAIOption {
	return func(_ *openai.ClientConfig, e *OpenAIEmbedder) {
		if model != "" {
			e.model = openai.EmbeddingModel(model)
		}
	}
}

// WithOpenAIBaseURL points the client at an OpenAI-compatible endpoint.
func WithOpenAIBaseURL(baseURL string) OpenAIOption {
	return func(cfg *openai.ClientConfig, _ *OpenAIEmbedder) {
		if baseURL != "" {
			cfg.BaseURL = baseURL
		}
	}
}

// NewOpenAIEmbedder creates an embedder authenticated with apiKey.
func NewOpenAIEmbedder(apiKey string, opts ...OpenAIOption) (*OpenAIEmbedder, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	cfg := openai.DefaultConfig(apiKey)
	e := &OpenAIEmbedder{model: openai.SmallEmbedding3}
	for _, opt := range opts {
		opt(&cfg, e)
	}
	e.client = openai.NewClientWithConfig(cfg)
	return e, nil
}

// Embed returns one embedding per text, in input order.
func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyBatch
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: e.model,
	})
	if err != nil {
		return nil, fmt.Errorf("openai embeddings: %w", err)
	}

	vectors := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(texts) {
			return nil, fmt.Errorf("%w: embedding index %d out of range", ErrDimensionMismatch, d.Index)
		}
		vectors[d.Index] = d.Embedding
	}
	for i, v := range vectors {
		if v == nil {
			return nil, fmt.Errorf("%w: no embedding for input %d", ErrDimensionMismatch, i)
		}
	}
	return vectors, nil
}
