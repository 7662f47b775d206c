package scorer

import (
	"context"
	"fmt"
	"time"
)

// Supported scorer kinds.
const (
	KindLexical = "lexical"
	KindOpenAI  = "openai"
	KindHTTP    = "http"
)

// Scorer maps a query and candidate texts to one relatedness score per text.
type Scorer interface {
	Score(ctx context.Context, query string, texts []string) ([]float64, error)
}

// Settings selects and configures a scorer.
type Settings struct {
	// Kind is one of KindLexical, KindOpenAI or KindHTTP.
	Kind string

	// Model is the embedding model name for KindOpenAI.
	Model string

	// Endpoint is the sidecar base URL for KindHTTP, or an alternative
	// OpenAI-compatible base URL for KindOpenAI.
	Endpoint string

	// APIKey authenticates KindOpenAI requests.
	APIKey string

	// Timeout bounds each KindHTTP request.
	Timeout time.Duration
}

// New builds the scorer described by s. An empty Kind selects KindLexical.
func New(s Settings) (Scorer, error) {
	switch s.Kind {
	case "", KindLexical:
		return NewLexical(), nil
	case KindOpenAI:
		embedder, err := NewOpenAIEmbedder(s.APIKey,
			WithOpenAIModel(s.Model),
			WithOpenAIBaseURL(s.Endpoint),
		)
		if err != nil {
			return nil, err
		}
		return NewEmbedding(embedder), nil
	case KindHTTP:
		if s.Endpoint == "" {
			return nil, fmt.Errorf("%w: http scorer needs an endpoint", ErrUnknownScorer)
		}
		return NewEmbedding(NewHTTPEmbedder(s.Endpoint, s.Timeout)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScorer, s.Kind)
	}
}
