package scorer

import "errors"

var (
	// ErrEmptyBatch is returned when Score is called without texts.
	ErrEmptyBatch = errors.New("scorer: empty candidate batch")

	// ErrDimensionMismatch is returned when embeddings have different lengths
	// or an embedder returns the wrong number of vectors.
	ErrDimensionMismatch = errors.New("scorer: embedding dimension mismatch")

	// ErrUnknownScorer is returned by FromConfig for an unsupported kind.
	ErrUnknownScorer = errors.New("scorer: unknown scorer kind")

	// ErrMissingAPIKey is returned when the OpenAI scorer has no API key.
	ErrMissingAPIKey = errors.New("scorer: OPENAI_API_KEY is not set")
)
