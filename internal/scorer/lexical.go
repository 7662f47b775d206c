package scorer

import (
	"context"
	"hash/fnv"
)

const (
	// DefaultLexicalDimensions is the size of the hashed feature space.
	DefaultLexicalDimensions = 1024

	// wordWeight and trigramWeight balance whole-word overlap against
	// partial overlap such as "India" vs "Indian".
	wordWeight    = 1.0
	trigramWeight = 0.4
)

// Lexical scores texts by the cosine similarity of hashed bag-of-words
// vectors built from words and character trigrams. It needs no model or
// network access, is deterministic, and returns scores in [0,1].
type Lexical struct {
	dims int
}

// LexicalOption configures a Lexical scorer.
type LexicalOption func(*Lexical)

// WithDimensions sets the size of the hashed feature space.
// Non-positive values are ignored.
func WithDimensions(n int) LexicalOption {
	return func(l *Lexical) {
		if n > 0 {
			l.dims = n
		}
	}
}

// NewLexical creates a Lexical scorer.
func NewLexical(opts ...LexicalOption) *Lexical {
	l := &Lexical{dims: DefaultLexicalDimensions}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Score returns the similarity of each text to query.
func (l *Lexical) Score(ctx context.Context, query string, texts []string) ([]float64, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyBatch
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	q := l.vector(query)
	scores := make([]float64, len(texts))
	for i, text := range texts {
		s, err := cosine(q, l.vector(text))
		if err != nil {
			return nil, err
		}
		scores[i] = s
	}
	return scores, nil
}

// vector builds the hashed feature vector of text.
func (l *Lexical) vector(text string) []float32 {
	v := make([]float32, l.dims)
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		// Short names such as "EU" or "Go" would otherwise have no features.
		tokens = []string{foldedText(text)}
	}

	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		v[l.bucket("w:"+tok)] += wordWeight

		runes := []rune("^" + tok + "$")
		for i := 0; i+3 <= len(runes); i++ {
			v[l.bucket("t:"+string(runes[i:i+3]))] += trigramWeight
		}
	}
	return v
}

// bucket hashes a feature into the vector space.
func (l *Lexical) bucket(feature string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(feature))
	return int(h.Sum32() % uint32(l.dims)) //nolint:gosec // dims is positive
}
