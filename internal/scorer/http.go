package scorer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultEmbeddingTimeout is the default timeout for sidecar requests.
const DefaultEmbeddingTimeout = 30 * time.Second

// HTTPEmbedder calls an embeddings sidecar that serves a sentence-transformers
// model (for example all-MiniLM-L6-v2) at POST <baseURL>/batch_embed.
//
// Request body:  {"texts": ["...", "..."]}
// Response body: {"vectors": [[...], [...]], "model": "...", "dim": 384}
//
// HTTPEmbedder is safe for concurrent use.
type HTTPEmbedder struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPEmbedder creates an embedder for the sidecar at baseURL.
// A non-positive timeout selects DefaultEmbeddingTimeout.
func NewHTTPEmbedder(baseURL string, timeout time.Duration) *HTTPEmbedder {
	if timeout <= 0 {
		timeout = DefaultEmbeddingTimeout
	}
	return &HTTPEmbedder{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type batchEmbedRequest struct {
	Texts []string `json:"texts"`
}

type batchEmbedResponse struct {
	Model   string      `json:"model"`
	Vectors [][]float32 `json:"vectors"`
	Dim     int         `json:"dim"`
}

// Embed returns one embedding per text, in input order.
func (e *HTTPEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyBatch
	}

	body, err := json.Marshal(batchEmbedRequest{Texts: texts})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/batch_embed", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024)) //nolint:errcheck // best effort error detail
		return nil, fmt.Errorf("embedding service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out batchEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(out.Vectors) != len(texts) {
		return nil, fmt.Errorf("%w: got %d vectors for %d texts", ErrDimensionMismatch, len(out.Vectors), len(texts))
	}
	return out.Vectors, nil
}
