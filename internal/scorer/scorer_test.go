package scorer

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestTokenize tests word extraction.
func TestTokenize(t *testing.T) {
	t.Parallel()

	got := Tokenize("The Eiffel Tower is in PARIS, France (1889).")
	want := []string{"eiffel", "tower", "paris", "france"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tokenize mismatch (-want +got):\n%s", diff)
	}

	if got := Tokenize("of an in"); len(got) != 0 {
		t.Errorf("expected no tokens, got %v", got)
	}
}

// TestLexicalScore tests the offline scorer.
func TestLexicalScore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	l := NewLexical()

	t.Run("empty batch fails", func(t *testing.T) {
		t.Parallel()
		_, err := l.Score(ctx, "Paris", nil)
		if !errors.Is(err, ErrEmptyBatch) {
			t.Errorf("expected ErrEmptyBatch, got %v", err)
		}
	})

	t.Run("identical text scores one", func(t *testing.T) {
		t.Parallel()
		scores, err := l.Score(ctx, "Sundar Pichai", []string{"Sundar Pichai"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if math.Abs(scores[0]-1) > 1e-6 {
			t.Errorf("expected 1, got %f", scores[0])
		}
	})

	t.Run("related text beats unrelated text", func(t *testing.T) {
		t.Parallel()
		scores, err := l.Score(ctx, "Google chief executive", []string{"Basketball", "Google", "Chief executive officer"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(scores) != 3 {
			t.Fatalf("expected 3 scores, got %d", len(scores))
		}
		if scores[0] >= scores[1] || scores[0] >= scores[2] {
			t.Errorf("unrelated text scored too high: %v", scores)
		}
		for _, s := range scores {
			if s < 0 || s > 1+1e-9 {
				t.Errorf("score out of range: %f", s)
			}
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()
		texts := []string{"India", "Indian cuisine", "Delhi", "EU"}
		a, err := l.Score(ctx, "Indian food", texts)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		b, err := NewLexical().Score(ctx, "Indian food", texts)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff(a, b); diff != "" {
			t.Errorf("scores differ between instances:\n%s", diff)
		}
	})

	t.Run("short names still match", func(t *testing.T) {
		t.Parallel()
		scores, err := l.Score(ctx, "EU", []string{"EU", "Asia"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if scores[0] <= scores[1] {
			t.Errorf("expected exact short name to win: %v", scores)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := l.Score(cctx, "x", []string{"y"}); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

// fakeEmbedder returns fixed vectors by text.
type fakeEmbedder struct {
	vectors map[string][]float32
	calls   int
	err     error
}

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = f.vectors[t]
	}
	return out, nil
}

// TestEmbeddingScore tests cosine scoring over an Embedder.
func TestEmbeddingScore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("scores in one batch", func(t *testing.T) {
		t.Parallel()

		emb := &fakeEmbedder{vectors: map[string][]float32{
			"query": {1, 0},
			"same":  {2, 0},
			"ortho": {0, 1},
			"anti":  {-1, 0},
		}}
		scores, err := NewEmbedding(emb).Score(ctx, "query", []string{"same", "ortho", "anti"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []float64{1, 0, -1}
		if diff := cmp.Diff(want, scores); diff != "" {
			t.Errorf("scores mismatch (-want +got):\n%s", diff)
		}
		if emb.calls != 1 {
			t.Errorf("expected 1 embed call, got %d", emb.calls)
		}
	})

	t.Run("empty batch fails without calling embedder", func(t *testing.T) {
		t.Parallel()

		emb := &fakeEmbedder{}
		_, err := NewEmbedding(emb).Score(ctx, "query", []string{})
		if !errors.Is(err, ErrEmptyBatch) {
			t.Errorf("expected ErrEmptyBatch, got %v", err)
		}
		if emb.calls != 0 {
			t.Errorf("expected no embed calls, got %d", emb.calls)
		}
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		t.Parallel()

		emb := &fakeEmbedder{vectors: map[string][]float32{
			"query": {1, 0},
			"bad":   {1, 0, 0},
		}}
		_, err := NewEmbedding(emb).Score(ctx, "query", []string{"bad"})
		if !errors.Is(err, ErrDimensionMismatch) {
			t.Errorf("expected ErrDimensionMismatch, got %v", err)
		}
	})

	t.Run("embedder error is wrapped", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		_, err := NewEmbedding(&fakeEmbedder{err: boom}).Score(ctx, "q", []string{"x"})
		if !errors.Is(err, boom) {
			t.Errorf("expected wrapped error, got %v", err)
		}
	})
}

// TestHTTPEmbedder tests the sidecar client against a test server.
func TestHTTPEmbedder(t *testing.T) {
	t.Parallel()

	t.Run("posts texts and decodes vectors", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/batch_embed" {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			var req batchEmbedRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			resp := batchEmbedResponse{Model: "all-MiniLM-L6-v2", Dim: 2}
			for i := range req.Texts {
				resp.Vectors = append(resp.Vectors, []float32{float32(i), 1})
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
		}))
		defer server.Close()

		vectors, err := NewHTTPEmbedder(server.URL+"/", 0).Embed(context.Background(), []string{"a", "b", "c"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(vectors) != 3 || vectors[2][0] != 2 {
			t.Errorf("unexpected vectors: %v", vectors)
		}
	})

	t.Run("non-200 status fails", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "model not loaded", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		_, err := NewHTTPEmbedder(server.URL, 0).Embed(context.Background(), []string{"a"})
		if err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("wrong vector count fails", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(batchEmbedResponse{Vectors: [][]float32{{1}}})
		}))
		defer server.Close()

		_, err := NewHTTPEmbedder(server.URL, 0).Embed(context.Background(), []string{"a", "b"})
		if !errors.Is(err, ErrDimensionMismatch) {
			t.Errorf("expected ErrDimensionMismatch, got %v", err)
		}
	})
}

// TestOpenAIEmbedder tests the OpenAI client against a compatible test server.
func TestOpenAIEmbedder(t *testing.T) {
	t.Parallel()

	t.Run("requires api key", func(t *testing.T) {
		t.Parallel()
		if _, err := NewOpenAIEmbedder(""); !errors.Is(err, ErrMissingAPIKey) {
			t.Errorf("expected ErrMissingAPIKey, got %v", err)
		}
	})

	t.Run("reorders data by index", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/v1/embeddings" {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"object": "list",
				"model": "text-embedding-3-small",
				"data": [
					{"object": "embedding", "index": 1, "embedding": [0, 1]},
					{"object": "embedding", "index": 0, "embedding": [1, 0]}
				],
				"usage": {"prompt_tokens": 2, "total_tokens": 2}
			}`))
		}))
		defer server.Close()

		emb, err := NewOpenAIEmbedder("test-key", WithOpenAIBaseURL(server.URL+"/v1"), WithOpenAIModel(DefaultOpenAIModel))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		vectors, err := emb.Embed(context.Background(), []string{"first", "second"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := [][]float32{{1, 0}, {0, 1}}
		if diff := cmp.Diff(want, vectors); diff != "" {
			t.Errorf("vectors mismatch (-want +got):\n%s", diff)
		}
	})
}

// TestNew tests scorer selection.
func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		settings Settings
		wantErr  error
	}{
		{"default is lexical", Settings{}, nil},
		{"lexical", Settings{Kind: KindLexical}, nil},
		{"openai without key", Settings{Kind: KindOpenAI}, ErrMissingAPIKey},
		{"openai with key", Settings{Kind: KindOpenAI, APIKey: "k"}, nil},
		{"http without endpoint", Settings{Kind: KindHTTP}, ErrUnknownScorer},
		{"http with endpoint", Settings{Kind: KindHTTP, Endpoint: "http://localhost:8000"}, nil},
		{"unknown", Settings{Kind: "word2vec"}, ErrUnknownScorer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := New(tt.settings)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil || s == nil {
				t.Errorf("expected scorer, got %v, %v", s, err)
			}
		})
	}
}
