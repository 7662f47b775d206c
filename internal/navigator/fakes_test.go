package navigator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/nao1215/wikinav/internal/model"
)

const wikiBase = "https://en.wikipedia.org/wiki/"

// pageURL returns the article URL of title.
func pageURL(title string) string {
	return wikiBase + strings.ReplaceAll(title, " ", "_")
}

// link builds a candidate with the given text pointing at title.
func link(text, title string) model.Candidate {
	return model.Candidate{Text: text, Target: model.MustParsePageRef(pageURL(title))}
}

var errPageMissing = errors.New("page missing")

// graphSource is an in-memory link graph keyed by page title.
type graphSource struct {
	mu      sync.Mutex
	links   map[string][]model.Candidate
	fail    map[string]bool
	delay   time.Duration
	fetches []string
}

func newGraph(links map[string][]model.Candidate) *graphSource {
	return &graphSource{links: links, fail: map[string]bool{}}
}

func (g *graphSource) FetchLinks(ctx context.Context, ref model.PageRef) ([]model.Candidate, error) {
	if g.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(g.delay):
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	title := ref.Title()
	g.fetches = append(g.fetches, title)
	if g.fail[title] {
		return nil, fmt.Errorf("%w: %s", errPageMissing, title)
	}
	return append([]model.Candidate(nil), g.links[title]...), nil
}

func (g *graphSource) fetched() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.fetches...)
}

// chainSource serves an endless chain Page0 -> Page1 -> Page2 -> ...
type chainSource struct{}

func (chainSource) FetchLinks(_ context.Context, ref model.PageRef) ([]model.Candidate, error) {
	var n int
	if _, err := fmt.Sscanf(ref.Title(), "Page%d", &n); err != nil {
		return nil, err
	}
	next := fmt.Sprintf("Page%d", n+1)
	return []model.Candidate{link(next, next)}, nil
}

// mapScorer scores texts from a fixed table and records the queries it saw.
type mapScorer struct {
	mu      sync.Mutex
	scores  map[string]float64
	err     error
	queries []string
}

func (m *mapScorer) Score(_ context.Context, query string, texts []string) ([]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, query)
	if m.err != nil {
		return nil, m.err
	}
	out := make([]float64, len(texts))
	for i, t := range texts {
		out[i] = m.scores[t]
	}
	return out, nil
}

func (m *mapScorer) seen() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queries...)
}
