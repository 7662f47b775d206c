package navigator

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"math"

	"github.com/nao1215/wikinav/internal/filter"
	"github.com/nao1215/wikinav/internal/model"
)

// PageSource returns the outgoing links of a page.
type PageSource interface {
	FetchLinks(ctx context.Context, ref model.PageRef) ([]model.Candidate, error)
}

// Scorer returns one relatedness score per text, in order.
type Scorer interface {
	Score(ctx context.Context, query string, texts []string) ([]float64, error)
}

// Engine runs searches over a page source. An Engine holds no per-run
// state and may be shared by concurrent runs as long as its source and
// scorer are safe for concurrent use.
type Engine struct {
	source PageSource
	scorer Scorer
	filter *filter.Filter
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithFilter sets the link filter applied before scoring.
func WithFilter(f *filter.Filter) Option {
	return func(e *Engine) {
		if f != nil {
			e.filter = f
		}
	}
}

// New creates an Engine that reads links from source and ranks them with scorer.
func New(source PageSource, scorer Scorer, opts ...Option) *Engine {
	e := &Engine{
		source: source,
		scorer: scorer,
		filter: filter.New(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Source returns the page source the engine reads links from.
func (e *Engine) Source() PageSource { return e.source }

// Scorer returns the scorer the engine ranks links with.
func (e *Engine) Scorer() Scorer { return e.scorer }

// Run performs a complete greedy walk and returns its path.
// The returned error is non-nil only for an invalid request.
func (e *Engine) Run(ctx context.Context, req Request) (model.Path, error) {
	w, err := e.Walk(req)
	if err != nil {
		return model.Path{}, err
	}
	for {
		if _, ok := w.Next(ctx); !ok {
			break
		}
	}
	return w.Path(), nil
}

// Steps returns the entries of a greedy walk as a sequence. Stopping the
// iteration early abandons the walk. An invalid request yields nothing.
func (e *Engine) Steps(ctx context.Context, req Request) iter.Seq[model.Step] {
	return func(yield func(model.Step) bool) {
		w, err := e.Walk(req)
		if err != nil {
			e.logger.Warn("invalid walk request", "error", err)
			return
		}
		for {
			step, ok := w.Next(ctx)
			if !ok || !yield(step) {
				return
			}
		}
	}
}

// Walk prepares a greedy walk that advances one page per Next call.
func (e *Engine) Walk(req Request) (*Walk, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	start, err := model.ParsePageRef(req.Start)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &Walk{
		engine:  e,
		query:   req.query(),
		target:  req.TitleTarget,
		limits:  Limits{MaxSteps: req.MaxSteps, Threshold: req.Threshold},
		current: start,
		visited: make(map[string]struct{}),
		path: model.Path{
			Steps:  make([]model.Step, 0, min(req.MaxSteps, 64)),
			Status: model.StatusRunning,
		},
	}, nil
}

// rank fetches, filters and scores the links of ref against query.
// A non-empty status means the links are unusable and the run must stop.
func (e *Engine) rank(ctx context.Context, ref model.PageRef, query string) ([]model.ScoredCandidate, model.Status) {
	links, err := e.source.FetchLinks(ctx, ref)
	if err != nil {
		if ctx.Err() != nil {
			return nil, model.StatusCancelled
		}
		e.logger.Warn("failed to fetch links", "url", ref.String(), "error", err)
		return nil, model.StatusDeadEnd
	}
	if len(links) == 0 {
		e.logger.Debug("page has no links", "url", ref.String())
		return nil, model.StatusDeadEnd
	}

	links = e.filter.Apply(links)
	if len(links) == 0 {
		e.logger.Debug("no links left after filtering", "url", ref.String())
		return nil, model.StatusDeadEnd
	}

	texts := make([]string, len(links))
	for i, l := range links {
		texts[i] = l.Text
	}
	scores, err := e.scorer.Score(ctx, query, texts)
	if err == nil && len(scores) != len(texts) {
		err = errors.New("scorer returned a mismatched batch")
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, model.StatusCancelled
		}
		e.logger.Warn("failed to score links", "url", ref.String(), "error", err)
		return nil, model.StatusDeadEnd
	}

	ranked := make([]model.ScoredCandidate, len(links))
	for i, l := range links {
		s := scores[i]
		if math.IsNaN(s) {
			s = math.Inf(-1)
		}
		ranked[i] = model.ScoredCandidate{Candidate: l, Score: s}
	}
	return ranked, ""
}
