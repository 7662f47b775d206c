package race

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/wikinav/internal/model"
	"github.com/nao1215/wikinav/internal/navigator"
)

// Strategy names used by TitleVsContext.
const (
	TitleBased   = "Title-Based"
	ContextBased = "Context-Based"
)

var (
	// ErrNoWinner is returned when no participant finished, which happens
	// when the race context is cancelled.
	ErrNoWinner = errors.New("no participant finished the race")

	// ErrInvalidStrategy is returned when a strategy cannot take part.
	ErrInvalidStrategy = errors.New("invalid race strategy")
)

// Strategy is one participant of a race.
type Strategy struct {
	// Name identifies the participant in results and logs.
	Name string

	// Engine runs the participant's walk. Each participant should have its
	// own engine so that they share nothing but the race board.
	Engine *navigator.Engine

	// Request describes the participant's walk.
	Request navigator.Request
}

// Outcome is the result of a race.
type Outcome struct {
	// Winner is the first recorded result.
	Winner model.RaceResult `json:"winner"`

	// RunnerUp is the other participant: a second recorded result when
	// there is one, otherwise the path it had when it stopped.
	RunnerUp *model.RaceResult `json:"runnerUp,omitempty"`

	// Recorded holds every recorded result in recording order.
	Recorded []model.RaceResult `json:"recorded"`

	// Elapsed is the wall-clock duration of the race.
	Elapsed time.Duration `json:"elapsed"`
}

// Coordinator runs races.
type Coordinator struct {
	logger *slog.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Coordinator.
func New(opts ...Option) *Coordinator {
	c := &Coordinator{logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TitleVsContext builds the two classic participants: one scoring links
// against the target title, the other against a summary of the target.
func TitleVsContext(
	start, title, summary string,
	titleEngine, contextEngine *navigator.Engine,
	titleLimits, contextLimits navigator.Limits,
) (Strategy, Strategy) {
	return Strategy{
			Name:    TitleBased,
			Engine:  titleEngine,
			Request: navigator.TitleRequest(start, title, titleLimits),
		}, Strategy{
			Name:    ContextBased,
			Engine:  contextEngine,
			Request: navigator.ContextRequest(start, title, summary, contextLimits),
		}
}

// Race runs a and b concurrently and blocks until both have stopped.
// Both requests are validated before any work starts.
func (c *Coordinator) Race(ctx context.Context, a, b Strategy) (*Outcome, error) {
	strategies := []Strategy{a, b}
	walks := make([]*navigator.Walk, len(strategies))
	for i, s := range strategies {
		if strings.TrimSpace(s.Name) == "" {
			return nil, fmt.Errorf("%w: participant %d has no name", ErrInvalidStrategy, i+1)
		}
		if s.Engine == nil {
			return nil, fmt.Errorf("%w: %s has no engine", ErrInvalidStrategy, s.Name)
		}
		w, err := s.Engine.Walk(s.Request)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Name, err)
		}
		walks[i] = w
	}

	c.logger.Info("starting race", "participants", a.Name+" vs "+b.Name)
	startTime := time.Now()

	shared := &board{}
	paths := make([]model.Path, len(strategies))
	won := make([]bool, len(strategies))

	var g errgroup.Group
	for i, s := range strategies {
		g.Go(func() error {
			paths[i], won[i] = c.run(ctx, shared, s.Name, walks[i])
			return nil
		})
	}
	_ = g.Wait()

	recorded := shared.recorded()
	if len(recorded) == 0 {
		c.logger.Warn("race ended without a winner", "error", ctx.Err())
		return nil, ErrNoWinner
	}

	out := &Outcome{
		Winner:   recorded[0],
		Recorded: recorded,
		Elapsed:  time.Since(startTime),
	}
	if len(recorded) > 1 {
		out.RunnerUp = &recorded[1]
	} else {
		for i, s := range strategies {
			if !won[i] {
				out.RunnerUp = &model.RaceResult{Strategy: s.Name, Path: paths[i]}
				break
			}
		}
	}

	c.logger.Info("race finished",
		"winner", out.Winner.Strategy,
		"status", out.Winner.Path.Status,
		"length", out.Winner.Path.Len(),
		"elapsed", out.Elapsed,
	)
	return out, nil
}

// run drives one walk until it terminates or another participant finishes,
// and returns the path it ended with and whether that path was recorded.
func (c *Coordinator) run(ctx context.Context, shared *board, name string, w *navigator.Walk) (model.Path, bool) {
	for {
		if !w.Done() && shared.done() {
			p := w.Path()
			if !p.Status.Terminal() {
				p.Status = model.StatusCancelled
			}
			c.logger.Debug("participant stopped", "strategy", name, "length", p.Len())
			return p, false
		}

		step, ok := w.Next(ctx)
		if !ok {
			break
		}
		c.logger.Debug("participant advanced", "strategy", name, "title", step.Title, "synthetic", step.Synthetic)
	}

	p := w.Path()
	if p.Status == model.StatusCancelled {
		return p, false
	}
	if !shared.finish(model.RaceResult{Strategy: name, Path: p}) {
		return p, false
	}
	c.logger.Info("participant finished first", "strategy", name, "status", p.Status)
	return p, true
}
