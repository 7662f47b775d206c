package navigator

import (
	"context"
	"math"

	"github.com/nao1215/wikinav/internal/model"
)

// Walk is the state of one greedy walk. It is not safe for concurrent use.
type Walk struct {
	engine *Engine
	query  string
	target string
	limits Limits

	current model.PageRef
	score   float64
	visited map[string]struct{}
	path    model.Path
	steps   int

	// pending holds the synthetic final entry until it is handed out.
	pending []model.Step
}

// Next advances the walk by one page and returns the entry it appended.
// When the walk stops on a qualifying link, the link is returned by the
// following call. The walk terminates as exhausted on the step that uses up
// its budget. Next returns false once the walk has terminated.
func (w *Walk) Next(ctx context.Context) (model.Step, bool) {
	if len(w.pending) > 0 {
		step := w.pending[0]
		w.pending = w.pending[1:]
		return step, true
	}
	if w.path.Status.Terminal() {
		return model.Step{}, false
	}
	if ctx.Err() != nil {
		w.finish(model.StatusCancelled)
		return model.Step{}, false
	}

	w.steps++
	current := w.current
	key := current.String()
	if _, seen := w.visited[key]; seen {
		w.engine.logger.Debug("revisiting page, stopping", "url", key)
		w.finish(model.StatusLoop)
		return model.Step{}, false
	}
	w.visited[key] = struct{}{}

	step := model.Step{Title: current.Title(), Ref: current, Score: w.score}
	w.path.Steps = append(w.path.Steps, step)
	w.engine.logger.Debug("visited page", "step", w.steps, "title", step.Title, "url", key)

	if model.SameTitle(step.Title, w.target) {
		w.finish(model.StatusReached)
		return step, true
	}

	ranked, status := w.engine.rank(ctx, current, w.query)
	if status != "" {
		w.finish(status)
		return step, true
	}

	chosen := w.choose(ranked)
	if model.SameTitle(chosen.Text, w.target) || chosen.Score >= w.limits.Threshold {
		final := model.Step{
			Title:     chosen.Text,
			Ref:       chosen.Target,
			Score:     chosen.Score,
			Synthetic: true,
		}
		w.path.Steps = append(w.path.Steps, final)
		w.pending = append(w.pending, final)
		w.engine.logger.Debug("found qualifying link", "text", chosen.Text, "score", chosen.Score)
		w.finish(model.StatusMatched)
		return step, true
	}

	w.current = chosen.Target
	w.score = chosen.Score
	if w.steps >= w.limits.MaxSteps {
		w.finish(model.StatusExhausted)
	}
	return step, true
}

// choose returns the highest scoring candidate, preferring the first seen on
// ties. Links to visited pages never win against unvisited ones.
func (w *Walk) choose(ranked []model.ScoredCandidate) model.ScoredCandidate {
	best := 0
	for i := range ranked {
		if _, seen := w.visited[ranked[i].Target.String()]; seen {
			ranked[i].Score = math.Inf(-1)
		}
		if i > 0 && ranked[i].Score > ranked[best].Score {
			best = i
		}
	}
	return ranked[best]
}

// Path returns a copy of the entries appended so far and the walk status.
func (w *Walk) Path() model.Path {
	p := w.path.Clone()
	p.Visited = len(w.visited)
	return p
}

// Done reports whether the walk has terminated and handed out every entry.
func (w *Walk) Done() bool {
	return w.path.Status.Terminal() && len(w.pending) == 0
}

func (w *Walk) finish(status model.Status) {
	w.path.Status = status
	w.engine.logger.Debug("walk finished", "status", status, "length", len(w.path.Steps))
}
