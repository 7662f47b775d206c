package navigator

import (
	"cmp"
	"context"
	"slices"

	"github.com/nao1215/wikinav/internal/model"
)

// frame is one page on the backtracking stack.
type frame struct {
	step     model.Step
	depth    int
	expanded bool
	children []model.ScoredCandidate
	next     int
}

// Backtrack runs a depth-bounded depth-first search for the page titled
// req.Target. Links are ranked against the target and tried best first; a
// branch that fails is abandoned and the next link of the parent is tried.
//
// The visited set spans the whole search, so every page is expanded at most
// once. On success the path holds the pages from the start to the target
// with status reached. When every branch fails the path is empty with status
// dead_end. On cancellation the path holds the pages currently on the stack.
func (e *Engine) Backtrack(ctx context.Context, req BacktrackRequest) (model.Path, error) {
	if err := req.Validate(); err != nil {
		return model.Path{}, err
	}
	start, err := model.ParsePageRef(req.Start)
	if err != nil {
		return model.Path{}, err
	}

	visited := make(map[string]struct{})
	stack := make([]*frame, 0, req.MaxDepth+1)

	result := func(status model.Status) model.Path {
		p := model.Path{
			Steps:   make([]model.Step, 0, len(stack)),
			Status:  status,
			Visited: len(visited),
		}
		for _, f := range stack {
			p.Steps = append(p.Steps, f.step)
		}
		e.logger.Debug("search finished", "status", status, "length", len(p.Steps), "visited", p.Visited)
		return p
	}

	// push visits ref and reports whether it is the target.
	push := func(ref model.PageRef, score float64, depth int) bool {
		visited[ref.String()] = struct{}{}
		f := &frame{
			step:  model.Step{Title: ref.Title(), Ref: ref, Score: score},
			depth: depth,
		}
		stack = append(stack, f)
		e.logger.Debug("expanding page", "depth", depth, "title", f.step.Title, "url", ref.String())
		return model.SameTitle(f.step.Title, req.Target)
	}
	pop := func() {
		stack = stack[:len(stack)-1]
	}

	if push(start, 0, 0) {
		return result(model.StatusReached), nil
	}

	for len(stack) > 0 {
		if ctx.Err() != nil {
			return result(model.StatusCancelled), nil
		}

		top := stack[len(stack)-1]
		if !top.expanded {
			top.expanded = true
			if top.depth >= req.MaxDepth {
				pop()
				continue
			}
			ranked, status := e.rank(ctx, top.step.Ref, req.Target)
			if status == model.StatusCancelled {
				return result(model.StatusCancelled), nil
			}
			if status != "" {
				pop()
				continue
			}
			slices.SortStableFunc(ranked, func(a, b model.ScoredCandidate) int {
				return cmp.Compare(b.Score, a.Score)
			})
			top.children = ranked
		}

		if top.next >= len(top.children) {
			pop()
			continue
		}
		child := top.children[top.next]
		top.next++
		if _, seen := visited[child.Target.String()]; seen {
			continue
		}
		if push(child.Target, child.Score, top.depth+1) {
			return result(model.StatusReached), nil
		}
	}

	return result(model.StatusDeadEnd), nil
}
