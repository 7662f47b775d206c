package report

import (
	"time"

	"github.com/nao1215/wikinav/internal/model"
	"github.com/nao1215/wikinav/internal/race"
)

// Modes of a report.
const (
	ModeWalk = "walk"
	ModeDFS  = "dfs"
	ModeRace = "race"
)

// Roles of a result within a race.
const (
	RoleWinner   = "winner"
	RoleRunnerUp = "runner-up"
)

// Result is one path shown in a report.
type Result struct {
	// Strategy names the search that produced the path.
	Strategy string `json:"strategy"`

	// Role is RoleWinner or RoleRunnerUp in a race, empty otherwise.
	Role string `json:"role,omitempty"`

	// Path is the trace.
	Path model.Path `json:"path"`
}

// Summary is the data every writer renders.
type Summary struct {
	// Mode is ModeWalk, ModeDFS or ModeRace.
	Mode string `json:"mode"`

	// Start is the canonical start URL.
	Start string `json:"start"`

	// Target is the target title.
	Target string `json:"target"`

	// Context is the target summary used as a query, if any.
	Context string `json:"context,omitempty"`

	// ContextLang is the language edition the summary came from.
	ContextLang string `json:"contextLang,omitempty"`

	// Results are the paths, winner first in a race.
	Results []Result `json:"results"`

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration `json:"elapsed"`

	// GeneratedAt is when the summary was built.
	GeneratedAt time.Time `json:"generatedAt"`
}

// NewPathSummary builds a summary of a single walk or search.
func NewPathSummary(mode, strategy, start, target string, path model.Path, elapsed time.Duration) *Summary {
	return &Summary{
		Mode:        mode,
		Start:       start,
		Target:      target,
		Results:     []Result{{Strategy: strategy, Path: path}},
		Elapsed:     elapsed,
		GeneratedAt: time.Now(),
	}
}

// NewRaceSummary builds a summary of a race.
func NewRaceSummary(start, target string, out *race.Outcome) *Summary {
	s := &Summary{
		Mode:        ModeRace,
		Start:       start,
		Target:      target,
		Results:     make([]Result, 0, 2),
		GeneratedAt: time.Now(),
	}
	if out == nil {
		return s
	}

	s.Elapsed = out.Elapsed
	s.Results = append(s.Results, Result{Strategy: out.Winner.Strategy, Role: RoleWinner, Path: out.Winner.Path})
	if out.RunnerUp != nil {
		s.Results = append(s.Results, Result{Strategy: out.RunnerUp.Strategy, Role: RoleRunnerUp, Path: out.RunnerUp.Path})
	}
	return s
}

// WithContext records the query summary used by a context-based search.
func (s *Summary) WithContext(text, lang string) *Summary {
	s.Context = text
	s.ContextLang = lang
	return s
}

// Succeeded reports whether the first result found the target.
func (s *Summary) Succeeded() bool {
	return len(s.Results) > 0 && s.Results[0].Path.Status.Succeeded()
}

// statusText describes a status for readers.
func statusText(status model.Status) string {
	switch status {
	case model.StatusReached:
		return "Reached the target page"
	case model.StatusMatched:
		return "Found a link to the target"
	case model.StatusExhausted:
		return "Step budget exhausted"
	case model.StatusDeadEnd:
		return "Dead end"
	case model.StatusLoop:
		return "Stopped on a revisited page"
	case model.StatusCancelled:
		return "Stopped early"
	default:
		return string(status)
	}
}
