package model

import "slices"

// Status is the terminal state of a navigation run.
// Partial paths are successful outcomes; the status tells callers whether the
// target was reached, the budget ran out, or the walk hit a dead end.
type Status string

const (
	// StatusRunning means the run has not terminated yet.
	StatusRunning Status = "running"

	// StatusReached means the walk landed on the target page.
	StatusReached Status = "reached"

	// StatusMatched means the walk stopped on a qualifying link: its text
	// equals the target title or its score met the threshold. The link is
	// the final, synthetic entry of the path.
	StatusMatched Status = "matched"

	// StatusExhausted means the step budget was used up.
	StatusExhausted Status = "exhausted"

	// StatusDeadEnd means the current page had no usable links, the page
	// source or scorer failed, or a backtracking search ran out of branches.
	StatusDeadEnd Status = "dead_end"

	// StatusLoop means the walk arrived at a page it had already visited.
	StatusLoop Status = "loop"

	// StatusCancelled means the run was stopped from outside, either by a
	// race winner or by context cancellation.
	StatusCancelled Status = "cancelled"
)

// String returns the status as a string.
func (s Status) String() string {
	return string(s)
}

// Succeeded reports whether the run found the target.
func (s Status) Succeeded() bool {
	return s == StatusReached || s == StatusMatched
}

// Terminal reports whether the status is final.
func (s Status) Terminal() bool {
	return s != StatusRunning && s != ""
}

// Step is one entry of a Path.
type Step struct {
	// Title is the page title, or the link text for a synthetic entry.
	Title string `json:"title"`

	// Ref is the canonical page.
	Ref PageRef `json:"url"`

	// Score is the score of the link that led here. Zero for the start page.
	Score float64 `json:"score,omitempty"`

	// Synthetic marks the final entry appended when the walk stopped on a
	// qualifying link instead of landing on the page.
	Synthetic bool `json:"synthetic,omitempty"`
}

// Path is the ordered, append-only trace of a navigation run.
type Path struct {
	// Steps holds one entry per visited page, plus an optional synthetic
	// final entry.
	Steps []Step `json:"steps"`

	// Status is the terminal state of the run.
	Status Status `json:"status"`

	// Visited is the number of distinct pages expanded by the run.
	Visited int `json:"visited"`
}

// Len returns the number of entries in the path.
func (p Path) Len() int {
	return len(p.Steps)
}

// Last returns the final entry of the path.
func (p Path) Last() (Step, bool) {
	if len(p.Steps) == 0 {
		return Step{}, false
	}
	return p.Steps[len(p.Steps)-1], true
}

// Titles returns the titles of all entries in order.
func (p Path) Titles() []string {
	titles := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		titles[i] = s.Title
	}
	return titles
}

// Clone returns a deep copy of p so callers can hand it out read-only.
func (p Path) Clone() Path {
	p.Steps = slices.Clone(p.Steps)
	return p
}

// RaceResult is the path recorded by one race participant.
type RaceResult struct {
	// Strategy is the participant's name, e.g. "Title-Based".
	Strategy string `json:"strategy"`

	// Path is the participant's trace.
	Path Path `json:"path"`
}
