package navigator

import (
	"fmt"
	"math"
	"strings"

	"github.com/nao1215/wikinav/internal/model"
)

// Limits bounds a greedy walk.
type Limits struct {
	// MaxSteps is the maximum number of pages the walk may visit.
	MaxSteps int `yaml:"maxSteps" json:"maxSteps"`

	// Threshold is the score at which a chosen link ends the walk.
	// A value above the scorer's range disables threshold matching.
	Threshold float64 `yaml:"threshold" json:"threshold"`
}

// Request describes one greedy walk.
type Request struct {
	// Start is the URL of the first page.
	Start string

	// Query is the text links are scored against. Empty means TitleTarget.
	Query string

	// TitleTarget is the title that ends the walk when a page or a chosen
	// link carries it.
	TitleTarget string

	// MaxSteps is the maximum number of pages the walk may visit.
	MaxSteps int

	// Threshold is the score at which a chosen link ends the walk.
	Threshold float64
}

// TitleRequest builds a request that scores links against the target title.
func TitleRequest(start, title string, limits Limits) Request {
	return Request{
		Start:       start,
		Query:       title,
		TitleTarget: title,
		MaxSteps:    limits.MaxSteps,
		Threshold:   limits.Threshold,
	}
}

// ContextRequest builds a request that scores links against a description
// of the target while still stopping on the literal title.
func ContextRequest(start, title, context string, limits Limits) Request {
	return Request{
		Start:       start,
		Query:       context,
		TitleTarget: title,
		MaxSteps:    limits.MaxSteps,
		Threshold:   limits.Threshold,
	}
}

// Validate checks that the request can be run.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Start) == "" {
		return fmt.Errorf("%w: start page is required", ErrInvalidConfig)
	}
	if _, err := model.ParsePageRef(r.Start); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if strings.TrimSpace(r.TitleTarget) == "" {
		return fmt.Errorf("%w: target title is required", ErrInvalidConfig)
	}
	if r.MaxSteps <= 0 {
		return fmt.Errorf("%w: max steps must be positive, got %d", ErrInvalidConfig, r.MaxSteps)
	}
	if math.IsNaN(r.Threshold) {
		return fmt.Errorf("%w: threshold is not a number", ErrInvalidConfig)
	}
	return nil
}

// query returns the text links are scored against.
func (r Request) query() string {
	if strings.TrimSpace(r.Query) == "" {
		return r.TitleTarget
	}
	return r.Query
}

// BacktrackRequest describes one backtracking search.
type BacktrackRequest struct {
	// Start is the URL of the first page.
	Start string

	// Target is the title to find. Links are also ranked against it.
	Target string

	// MaxDepth is the maximum number of hops from the start page.
	MaxDepth int
}

// Validate checks that the request can be run.
func (r BacktrackRequest) Validate() error {
	if strings.TrimSpace(r.Start) == "" {
		return fmt.Errorf("%w: start page is required", ErrInvalidConfig)
	}
	if _, err := model.ParsePageRef(r.Start); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if strings.TrimSpace(r.Target) == "" {
		return fmt.Errorf("%w: target title is required", ErrInvalidConfig)
	}
	if r.MaxDepth <= 0 {
		return fmt.Errorf("%w: max depth must be positive, got %d", ErrInvalidConfig, r.MaxDepth)
	}
	return nil
}
