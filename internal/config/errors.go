package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and can be checked with
// errors.Is().
var (
	// ErrNoStart is returned when no start page is given.
	ErrNoStart = errors.New("no start page specified: provide a Wikipedia URL or title")

	// ErrNoTarget is returned when no target title is given.
	ErrNoTarget = errors.New("no target specified: use --target")

	// ErrInvalidMaxSteps is returned when the step budget is not positive.
	ErrInvalidMaxSteps = errors.New("invalid max steps: must be positive")

	// ErrInvalidMaxDepth is returned when the search depth is not positive.
	ErrInvalidMaxDepth = errors.New("invalid max depth: must be positive")

	// ErrInvalidThreshold is returned when the threshold is not a number.
	ErrInvalidThreshold = errors.New("invalid threshold: must be a number")

	// ErrInvalidWordLimit is returned when the summary word limit is not positive.
	ErrInvalidWordLimit = errors.New("invalid word limit: must be positive")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidRequestDelay is returned when the request delay is negative.
	// Use 0 for no delay between requests.
	ErrInvalidRequestDelay = errors.New("invalid request delay: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// Use 0 to use the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrUnknownScorer is returned when the scorer is not lexical, openai or http.
	ErrUnknownScorer = errors.New("unknown scorer: use lexical, openai or http")

	// ErrInvalidConcurrency is returned when concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidWikiURLFormat is returned when the article URL format does
	// not take exactly a language and a title.
	ErrInvalidWikiURLFormat = errors.New("invalid wiki URL format: must contain exactly two %s verbs (language, title)")
)
