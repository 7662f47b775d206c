package config

import "time"

// StrategyConfig overrides walk limits for one race participant.
type StrategyConfig struct {
	// MaxSteps overrides the step budget. Zero keeps the default.
	MaxSteps int `yaml:"maxSteps,omitempty"`

	// Threshold overrides the stop threshold. Nil keeps the default.
	Threshold *float64 `yaml:"threshold,omitempty"`
}

// ScorerConfig selects the scorer from the configuration file.
type ScorerConfig struct {
	// Kind is lexical, openai or http.
	Kind string `yaml:"kind,omitempty"`

	// Model is the embedding model of the openai scorer.
	Model string `yaml:"model,omitempty"`

	// Endpoint is the base URL of the http scorer.
	Endpoint string `yaml:"endpoint,omitempty"`
}

// File represents the structure of the .wikinav configuration file.
type File struct {
	// Defaults applies to every walk unless a strategy overrides it.
	Defaults StrategyConfig `yaml:"defaults,omitempty"`

	// Strategies maps race participant names ("Title-Based",
	// "Context-Based") to their overrides.
	Strategies map[string]StrategyConfig `yaml:"strategies,omitempty"`

	// MaxDepth overrides the backtracking depth bound.
	MaxDepth int `yaml:"maxDepth,omitempty"`

	// WordLimit overrides the summary word limit.
	WordLimit int `yaml:"wordLimit,omitempty"`

	// Language is the edition used for bare start titles.
	Language string `yaml:"language,omitempty"`

	// Languages are the editions searched for a target summary.
	Languages []string `yaml:"languages,omitempty"`

	// WikiURLFormat overrides the article URL format, e.g. for a mirror.
	WikiURLFormat string `yaml:"wikiURLFormat,omitempty"`

	// IgnoreTerms are extra link texts dropped before scoring.
	IgnoreTerms []string `yaml:"ignoreTerms,omitempty"`

	// UserAgent overrides the HTTP User-Agent.
	UserAgent string `yaml:"userAgent,omitempty"`

	// RequestDelay overrides the delay between requests, e.g. "500ms".
	RequestDelay time.Duration `yaml:"requestDelay,omitempty"`

	// Scorer selects the scorer.
	Scorer ScorerConfig `yaml:"scorer,omitempty"`
}

// StrategySettings returns the settings for the named strategy: the file
// defaults merged with the strategy's own overrides.
func (cf *File) StrategySettings(name string) StrategyConfig {
	result := cf.Defaults

	if s, ok := cf.Strategies[name]; ok {
		if s.MaxSteps != 0 {
			result.MaxSteps = s.MaxSteps
		}
		if s.Threshold != nil {
			result.Threshold = s.Threshold
		}
	}

	return result
}
