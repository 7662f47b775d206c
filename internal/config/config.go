package config

import (
	"math"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/nao1215/wikinav/internal/navigator"
	"github.com/nao1215/wikinav/internal/scorer"
	"github.com/nao1215/wikinav/internal/summary"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "wikinav"

	// DefaultLanguage is the Wikipedia language edition of bare titles.
	DefaultLanguage = "en"

	// DefaultMaxSteps bounds a greedy walk.
	DefaultMaxSteps = 50

	// DefaultMaxDepth bounds a backtracking search. Every extra level
	// multiplies the number of pages that may be fetched, so keep it small.
	DefaultMaxDepth = 5

	// DefaultThreshold is the score at which a chosen link ends a walk.
	DefaultThreshold = 0.85

	// DefaultWordLimit is the number of words kept from a target summary.
	DefaultWordLimit = 100

	// DefaultTimeout bounds each HTTP request.
	DefaultTimeout = 10 * time.Second

	// DefaultRequestDelay spaces requests to Wikipedia.
	DefaultRequestDelay = 200 * time.Millisecond

	// DefaultMaxBodySize limits the response body size read per page.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultMaxRetries is the number of attempts per page.
	DefaultMaxRetries = 5

	// DefaultUserAgent identifies wikinav in HTTP requests.
	DefaultUserAgent = "wikinav/1.0 (+https://github.com/nao1215/wikinav)"

	// DefaultConcurrency is the number of batch jobs run at the same time.
	DefaultConcurrency = 4

	// DefaultScorer selects the offline lexical scorer.
	DefaultScorer = scorer.KindLexical

	// DefaultEmbeddingModel is the OpenAI embedding model.
	DefaultEmbeddingModel = scorer.DefaultOpenAIModel

	// DefaultWikiURLFormat builds an article URL from a language and a title.
	DefaultWikiURLFormat = summary.DefaultURLFormat

	// APIKeyEnv is the environment variable holding the OpenAI API key.
	APIKeyEnv = "OPENAI_API_KEY"
)

// DefaultSummaryLanguages are the language editions searched for a target
// summary, in order.
var DefaultSummaryLanguages = []string{"en", "simple", "es", "fr", "de", "hi", "ru", "ja"}

// Config holds all configuration options for wikinav.
// It is populated from defaults, the config file and CLI flags, in that
// order, and passed down explicitly.
type Config struct {
	// Start is the URL or title of the first page.
	Start string

	// Target is the title of the page to reach.
	Target string

	// Language is the Wikipedia edition used when Start is a bare title.
	Language string

	// MaxSteps bounds a greedy walk.
	MaxSteps int

	// MaxDepth bounds a backtracking search.
	MaxDepth int

	// Threshold is the score at which a chosen link ends a walk.
	Threshold float64

	// WordLimit is the number of words kept from a target summary.
	WordLimit int

	// UseContext makes a single walk score links against the target summary
	// instead of the target title.
	UseContext bool

	// SummaryLanguages are the language editions searched for a summary.
	SummaryLanguages []string

	// WikiURLFormat builds article URLs from a language and a title, for
	// bare start titles and summary lookups.
	WikiURLFormat string

	// IgnoreTerms are extra link texts dropped before scoring.
	IgnoreTerms []string

	// Concurrency is the number of batch jobs run at the same time.
	Concurrency int

	// Timeout bounds each HTTP request.
	Timeout time.Duration

	// RequestDelay is the minimum delay between two requests.
	RequestDelay time.Duration

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64

	// MaxRetries is the number of attempts per page.
	MaxRetries int

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// Scorer selects the scorer: lexical, openai or http.
	Scorer string

	// EmbeddingModel is the model used by the openai scorer.
	EmbeddingModel string

	// EmbeddingEndpoint is the base URL of the http scorer, or an
	// alternative OpenAI-compatible endpoint for the openai scorer.
	EmbeddingEndpoint string

	// APIKey authenticates the openai scorer. Read from OPENAI_API_KEY.
	APIKey string

	// Verbose enables detailed log output using slog.LevelDebug.
	Verbose bool

	// JSONLogs switches log output to JSON lines.
	JSONLogs bool

	// JSONReport enables JSON report output.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// Tee also prints the plain-text report to stdout when ReportFile is set.
	Tee bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the usual locations.
	ConfigFilePath string

	// File holds the loaded configuration file, if any.
	File *File
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Language:         DefaultLanguage,
		MaxSteps:         DefaultMaxSteps,
		MaxDepth:         DefaultMaxDepth,
		Threshold:        DefaultThreshold,
		WordLimit:        DefaultWordLimit,
		SummaryLanguages: slices.Clone(DefaultSummaryLanguages),
		WikiURLFormat:    DefaultWikiURLFormat,
		Concurrency:      DefaultConcurrency,
		Timeout:          DefaultTimeout,
		RequestDelay:     DefaultRequestDelay,
		MaxBodySize:      DefaultMaxBodySize,
		MaxRetries:       DefaultMaxRetries,
		UserAgent:        DefaultUserAgent,
		Scorer:           DefaultScorer,
		EmbeddingModel:   DefaultEmbeddingModel,
	}
}

// XDGConfigDir returns the XDG config directory for wikinav.
// On Linux: ~/.config/wikinav
// On macOS: ~/Library/Application Support/wikinav
// On Windows: %APPDATA%\wikinav
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Start) == "" {
		return ErrNoStart
	}
	if strings.TrimSpace(c.Target) == "" {
		return ErrNoTarget
	}
	if c.MaxSteps <= 0 {
		return ErrInvalidMaxSteps
	}
	if c.MaxDepth <= 0 {
		return ErrInvalidMaxDepth
	}
	if math.IsNaN(c.Threshold) {
		return ErrInvalidThreshold
	}
	if c.WordLimit <= 0 {
		return ErrInvalidWordLimit
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.RequestDelay < 0 {
		return ErrInvalidRequestDelay
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if strings.Count(c.WikiURLFormat, "%s") != 2 || strings.Count(c.WikiURLFormat, "%") != 2 {
		return ErrInvalidWikiURLFormat
	}
	switch c.Scorer {
	case scorer.KindLexical, scorer.KindOpenAI, scorer.KindHTTP:
	default:
		return ErrUnknownScorer
	}
	return nil
}

// Limits returns the walk limits for the named strategy: the configured
// MaxSteps and Threshold, overridden by the config file settings for that
// strategy when a file was loaded.
func (c *Config) Limits(strategy string) navigator.Limits {
	limits := navigator.Limits{MaxSteps: c.MaxSteps, Threshold: c.Threshold}
	if c.File == nil {
		return limits
	}
	s := c.File.StrategySettings(strategy)
	if s.MaxSteps != 0 {
		limits.MaxSteps = s.MaxSteps
	}
	if s.Threshold != nil {
		limits.Threshold = *s.Threshold
	}
	return limits
}

// ScorerSettings returns the scorer selection.
func (c *Config) ScorerSettings() scorer.Settings {
	return scorer.Settings{
		Kind:     c.Scorer,
		Model:    c.EmbeddingModel,
		Endpoint: c.EmbeddingEndpoint,
		APIKey:   c.APIKey,
		Timeout:  c.Timeout,
	}
}

// ApplyFile copies the settings of f over the current values and keeps f
// for per-strategy lookups. Values missing from the file are left alone.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	c.File = f

	d := f.Defaults
	if d.MaxSteps != 0 {
		c.MaxSteps = d.MaxSteps
	}
	if d.Threshold != nil {
		c.Threshold = *d.Threshold
	}
	if f.MaxDepth != 0 {
		c.MaxDepth = f.MaxDepth
	}
	if f.WordLimit != 0 {
		c.WordLimit = f.WordLimit
	}
	if f.Language != "" {
		c.Language = f.Language
	}
	if len(f.Languages) > 0 {
		c.SummaryLanguages = slices.Clone(f.Languages)
	}
	if f.WikiURLFormat != "" {
		c.WikiURLFormat = f.WikiURLFormat
	}
	if len(f.IgnoreTerms) > 0 {
		c.IgnoreTerms = append(c.IgnoreTerms, f.IgnoreTerms...)
	}
	if f.UserAgent != "" {
		c.UserAgent = f.UserAgent
	}
	if f.RequestDelay != 0 {
		c.RequestDelay = f.RequestDelay
	}
	if f.Scorer.Kind != "" {
		c.Scorer = f.Scorer.Kind
	}
	if f.Scorer.Model != "" {
		c.EmbeddingModel = f.Scorer.Model
	}
	if f.Scorer.Endpoint != "" {
		c.EmbeddingEndpoint = f.Scorer.Endpoint
	}
}
