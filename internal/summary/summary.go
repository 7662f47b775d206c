// Package summary extracts a short, cleaned description of a Wikipedia
// article. The description is used as the query of context-based
// navigation.
package summary

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/nao1215/wikinav/internal/crawler"
	"github.com/nao1215/wikinav/internal/model"
	"github.com/nao1215/wikinav/internal/scorer"
)

const (
	// DefaultURLFormat builds an article URL from a language code and a title.
	DefaultURLFormat = "https://%s.wikipedia.org/wiki/%s"

	// FallbackLanguage is reported when no edition had a usable paragraph.
	FallbackLanguage = "en"

	// minCleanedLength is the minimum length of a usable cleaned paragraph.
	minCleanedLength = 30
)

// DefaultLanguages are the language editions tried in order.
var DefaultLanguages = []string{"en", "simple", "es", "fr", "de", "hi", "ru", "ja"}

// PageFetcher retrieves a parsed page.
type PageFetcher interface {
	FetchPage(ctx context.Context, ref model.PageRef) (*crawler.Page, error)
}

// Summary is the result of a lookup.
type Summary struct {
	// Text is the cleaned summary, or the title itself when nothing was found.
	Text string `json:"text"`

	// Lang is the language edition the summary came from.
	Lang string `json:"lang"`

	// Found reports whether a real summary was extracted.
	Found bool `json:"found"`
}

// Fetcher looks up article summaries across language editions.
type Fetcher struct {
	source    PageFetcher
	languages []string
	urlFormat string
	logger    *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithLanguages sets the language editions to try, in order.
func WithLanguages(langs ...string) Option {
	return func(f *Fetcher) {
		if len(langs) > 0 {
			f.languages = langs
		}
	}
}

// WithURLFormat sets the article URL format. The format receives the
// language code and the escaped title.
func WithURLFormat(format string) Option {
	return func(f *Fetcher) {
		if format != "" {
			f.urlFormat = format
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFetcher creates a Fetcher reading pages from source.
func NewFetcher(source PageFetcher, opts ...Option) *Fetcher {
	f := &Fetcher{
		source:    source,
		languages: DefaultLanguages,
		urlFormat: DefaultURLFormat,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the first usable lead paragraph of title, trying each
// language edition in order. A paragraph is usable when its cleaned text is
// at least 30 characters long; the summary keeps its first wordLimit words.
// Editions that fail to load are skipped. When no edition yields a summary,
// Fetch falls back to the title itself in English with Found unset.
// Only context cancellation is returned as an error.
func (f *Fetcher) Fetch(ctx context.Context, title string, wordLimit int) (Summary, error) {
	escaped := url.PathEscape(strings.ReplaceAll(strings.TrimSpace(title), " ", "_"))

	for _, lang := range f.languages {
		if err := ctx.Err(); err != nil {
			return Summary{}, err
		}

		ref, err := model.ParsePageRef(fmt.Sprintf(f.urlFormat, lang, escaped))
		if err != nil {
			return Summary{}, fmt.Errorf("invalid summary URL format: %w", err)
		}

		f.logger.Debug("looking up summary", "lang", lang, "url", ref.String())
		page, err := f.source.FetchPage(ctx, ref)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Summary{}, ctxErr
			}
			f.logger.Debug("summary edition unavailable", "lang", lang, "error", err)
			continue
		}

		for _, p := range page.Paragraphs {
			cleaned := Clean(p)
			if utf8.RuneCountInString(cleaned) < minCleanedLength {
				continue
			}
			text := Truncate(cleaned, wordLimit)
			f.logger.Info("found summary", "lang", lang, "summary", text)
			return Summary{Text: text, Lang: lang, Found: true}, nil
		}
	}

	f.logger.Warn("no summary found, using title", "title", title)
	return Summary{Text: title, Lang: FallbackLanguage, Found: false}, nil
}

// Clean lower-cases text, replaces everything that is not a letter with
// spaces, and removes stopwords and words of two runes or fewer.
func Clean(text string) string {
	return strings.Join(scorer.Tokenize(text), " ")
}

// Truncate keeps the first limit words of text. A non-positive limit keeps
// everything.
func Truncate(text string, limit int) string {
	words := strings.Fields(text)
	if limit > 0 && len(words) > limit {
		words = words[:limit]
	}
	return strings.Join(words, " ")
}
