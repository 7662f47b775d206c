package crawler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/time/rate"

	"github.com/nao1215/wikinav/internal/model"
)

// ErrFetch is returned when a page cannot be retrieved or parsed.
var ErrFetch = errors.New("failed to fetch page")

const (
	// DefaultUserAgent identifies wikinav to Wikipedia, as its robot policy asks.
	DefaultUserAgent = "wikinav/1.0 (https://github.com/nao1215/wikinav)"

	// DefaultDelay is the minimum spacing between two requests.
	DefaultDelay = 200 * time.Millisecond

	// DefaultMaxBodySize is the maximum response body size read per page.
	DefaultMaxBodySize int64 = 5 * 1024 * 1024

	// DefaultMaxRetries is the number of attempts per page.
	DefaultMaxRetries = 5

	// DefaultTimeout bounds a single HTTP request.
	DefaultTimeout = 10 * time.Second
)

// Page is a fetched and parsed article.
type Page struct {
	// Ref is the canonical reference that was requested.
	Ref model.PageRef

	// StatusCode is the final HTTP status.
	StatusCode int

	// Title is the <title> of the page.
	Title string

	// Anchors are the article links found on the page.
	Anchors []Anchor

	// Paragraphs are the lead paragraphs of the article body.
	Paragraphs []string
}

// Source fetches Wikipedia pages over HTTP.
// It is safe for concurrent use; the limiter is shared by all callers.
type Source struct {
	// client performs the requests.
	client *http.Client

	// limiter spaces requests by the configured delay.
	limiter *rate.Limiter

	// userAgent is the User-Agent header to use.
	userAgent string

	// maxBodySize limits the size of response bodies to read.
	maxBodySize int64

	// maxRetries is the number of attempts per page, including the first.
	maxRetries uint

	// newBackOff creates the retry schedule for one page.
	newBackOff func() backoff.BackOff

	// logger receives retry and fetch diagnostics.
	logger *slog.Logger
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(client *http.Client) SourceOption {
	return func(s *Source) {
		if client != nil {
			s.client = client
		}
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) SourceOption {
	return func(s *Source) {
		if ua != "" {
			s.userAgent = ua
		}
	}
}

// WithDelay sets the minimum delay between requests.
// Zero or a negative delay disables rate limiting.
func WithDelay(d time.Duration) SourceOption {
	return func(s *Source) {
		if d <= 0 {
			s.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		s.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// WithMaxBodySize sets the maximum response body size.
func WithMaxBodySize(size int64) SourceOption {
	return func(s *Source) {
		if size > 0 {
			s.maxBodySize = size
		}
	}
}

// WithMaxRetries sets the number of attempts per page.
func WithMaxRetries(n uint) SourceOption {
	return func(s *Source) {
		if n > 0 {
			s.maxRetries = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) SourceOption {
	return func(s *Source) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSource creates a new Source with polite defaults.
func NewSource(opts ...SourceOption) *Source {
	s := &Source{
		client:      &http.Client{Timeout: DefaultTimeout},
		limiter:     rate.NewLimiter(rate.Every(DefaultDelay), 1),
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
		maxRetries:  DefaultMaxRetries,
		newBackOff:  func() backoff.BackOff { return backoff.NewExponentialBackOff() },
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// FetchLinks fetches the page at ref and returns its outgoing article links
// as candidates, in document order. Links are not filtered beyond the
// Wikipedia link rules of the parser.
func (s *Source) FetchLinks(ctx context.Context, ref model.PageRef) ([]model.Candidate, error) {
	page, err := s.FetchPage(ctx, ref)
	if err != nil {
		return nil, err
	}

	candidates := make([]model.Candidate, 0, len(page.Anchors))
	for _, a := range page.Anchors {
		c, err := model.NewCandidate(a.Text, a.URL)
		if err != nil {
			continue
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

// FetchPage fetches and parses the page at ref.
func (s *Source) FetchPage(ctx context.Context, ref model.PageRef) (*Page, error) {
	if ref.IsZero() {
		return nil, fmt.Errorf("%w: empty page reference", ErrFetch)
	}

	pageURL := ref.String()
	attempt := 0
	fetched, err := backoff.Retry(ctx, func() (fetchResult, error) {
		attempt++
		return s.fetchOnce(ctx, pageURL)
	},
		backoff.WithBackOff(s.newBackOff()),
		backoff.WithMaxTries(s.maxRetries),
		backoff.WithNotify(func(err error, next time.Duration) {
			s.logger.Debug("retrying page fetch",
				"url", pageURL,
				"attempt", attempt,
				"next", next,
				"error", err,
			)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, pageURL, err)
	}

	parser, err := NewParser(pageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, pageURL, err)
	}
	result, err := parser.Parse(bytes.NewReader(fetched.body))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: parse: %w", ErrFetch, pageURL, err)
	}

	s.logger.Debug("fetched page",
		"url", pageURL,
		"status", fetched.status,
		"anchors", len(result.Anchors),
	)

	return &Page{
		Ref:        ref,
		StatusCode: fetched.status,
		Title:      result.Title,
		Anchors:    result.Anchors,
		Paragraphs: result.Paragraphs,
	}, nil
}

// fetchResult is the raw outcome of one successful attempt.
type fetchResult struct {
	status int
	body   []byte
}

// fetchOnce performs a single attempt. Transient failures are returned as
// plain errors so they are retried; everything else is permanent.
func (s *Source) fetchOnce(ctx context.Context, pageURL string) (fetchResult, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return fetchResult{}, backoff.Permanent(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return fetchResult{}, backoff.Permanent(err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fetchResult{}, backoff.Permanent(err)
		}
		return fetchResult{}, err
	}
	defer resp.Body.Close()

	if isRetryableStatus(resp.StatusCode) {
		return fetchResult{}, fmt.Errorf("server returned %d", resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fetchResult{}, backoff.Permanent(fmt.Errorf("server returned %d", resp.StatusCode))
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "html") {
		return fetchResult{}, backoff.Permanent(fmt.Errorf("unexpected content type %q", ct))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBodySize))
	if err != nil {
		return fetchResult{}, err
	}
	return fetchResult{status: resp.StatusCode, body: body}, nil
}

// isRetryableStatus reports whether a status code is a transient server error.
func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
