package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"
)

// sensitiveKeys contains attribute keys that should always be masked.
var sensitiveKeys = map[string]bool{
	// HTTP headers
	"authorization":       true,
	"proxy-authorization": true,
	"cookie":              true,
	"set-cookie":          true,
	"x-api-key":           true,

	// API credentials
	"api_key":        true,
	"apikey":         true,
	"api-key":        true,
	"openai_api_key": true,
	"access_token":   true,
	"refresh_token":  true,
	"bearer":         true,
	"password":       true,
	"secret":         true,
	"token":          true,
}

// sensitivePatterns contains patterns of values that look like credentials.
var sensitivePatterns = []*regexp.Regexp{
	// OpenAI style keys, including project keys (sk-proj-...)
	regexp.MustCompile(`\bsk-[A-Za-z0-9_-]{16,}`),

	// Bearer tokens
	regexp.MustCompile(`(?i)^bearer\s+.+`),

	// Basic auth
	regexp.MustCompile(`(?i)^basic\s+[A-Za-z0-9+/=]+$`),

	// JWT tokens
	regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`),

	// Long opaque tokens
	regexp.MustCompile(`^[A-Za-z0-9]{40,}$`),
}

// MaskValue is the string used to replace sensitive values.
const MaskValue = "***REDACTED***"

// MaxValueLength is the number of runes kept from long string values.
const MaxValueLength = 200

// RedactingHandler wraps an slog.Handler, masking credentials and
// truncating long strings before records reach the wrapped handler.
type RedactingHandler struct {
	// handler receives the cleaned records.
	handler slog.Handler

	// maxLen is the number of runes kept from string values. Zero disables
	// truncation.
	maxLen int
}

// NewRedactingHandler creates a RedactingHandler wrapping handler.
// If handler is nil, slog.Default().Handler() is wrapped.
func NewRedactingHandler(handler slog.Handler) *RedactingHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &RedactingHandler{handler: handler, maxLen: MaxValueLength}
}

// Enabled reports whether the handler handles records at the given level.
func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle cleans the record's attributes and passes it on.
func (h *RedactingHandler) Handle(ctx context.Context, r slog.Record) error {
	cleaned := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		cleaned.AddAttrs(h.clean(a))
		return true
	})
	return h.handler.Handle(ctx, cleaned)
}

// WithAttrs returns a new handler with the given attributes added.
func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	cleaned := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		cleaned[i] = h.clean(a)
	}
	return &RedactingHandler{handler: h.handler.WithAttrs(cleaned), maxLen: h.maxLen}
}

// WithGroup returns a new handler with the given group name.
func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{handler: h.handler.WithGroup(name), maxLen: h.maxLen}
}

// clean masks or truncates a single attribute, recursing into groups.
func (h *RedactingHandler) clean(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		cleaned := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			cleaned[i] = h.clean(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(cleaned...)}
	}

	if isSensitiveKey(a.Key) {
		return slog.String(a.Key, MaskValue)
	}

	if a.Value.Kind() == slog.KindString {
		s := a.Value.String()
		if isSensitiveValue(s) {
			return slog.String(a.Key, MaskValue)
		}
		if h.maxLen > 0 && utf8.RuneCountInString(s) > h.maxLen {
			return slog.String(a.Key, truncate(s, h.maxLen))
		}
	}

	return a
}

// isSensitiveKey reports whether key names a credential.
// The bare word "key" is not enough: "primary_key" and "monkey" are fine.
func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	if sensitiveKeys[lower] {
		return true
	}
	for _, keyword := range []string{"password", "secret", "token", "credential", "auth"} {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// isSensitiveValue checks if a value matches sensitive patterns.
func isSensitiveValue(value string) bool {
	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(value) {
			return true
		}
	}
	return false
}

// truncate keeps the first n runes of s and appends an ellipsis.
func truncate(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos] + "…"
		}
		i++
	}
	return s
}

// NewLogger creates a new slog.Logger with redaction.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
//   - json: If true, writes JSON lines; otherwise logfmt-style text
func NewLogger(w io.Writer, verbose, json bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(NewRedactingHandler(handler))
}
