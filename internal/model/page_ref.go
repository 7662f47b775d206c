package model

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/cases"
)

// ErrInvalidPageRef is returned when a string cannot be turned into a PageRef.
var ErrInvalidPageRef = errors.New("invalid page reference")

const (
	// wikiPathPrefix is the path prefix of article pages.
	wikiPathPrefix = "/wiki/"
	// wikipediaDomain is the registrable domain shared by all language editions.
	wikipediaDomain = "wikipedia.org"
)

// PageRef is an immutable value object identifying a page.
// Two URLs that differ only by fragment or query map to the same PageRef.
type PageRef struct {
	url string
}

// ParsePageRef canonicalizes raw and returns it as a PageRef.
// The input must be an absolute URL with a scheme and a host.
func ParsePageRef(raw string) (PageRef, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return PageRef{}, fmt.Errorf("%w: empty URL", ErrInvalidPageRef)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return PageRef{}, fmt.Errorf("%w: %w", ErrInvalidPageRef, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return PageRef{}, fmt.Errorf("%w: %q is not an absolute URL", ErrInvalidPageRef, raw)
	}

	return PageRef{url: canonicalURL(u)}, nil
}

// MustParsePageRef is like ParsePageRef but panics on error.
// Use only for known-valid URLs in tests or initialization.
func MustParsePageRef(raw string) PageRef {
	ref, err := ParsePageRef(raw)
	if err != nil {
		panic(err)
	}
	return ref
}

// Canonicalize returns the canonical form of raw.
// Unparsable input is returned trimmed but otherwise unchanged, so the
// function is total and idempotent.
func Canonicalize(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return canonicalURL(u)
}

// canonicalURL strips fragment and query, lower-cases scheme and host and
// renders an empty path as "/".
func canonicalURL(u *url.URL) string {
	c := *u
	c.Fragment = ""
	c.RawFragment = ""
	c.RawQuery = ""
	c.ForceQuery = false
	c.Scheme = strings.ToLower(c.Scheme)
	c.Host = strings.ToLower(c.Host)
	if c.Host != "" && c.Path == "" {
		c.Path = "/"
		c.RawPath = ""
	}
	return c.String()
}

// String returns the canonical URL.
func (r PageRef) String() string {
	return r.url
}

// IsZero reports whether r is the zero PageRef.
func (r PageRef) IsZero() bool {
	return r.url == ""
}

// Title returns the human-readable label of the page: the path segment after
// /wiki/ (or the last non-empty segment), percent-decoded, with underscores
// rendered as spaces.
func (r PageRef) Title() string {
	u, err := url.Parse(r.url)
	if err != nil {
		return r.url
	}

	segment := ""
	if rest, ok := strings.CutPrefix(u.EscapedPath(), wikiPathPrefix); ok {
		segment = rest
	} else {
		parts := strings.Split(strings.Trim(u.EscapedPath(), "/"), "/")
		segment = parts[len(parts)-1]
	}
	if segment == "" {
		return r.url
	}

	if decoded, err := url.PathUnescape(segment); err == nil {
		segment = decoded
	}
	return strings.ReplaceAll(segment, "_", " ")
}

// Host returns the lower-cased host of the page.
func (r PageRef) Host() string {
	u, err := url.Parse(r.url)
	if err != nil {
		return ""
	}
	return u.Host
}

// Language returns the Wikipedia language edition of the page, or the empty
// string when the page is not hosted on a Wikipedia language subdomain.
func (r PageRef) Language() string {
	host := r.Host()
	lang, ok := strings.CutSuffix(host, "."+wikipediaDomain)
	if !ok || lang == "" || strings.Contains(lang, ".") {
		return ""
	}
	return lang
}

// InLanguage returns the same article in another Wikipedia language edition.
// Pages outside wikipedia.org are returned unchanged.
func (r PageRef) InLanguage(lang string) PageRef {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" || r.Language() == "" {
		return r
	}

	u, err := url.Parse(r.url)
	if err != nil {
		return r
	}
	u.Host = lang + "." + wikipediaDomain
	return PageRef{url: canonicalURL(u)}
}

// SameTitle reports whether two titles are equal under Unicode case folding,
// ignoring surrounding whitespace.
func SameTitle(a, b string) bool {
	return FoldTitle(a) == FoldTitle(b)
}

// FoldTitle returns the case-folded, trimmed form of a title or link text.
// A new Caser is created per call because cases.Caser is stateful.
func FoldTitle(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// MarshalText implements encoding.TextMarshaler.
func (r PageRef) MarshalText() ([]byte, error) {
	return []byte(r.url), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *PageRef) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*r = PageRef{}
		return nil
	}
	ref, err := ParsePageRef(string(text))
	if err != nil {
		return err
	}
	*r = ref
	return nil
}
