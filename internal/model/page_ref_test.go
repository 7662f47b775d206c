package model

import (
	"encoding/json"
	"errors"
	"testing"
)

// TestCanonicalize tests URL canonicalization.
func TestCanonicalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"strips fragment", "https://en.wikipedia.org/wiki/Paris#History", "https://en.wikipedia.org/wiki/Paris"},
		{"strips query", "https://en.wikipedia.org/wiki/Paris?action=edit", "https://en.wikipedia.org/wiki/Paris"},
		{"strips query and fragment", "https://en.wikipedia.org/wiki/Paris?a=1#b", "https://en.wikipedia.org/wiki/Paris"},
		{"lowercases scheme and host", "HTTPS://EN.Wikipedia.ORG/wiki/Paris", "https://en.wikipedia.org/wiki/Paris"},
		{"keeps path case", "https://en.wikipedia.org/wiki/New_York_City", "https://en.wikipedia.org/wiki/New_York_City"},
		{"adds root path", "https://en.wikipedia.org", "https://en.wikipedia.org/"},
		{"trims whitespace", "  https://en.wikipedia.org/wiki/Paris  ", "https://en.wikipedia.org/wiki/Paris"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Canonicalize(tt.input); got != tt.expected {
				t.Errorf("Canonicalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// TestCanonicalizeIdempotent verifies canonicalize(canonicalize(x)) == canonicalize(x).
func TestCanonicalizeIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"https://en.wikipedia.org/wiki/Paris#History",
		"HTTP://Example.COM?x=1",
		"https://en.wikipedia.org/wiki/S%C3%A3o_Paulo?oldid=1",
		"https://ja.wikipedia.org/wiki/%E6%9D%B1%E4%BA%AC",
		"not a url at all",
		"",
	}

	for _, in := range inputs {
		once := Canonicalize(in)
		twice := Canonicalize(once)
		if once != twice {
			t.Errorf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

// TestParsePageRef tests PageRef construction.
func TestParsePageRef(t *testing.T) {
	t.Parallel()

	t.Run("fragment and query variants are equal", func(t *testing.T) {
		t.Parallel()

		a := MustParsePageRef("https://en.wikipedia.org/wiki/Paris#Etymology")
		b := MustParsePageRef("https://en.wikipedia.org/wiki/Paris?useskin=vector")
		if a != b {
			t.Errorf("expected equal refs, got %q and %q", a, b)
		}
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := ParsePageRef("   ")
		if !errors.Is(err, ErrInvalidPageRef) {
			t.Errorf("expected ErrInvalidPageRef, got %v", err)
		}
	})

	t.Run("rejects relative URL", func(t *testing.T) {
		t.Parallel()

		_, err := ParsePageRef("/wiki/Paris")
		if !errors.Is(err, ErrInvalidPageRef) {
			t.Errorf("expected ErrInvalidPageRef, got %v", err)
		}
	})

	t.Run("zero value", func(t *testing.T) {
		t.Parallel()

		var ref PageRef
		if !ref.IsZero() {
			t.Error("expected zero PageRef")
		}
		if MustParsePageRef("https://en.wikipedia.org/wiki/Paris").IsZero() {
			t.Error("expected non-zero PageRef")
		}
	})
}

// TestPageRefTitle tests title derivation from the URL path.
func TestPageRefTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{"wiki article", "https://en.wikipedia.org/wiki/Paris", "Paris"},
		{"underscores become spaces", "https://en.wikipedia.org/wiki/New_York_City", "New York City"},
		{"percent decoded", "https://pt.wikipedia.org/wiki/S%C3%A3o_Paulo", "São Paulo"},
		{"fragment ignored", "https://en.wikipedia.org/wiki/Paris#History", "Paris"},
		{"non wiki path uses last segment", "http://example.com/pages/Some_Page", "Some Page"},
		{"root falls back to URL", "http://example.com/", "http://example.com/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ref := MustParsePageRef(tt.url)
			if got := ref.Title(); got != tt.expected {
				t.Errorf("Title() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// TestPageRefInLanguage tests switching Wikipedia language editions.
func TestPageRefInLanguage(t *testing.T) {
	t.Parallel()

	ref := MustParsePageRef("https://en.wikipedia.org/wiki/India")

	if got := ref.Language(); got != "en" {
		t.Errorf("expected language 'en', got %q", got)
	}

	hi := ref.InLanguage("hi")
	if hi.String() != "https://hi.wikipedia.org/wiki/India" {
		t.Errorf("unexpected localized URL: %q", hi)
	}

	if same := ref.InLanguage(""); same != ref {
		t.Errorf("empty language should keep the ref, got %q", same)
	}

	other := MustParsePageRef("http://example.com/wiki/India")
	if got := other.InLanguage("fr"); got != other {
		t.Errorf("non-Wikipedia ref should be unchanged, got %q", got)
	}
}

// TestSameTitle tests case-insensitive title comparison.
func TestSameTitle(t *testing.T) {
	t.Parallel()

	if !SameTitle("Sundar Pichai", "sundar pichai") {
		t.Error("expected case-insensitive match")
	}
	if !SameTitle(" Paris ", "PARIS") {
		t.Error("expected whitespace to be ignored")
	}
	if !SameTitle("École", "éCOLE") {
		t.Error("expected Unicode case folding")
	}
	if SameTitle("Paris", "London") {
		t.Error("expected different titles not to match")
	}
}

// TestPageRefJSON tests that PageRef serializes as its URL string.
func TestPageRefJSON(t *testing.T) {
	t.Parallel()

	step := Step{Title: "Paris", Ref: MustParsePageRef("https://en.wikipedia.org/wiki/Paris")}
	data, err := json.Marshal(step)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	expected := `{"title":"Paris","url":"https://en.wikipedia.org/wiki/Paris"}`
	if string(data) != expected {
		t.Errorf("expected %s, got %s", expected, data)
	}

	var decoded Step
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded.Ref != step.Ref {
		t.Errorf("expected %q, got %q", step.Ref, decoded.Ref)
	}
}
