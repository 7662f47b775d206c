// Package filter removes navigation, boilerplate and duplicate links before
// they are scored.
package filter

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nao1215/wikinav/internal/model"
)

// minTextLength is the shortest anchor text (in runes) that survives filtering.
// Texts of this length or shorter ("de", "→", "v") carry no meaning.
const minTextLength = 2

// DefaultTerms is the navigational blacklist applied by Apply. A term drops
// any text that equals it or contains it once case folded, so the list stays
// short: "top" or "more" would also drop "Topology" and "Baltimore".
var DefaultTerms = []string{
	"home",
	"back",
	"next",
	"previous",
	"main page",
	"«",
	"»",
	"‹",
	"›",
	"←",
	"→",
	"↑",
	"^",
}

// Filter drops unusable candidates. It is a pure function of its input and
// safe for concurrent use.
type Filter struct {
	terms []string
}

// defaultFilter backs Apply.
var defaultFilter = New()

// New creates a Filter with DefaultTerms plus extra terms.
func New(extra ...string) *Filter {
	f := &Filter{}
	for _, term := range append(append([]string{}, DefaultTerms...), extra...) {
		term = model.FoldTitle(term)
		if term == "" {
			continue
		}
		f.terms = append(f.terms, term)
	}
	return f
}

// Apply filters candidates with the default blacklist.
func Apply(candidates []model.Candidate) []model.Candidate {
	return defaultFilter.Apply(candidates)
}

// Apply returns the candidates that pass every rule, in input order.
// Rules, in order: empty text, text of two runes or fewer, text without a
// letter, blacklisted text, and duplicates of an earlier text (case folded).
func (f *Filter) Apply(candidates []model.Candidate) []model.Candidate {
	kept := make([]model.Candidate, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))

	for _, c := range candidates {
		text := strings.TrimSpace(c.Text)
		if text == "" {
			continue
		}
		if utf8.RuneCountInString(text) <= minTextLength {
			continue
		}
		if !hasLetter(text) {
			continue
		}

		folded := model.FoldTitle(text)
		if f.blacklisted(folded) {
			continue
		}
		if _, dup := seen[folded]; dup {
			continue
		}
		seen[folded] = struct{}{}
		kept = append(kept, c)
	}

	return kept
}

// blacklisted reports whether folded text equals or contains a navigational term.
func (f *Filter) blacklisted(folded string) bool {
	for _, term := range f.terms {
		if strings.Contains(folded, term) {
			return true
		}
	}
	return false
}

// hasLetter reports whether s contains at least one Unicode letter.
func hasLetter(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}
