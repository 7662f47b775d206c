package scorer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// stopwords is a compact English stopword list.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		a about above after again against all also am an and any are as at be because been
		before being below between both but by can could did do does doing down during each
		few for from further had has have having he her here hers herself him himself his how
		i if in into is it its itself just me more most my myself no nor not now of off on
		once only or other our ours ourselves out over own same she should so some such than
		that the their theirs them themselves then there these they this those through to too
		under until up very was we were what when where which while who whom why will with
		would you your yours yourself yourselves known one two first new may many well`) {
		stopwords[w] = struct{}{}
	}
}

// IsStopword reports whether the case-folded word is an English stopword.
func IsStopword(word string) bool {
	_, ok := stopwords[word]
	return ok
}

// Tokenize splits text into case-folded words, dropping stopwords and words
// of two runes or fewer. Anything that is not a letter separates words.
func Tokenize(text string) []string {
	folded := cases.Fold().String(text)
	fields := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) <= 2 {
			continue
		}
		if IsStopword(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// foldedText returns the trimmed, case-folded text.
func foldedText(text string) string {
	return cases.Fold().String(strings.TrimSpace(text))
}
