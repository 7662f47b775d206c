package model

// Candidate is an outgoing link discovered on a page.
// Candidates are produced by a page source and never mutated afterwards.
type Candidate struct {
	// Text is the anchor text shown to readers.
	Text string `json:"text"`

	// Target is the canonical page the link points to.
	Target PageRef `json:"target"`
}

// NewCandidate creates a Candidate pointing at the canonical form of rawURL.
func NewCandidate(text, rawURL string) (Candidate, error) {
	ref, err := ParsePageRef(rawURL)
	if err != nil {
		return Candidate{}, err
	}
	return Candidate{Text: text, Target: ref}, nil
}

// ScoredCandidate pairs a candidate with its relatedness score for one
// ranking pass.
type ScoredCandidate struct {
	Candidate

	// Score is the relatedness of the candidate text to the query.
	Score float64 `json:"score"`
}
