package race

import (
	"slices"
	"sync"

	"github.com/nao1215/wikinav/internal/model"
)

// board is the state shared by the participants of one race.
type board struct {
	mu       sync.Mutex
	finished bool
	results  []model.RaceResult
}

// done reports whether a participant has already finished.
func (b *board) done() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.finished
}

// finish records r and sets the flag if no participant finished before.
// It reports whether r was recorded.
func (b *board) finish(r model.RaceResult) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.finished {
		return false
	}
	b.finished = true
	b.results = append(b.results, r)
	return true
}

// recorded returns a copy of the recorded results in order.
func (b *board) recorded() []model.RaceResult {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.results)
}
