// Package race runs two navigation strategies against each other and keeps
// the first one to finish.
//
// Each participant owns its engine, visited set and path. The only shared
// state is a board holding a finish flag and the append-only list of
// recorded results. A participant checks the flag before every step and
// stops without recording once it is set; recording a result sets the flag
// in the same critical section, so at most one result is ever recorded.
//
// Cancellation is cooperative: a step that is already fetching or scoring
// runs to completion, and the loser stops at its next step boundary.
package race
