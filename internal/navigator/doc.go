// Package navigator walks Wikipedia-like link graphs toward a target page.
//
// Two search strategies share one Engine:
//
//   - Greedy walk (Run, Walk, Steps): at every page the outgoing links are
//     filtered, scored against a query in one batch, and the single best
//     link is followed. The walk never reconsiders a choice. It stops when
//     the page title equals the target, when the chosen link qualifies
//     (its text equals the target or its score reaches the threshold), or
//     when the step budget, the links or the unvisited pages run out.
//   - Backtracking search (Backtrack): a depth-bounded depth-first search
//     over ranked links that retreats from dead branches. It uses an
//     explicit stack of frames and one visited set for the whole tree, so a
//     page that failed once is never expanded again.
//
// The query of a greedy walk is either the target title itself
// (TitleRequest) or a descriptive summary of the target (ContextRequest).
// Termination checks always compare against the literal title.
//
// Fetch and scoring failures end a run gracefully; the returned Path
// carries the reason in its Status. Only invalid requests are reported as
// errors.
package navigator
