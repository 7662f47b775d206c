// Package model defines the core data structures shared by the navigator,
// the race coordinator, the page source and the report writers.
//
// This package contains the following main types:
//   - PageRef: Canonical identity of a page (normalized absolute URL)
//   - Candidate: An outgoing link discovered on a page
//   - Step and Path: The trace of a navigation run and its terminal Status
//   - RaceResult: The path recorded by one race participant
//
// The models carry no behavior beyond normalization and comparison so that
// every other package can depend on them without import cycles. Paths and
// race results serialize to JSON for report output.
package model
