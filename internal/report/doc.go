// Package report renders navigation results.
//
// This package contains writers for different output formats:
//   - SimpleWriter: Human-readable text output for terminal display
//   - MarkdownWriter: GitHub Flavored Markdown with tables and alerts
//   - JSONWriter: Structured JSON output for tool integration
//
// Every writer renders a Summary, which is built from a single walk or
// search (NewPathSummary) or from a race (NewRaceSummary).
package report
