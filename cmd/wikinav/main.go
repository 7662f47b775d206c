// Package main provides the entry point for the wikinav CLI.
//
// wikinav finds a path of hyperlinks between two Wikipedia pages by
// following, at every page, the link whose text is most related to the
// target. It can also search depth-first with backtracking, or race a
// title-guided walk against a summary-guided one.
//
// Usage:
//
//	wikinav walk <start> --target <title>
//	wikinav dfs <start> --target <title>
//	wikinav race <start> --target <title>
//
// See --help for all available options.
package main

// main is the entry point for wikinav.
func main() {
	Execute()
}
