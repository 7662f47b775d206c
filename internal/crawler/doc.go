// Package crawler fetches Wikipedia pages and extracts their outgoing article
// links for the navigator.
//
// # Components
//
//   - Source: the page source used by the navigator; fetches a page with
//     retries and a politeness limiter, then extracts candidate links
//   - Parser: HTML parser that extracts anchors, the page title and the lead
//     paragraphs of the article body
//
// # Politeness
//
// The source is designed to be polite to wikipedia.org:
//   - A rate limiter spaces requests (configurable delay)
//   - Transient server errors are retried with exponential backoff
//   - Response bodies are size-limited
//
// # Usage
//
//	src := crawler.NewSource(crawler.WithDelay(200 * time.Millisecond))
//	links, err := src.FetchLinks(ctx, model.MustParsePageRef("https://en.wikipedia.org/wiki/India"))
//
// Only links to other articles of the same language edition are returned:
// special namespaces (File:, Help:, Talk:, ...), the main page, fragments,
// mailto: and javascript: links are dropped here, before link filtering.
package crawler
