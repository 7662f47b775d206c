package crawler

import (
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

const (
	// wikiPathPrefix is the path prefix of article pages.
	wikiPathPrefix = "/wiki/"

	// mainPage is the title of the portal page, which links everywhere.
	mainPage = "Main_Page"

	// contentID and parserOutputClass locate the article body.
	contentID         = "mw-content-text"
	parserOutputClass = "mw-parser-output"
)

// Parser extracts links and text from a Wikipedia HTML page.
type Parser struct {
	// baseURL is the URL of the page being parsed, used for resolving relative URLs.
	baseURL *url.URL
}

// Anchor is a resolved article link found on a page.
type Anchor struct {
	// Text is the visible anchor text with whitespace collapsed.
	Text string

	// URL is the absolute link target.
	URL string
}

// ParseResult contains the information extracted from a page in one pass.
type ParseResult struct {
	// Title is the page title from the <title> tag.
	Title string

	// Anchors contains article links of the same language edition, in
	// document order.
	Anchors []Anchor

	// Paragraphs contains the text of the direct <p> children of the
	// article body (#mw-content-text .mw-parser-output > p).
	Paragraphs []string
}

// NewParser creates a new HTML parser with the given base URL.
// The base URL is used to resolve relative links.
func NewParser(baseURL string) (*Parser, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &Parser{baseURL: u}, nil
}

// Parse parses HTML content and extracts anchors, title and paragraphs.
func (p *Parser) Parse(content io.Reader) (*ParseResult, error) {
	doc, err := html.Parse(content)
	if err != nil {
		return nil, err
	}

	result := &ParseResult{
		Anchors:    make([]Anchor, 0),
		Paragraphs: make([]string, 0),
	}

	var walk func(n *html.Node, inContent bool)
	walk = func(n *html.Node, inContent bool) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if result.Title == "" {
					result.Title = collapse(textOf(n))
				}
			case "a":
				if a, ok := p.anchor(n); ok {
					result.Anchors = append(result.Anchors, a)
				}
			case "p":
				if inContent && isParserOutput(n.Parent) {
					result.Paragraphs = append(result.Paragraphs, collapse(textOf(n)))
				}
			}
			if getAttr(n, "id") == contentID {
				inContent = true
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inContent)
		}
	}

	walk(doc, false)
	return result, nil
}

// anchor converts an <a> element into an Anchor when it links to another
// article of the same language edition.
func (p *Parser) anchor(n *html.Node) (Anchor, bool) {
	href := strings.TrimSpace(getAttr(n, "href"))
	if !p.isUsefulHref(href) {
		return Anchor{}, false
	}

	resolved := p.resolveURL(href)
	if resolved == nil || !p.isArticle(resolved) {
		return Anchor{}, false
	}

	return Anchor{Text: collapse(textOf(n)), URL: resolved.String()}, true
}

// isUsefulHref rejects hrefs that can never be article links.
func (p *Parser) isUsefulHref(href string) bool {
	if href == "" || strings.HasPrefix(href, "#") {
		return false
	}
	lower := strings.ToLower(href)
	for _, scheme := range []string{"mailto:", "javascript:", "tel:", "data:"} {
		if strings.HasPrefix(lower, scheme) {
			return false
		}
	}
	return true
}

// resolveURL resolves a relative URL against the base URL.
func (p *Parser) resolveURL(href string) *url.URL {
	u, err := url.Parse(href)
	if err != nil {
		return nil
	}
	return p.baseURL.ResolveReference(u)
}

// isArticle reports whether u is an article page on the same host as the
// page being parsed. Namespaced pages (File:, Help:, Special:, ...) and the
// main page are not articles.
func (p *Parser) isArticle(u *url.URL) bool {
	if !strings.EqualFold(u.Host, p.baseURL.Host) {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	title, ok := strings.CutPrefix(u.Path, wikiPathPrefix)
	if !ok || title == "" {
		return false
	}
	if strings.Contains(title, ":") || title == mainPage {
		return false
	}
	return true
}

// isParserOutput reports whether n is the article body container.
func isParserOutput(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode || n.Data != "div" {
		return false
	}
	for _, class := range strings.Fields(getAttr(n, "class")) {
		if class == parserOutputClass {
			return true
		}
	}
	return false
}

// textOf concatenates all text below n.
func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			return
		}
		if n.Type == html.ElementNode && (n.Data == "style" || n.Data == "script") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// collapse trims s and collapses internal whitespace runs to single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
