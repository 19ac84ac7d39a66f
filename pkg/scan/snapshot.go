// Package scan discovers things on a rendered quiz page: the submission
// target for the answer and the dataset the answer is computed from.
package scan

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// OriginFunc queries the live rendering context for its scheme+host. It may
// be unavailable (nil) when the page was not rendered in a browser.
type OriginFunc func() (string, error)

// Snapshot is the immutable bundle every discovery step works from: the
// rendered markup, the URL it was loaded from, and an optional origin
// evaluator from the live rendering context.
type Snapshot struct {
	HTML    string
	BaseURL string
	Origin  OriginFunc

	doc  *goquery.Document
	text string
}

// NewSnapshot parses the markup once; all accessors reuse the parse.
func NewSnapshot(rawHTML, baseURL string, origin OriginFunc) (*Snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page HTML: %w", err)
	}
	s := &Snapshot{
		HTML:    rawHTML,
		BaseURL: baseURL,
		Origin:  origin,
		doc:     doc,
	}
	s.text = textNodes(doc)
	return s, nil
}

// Doc exposes the parsed document for selector-based discovery.
func (s *Snapshot) Doc() *goquery.Document { return s.doc }

// Text returns every text node of the page joined by newlines, script and
// style bodies included. URL pattern scans run over this.
func (s *Snapshot) Text() string { return s.text }

// ArticleText extracts the main readable content of the page. Falls back to
// the full text dump when extraction fails or finds nothing, so heuristics
// downstream never see an empty feed from a non-article page.
func (s *Snapshot) ArticleText() string {
	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return s.text
	}
	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(s.HTML), u)
	if err != nil || strings.TrimSpace(article.TextContent) == "" {
		return s.text
	}
	return article.TextContent
}

// ResolveOrigin returns the live page origin when the evaluator is
// available, else the scheme+host of the base URL.
func (s *Snapshot) ResolveOrigin() string {
	if s.Origin != nil {
		if origin, err := s.Origin(); err == nil && origin != "" {
			return origin
		}
	}
	u, err := url.Parse(s.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// textNodes walks the document collecting raw text node content.
func textNodes(doc *goquery.Document) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				if sb.Len() > 0 {
					sb.WriteByte('\n')
				}
				sb.WriteString(t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return sb.String()
}
