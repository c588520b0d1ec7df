// internal/dom/snapshot.go

// Package dom provides the immutable document snapshot the extraction
// engine operates on. A snapshot wraps a parsed HTML tree together
// with the precomputed full rendered text of the document; the engine
// never mutates it and never re-queries the live page.
package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Snapshot is a read-only view of one rendered document
type Snapshot struct {
	doc      *goquery.Document
	fullText string
	baseURL  string
}

// NewSnapshot parses HTML content into a snapshot. baseURL is used to
// resolve relative hyperlink targets and may be empty.
func NewSnapshot(htmlContent string, baseURL string) (*Snapshot, error) {
	return NewSnapshotFromReader(strings.NewReader(htmlContent), baseURL)
}

// NewSnapshotFromReader parses HTML from a reader into a snapshot
func NewSnapshotFromReader(r io.Reader, baseURL string) (*Snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return &Snapshot{
		doc:      doc,
		fullText: collapseText(doc.Selection),
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// Find runs a CSS selector query against the whole document
func (s *Snapshot) Find(selector string) *goquery.Selection {
	return s.doc.Find(selector)
}

// Selection returns the root selection of the document
func (s *Snapshot) Selection() *goquery.Selection {
	return s.doc.Selection
}

// FullText returns the whitespace-collapsed rendered text of the whole
// document, computed once at parse time
func (s *Snapshot) FullText() string {
	return s.fullText
}

// BaseURL returns the URL the document was rendered from, if known
func (s *Snapshot) BaseURL() string {
	return s.baseURL
}

// ResolveURL resolves a possibly-relative hyperlink target against the
// snapshot's base URL. Absolute URLs pass through unchanged.
func (s *Snapshot) ResolveURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" || s.baseURL == "" {
		return href
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	if strings.HasPrefix(href, "/") {
		return s.baseURL + href
	}
	return s.baseURL + "/" + href
}

// NodeID returns a stable identity for the first node of a selection,
// used to deduplicate candidates surfaced by multiple selectors.
// Returns nil for empty selections.
func NodeID(sel *goquery.Selection) *html.Node {
	if sel == nil || sel.Length() == 0 {
		return nil
	}
	return sel.Get(0)
}

// Text returns the whitespace-collapsed text of a selection
func Text(sel *goquery.Selection) string {
	if sel == nil {
		return ""
	}
	return collapseText(sel)
}

func collapseText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}
