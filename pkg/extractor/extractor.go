package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"

	"github.com/amosWeiskopf/pagewords/pkg/utils"
)

// Extractor handles content extraction from HTML
type Extractor struct {
	skipTags  map[string]bool
	blockTags map[string]bool
}

// New creates a new Extractor instance
func New() *Extractor {
	return &Extractor{
		skipTags: setOf("script", "style", "noscript", "template", "head"),
		blockTags: setOf(
			"address", "article", "aside", "blockquote", "br", "caption", "dd", "details",
			"div", "dl", "dt", "fieldset", "figcaption", "figure", "footer", "form",
			"h1", "h2", "h3", "h4", "h5", "h6", "header", "hr", "li", "main", "nav",
			"ol", "option", "p", "pre", "section", "summary", "table", "tbody", "td",
			"tfoot", "th", "thead", "tr", "ul",
		),
	}
}

// Parse builds a lenient document tree. Malformed markup never fails;
// an error is only possible if reading the input fails.
func (e *Extractor) Parse(htmlContent string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
}

// ExtractLinks returns the absolute target of every anchor with an href, in
// document order. Hrefs are resolved against <base href> when present, else
// against baseURL. Empty hrefs and targets that do not resolve to an absolute
// URL are dropped.
func (e *Extractor) ExtractLinks(doc *goquery.Document, baseURL string) []string {
	base := documentBase(doc, baseURL)

	links := []string{}
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}
		if abs := resolveURL(base, href); strings.TrimSpace(abs) != "" {
			links = append(links, abs)
		}
	})
	return links
}

// ExtractBodyText returns the visible text of <body>. Text of inline elements
// is joined directly, block elements are separated by a space, and
// script-like elements are skipped.
func (e *Extractor) ExtractBodyText(doc *goquery.Document) string {
	body := doc.Find("body")
	if body.Length() == 0 {
		return ""
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			return
		case html.ElementNode:
			if e.skipTags[n.Data] {
				return
			}
		}
		block := n.Type == html.ElementNode && e.blockTags[n.Data]
		if block {
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			b.WriteByte(' ')
		}
	}
	for _, n := range body.Nodes {
		walk(n)
	}
	return b.String()
}

// ExtractReadableText extracts the main content of the page using
// trafilatura, dropping navigation and other boilerplate. It returns an empty
// string when nothing could be extracted.
func (e *Extractor) ExtractReadableText(htmlContent string, baseURL string) (string, error) {
	opts := trafilatura.Options{}
	if u, err := url.Parse(baseURL); err == nil && u.IsAbs() {
		opts.OriginalURL = u
	}
	result, err := trafilatura.Extract(strings.NewReader(htmlContent), opts)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", nil
	}
	return result.ContentText, nil
}

// ExtractTitle returns the text of the first <title> with whitespace collapsed
func (e *Extractor) ExtractTitle(doc *goquery.Document) string {
	return utils.CleanText(doc.Find("title").First().Text())
}

// documentBase picks the URL relative links resolve against
func documentBase(doc *goquery.Document, baseURL string) *url.URL {
	var base *url.URL
	if u, err := url.Parse(strings.TrimSpace(baseURL)); err == nil && u.IsAbs() {
		base = u
	}

	href, ok := doc.Find("base[href]").First().Attr("href")
	if !ok {
		return base
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return base
	}
	if base != nil {
		return base.ResolveReference(ref)
	}
	if ref.IsAbs() {
		return ref
	}
	return nil
}

// resolveURL returns the absolute form of href, or "" when it has none
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}
	if !ref.IsAbs() {
		return ""
	}
	return ref.String()
}

func setOf(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, item := range items {
		m[item] = true
	}
	return m
}
