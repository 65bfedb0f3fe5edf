package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dgallion1/docoutline/internal/doctree"
	"golang.org/x/net/html"
)

// headingSelector matches both ranks in a single traversal so that h2 and
// h3 elements come back interleaved in document order.
const headingSelector = "h2, h3"

// HTMLParser handles HTML and XHTML files.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	tree := &doctree.DocTree{
		Title: trimExt(filename, ".html", ".htm", ".xhtml"),
	}

	// Extract title from <title> tag if present.
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		tree.Title = title
	}

	tree.Headings = htmlHeadings(doc.Selection)
	return tree, nil
}

func htmlHeadings(sel *goquery.Selection) []doctree.Heading {
	var headings []doctree.Heading
	sel.Find(headingSelector).Each(func(_ int, s *goquery.Selection) {
		headings = append(headings, doctree.Heading{
			Rank:  doctree.RankFromTag(goquery.NodeName(s)),
			Text:  innerText(s.Get(0)),
			ID:    s.AttrOr("id", ""),
			Class: s.AttrOr("class", ""),
		})
	})
	return headings
}

// innerText approximates the browser's rendered text for an element.
// Runs of whitespace collapse to one space, <br> starts a new line, each
// line is trimmed and script/style content is dropped.
func innerText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var w textWriter
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			w.text(n.Data)
			return
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "template":
				return
			case "br":
				w.newline()
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	w.newline()
	return strings.Trim(strings.Join(w.lines, "\n"), "\n")
}

// textWriter accumulates rendered lines, folding whitespace across text
// nodes so "a <em>b</em>\n c" reads "a b c".
type textWriter struct {
	lines []string
	line  strings.Builder
	space bool
}

func (w *textWriter) text(s string) {
	for _, r := range s {
		if isHTMLSpace(r) {
			w.space = true
			continue
		}
		if w.space && w.line.Len() > 0 {
			w.line.WriteByte(' ')
		}
		w.space = false
		w.line.WriteRune(r)
	}
}

func (w *textWriter) newline() {
	w.lines = append(w.lines, w.line.String())
	w.line.Reset()
	w.space = false
}

// isHTMLSpace reports ASCII whitespace as HTML defines it; U+00A0 is kept.
func isHTMLSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}

func trimExt(filename string, exts ...string) string {
	for _, ext := range exts {
		if strings.HasSuffix(strings.ToLower(filename), ext) {
			return filename[:len(filename)-len(ext)]
		}
	}
	return filename
}
