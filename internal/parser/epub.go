package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/taylorskalyo/goreader/epub"
)

// EPUBParser collects headings from every spine document in reading order.
type EPUBParser struct{}

func (p *EPUBParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	// goreader opens archives by path, so spool to a temp file first.
	tmp, err := os.CreateTemp("", "docoutline-epub-*.epub")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	rc, err := epub.OpenReader(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("open epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return nil, fmt.Errorf("no rootfiles found in epub")
	}
	book := rc.Rootfiles[0]

	tree := &doctree.DocTree{
		Title: trimExt(filename, ".epub"),
	}
	if title := strings.TrimSpace(book.Title); title != "" {
		tree.Title = title
	}

	for _, ref := range book.Spine.Itemrefs {
		if ref.Item == nil {
			continue
		}
		headings, err := spineHeadings(ref.Item)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", ref.Item.HREF, err)
		}
		tree.Headings = append(tree.Headings, headings...)
	}

	return tree, nil
}

func spineHeadings(item *epub.Item) ([]doctree.Heading, error) {
	r, err := item.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return htmlHeadings(doc.Selection), nil
}
