package parser

import (
	"fmt"
	"io"
	"os"

	"github.com/dgallion1/docoutline/internal/doctree"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFParser reads the document outline (bookmarks) of a PDF. Top-level
// bookmarks become sections and their children subsections; anything
// nested deeper is dropped.
type PDFParser struct{}

func (p *PDFParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "docoutline-pdf-*.pdf")
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

	f, reader, err := pdflib.Open(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	tree := &doctree.DocTree{
		Title:    trimExt(filename, ".pdf"),
		Headings: outlineHeadings(reader.Outline()),
	}
	return tree, nil
}

func outlineHeadings(root pdflib.Outline) []doctree.Heading {
	ids := newAnchorIDs()
	var headings []doctree.Heading
	for _, section := range root.Child {
		headings = append(headings, doctree.Heading{
			Rank: doctree.RankSection,
			Text: section.Title,
			ID:   ids.generate(section.Title),
		})
		for _, sub := range section.Child {
			headings = append(headings, doctree.Heading{
				Rank: doctree.RankSubsection,
				Text: sub.Title,
				ID:   ids.generate(sub.Title),
			})
		}
	}
	return headings
}
