package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. Word headings carry no HTML-style id,
// so anchors are generated from the heading text.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	// go-docx needs a ReadSeeker+size, so write to temp file.
	tmp, err := os.CreateTemp("", "docoutline-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	tree := &doctree.DocTree{
		Title: trimExt(filename, ".docx"),
	}
	ids := newAnchorIDs()

	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok || para.Properties == nil || para.Properties.Style == nil {
			continue
		}

		style := para.Properties.Style.Val
		text := docxParagraphText(para)
		if isDocxTitleStyle(style) && text != "" {
			tree.Title = text
			continue
		}

		rank := docxHeadingRank(style)
		if rank == doctree.RankNone {
			continue
		}
		tree.Headings = append(tree.Headings, doctree.Heading{
			Rank: rank,
			Text: text,
			ID:   ids.generate(text),
		})
	}

	return tree, nil
}

func docxHeadingRank(style string) doctree.Rank {
	switch {
	case strings.EqualFold(style, "Heading2") || strings.EqualFold(style, "heading 2"):
		return doctree.RankSection
	case strings.EqualFold(style, "Heading3") || strings.EqualFold(style, "heading 3"):
		return doctree.RankSubsection
	}
	return doctree.RankNone
}

func isDocxTitleStyle(style string) bool {
	return strings.EqualFold(style, "Title")
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return buf.String()
}
