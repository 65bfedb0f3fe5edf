package parser

import (
	"io"

	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmparser "github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Heading IDs follow
// goldmark's auto-ID scheme unless set explicitly with `{#id}`; a class can
// be attached with `{.class}`.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(
		goldmark.WithParserOptions(
			gmparser.WithAutoHeadingID(),
			gmparser.WithAttribute(),
		),
	)
	doc := md.Parser().Parse(text.NewReader(src))

	tree := &doctree.DocTree{
		Title: trimExt(filename, ".md", ".markdown"),
	}

	titled := false
	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if heading.Level == 1 && !titled {
			tree.Title = string(heading.Text(src))
			titled = true
		}
		rank := markdownRank(heading.Level)
		if rank != doctree.RankNone {
			tree.Headings = append(tree.Headings, doctree.Heading{
				Rank:  rank,
				Text:  string(heading.Text(src)),
				ID:    attrString(heading, "id"),
				Class: attrString(heading, "class"),
			})
		}
		// Headings never contain other headings.
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, err
	}

	return tree, nil
}

func markdownRank(level int) doctree.Rank {
	switch level {
	case 2:
		return doctree.RankSection
	case 3:
		return doctree.RankSubsection
	}
	return doctree.RankNone
}

func attrString(n ast.Node, name string) string {
	v, ok := n.AttributeString(name)
	if !ok {
		return ""
	}
	switch v := v.(type) {
	case []byte:
		return string(v)
	case string:
		return v
	}
	return ""
}
