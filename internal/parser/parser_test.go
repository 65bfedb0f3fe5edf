package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/dgallion1/docoutline/internal/doctree"
	ledpdf "github.com/ledongthuc/pdf"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		want     Parser
	}{
		{"a.html", &HTMLParser{}},
		{"a.HTM", &HTMLParser{}},
		{"a.xhtml", &HTMLParser{}},
		{"a.md", &MarkdownParser{}},
		{"a.markdown", &MarkdownParser{}},
		{"a.docx", &DOCXParser{}},
		{"a.pdf", &PDFParser{}},
		{"a.epub", &EPUBParser{}},
	}
	for _, tt := range tests {
		got, err := ForFile(tt.filename)
		if err != nil {
			t.Errorf("ForFile(%q): unexpected error: %v", tt.filename, err)
			continue
		}
		if gotT, wantT := typeName(got), typeName(tt.want); gotT != wantT {
			t.Errorf("ForFile(%q): expected %s, got %s", tt.filename, wantT, gotT)
		}
		if !IsSupportedExtension(tt.filename) {
			t.Errorf("IsSupportedExtension(%q) = false", tt.filename)
		}
	}
}

func typeName(p Parser) string {
	switch p.(type) {
	case *HTMLParser:
		return "html"
	case *MarkdownParser:
		return "markdown"
	case *DOCXParser:
		return "docx"
	case *PDFParser:
		return "pdf"
	case *EPUBParser:
		return "epub"
	}
	return "unknown"
}

func TestForFile_Unsupported(t *testing.T) {
	for _, name := range []string{"notes.txt", "data.csv", "noext"} {
		_, err := ForFile(name)
		if !errors.Is(err, ErrUnsupported) {
			t.Errorf("ForFile(%q): expected ErrUnsupported, got %v", name, err)
		}
		if IsSupportedExtension(name) {
			t.Errorf("IsSupportedExtension(%q) = true", name)
		}
	}
}

func TestParseFile(t *testing.T) {
	tree, err := ParseFile(strings.NewReader("## One\n"), "x.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Headings) != 1 || tree.Headings[0].ID != "one" {
		t.Errorf("unexpected headings: %+v", tree.Headings)
	}
}

func TestDocxHeadingRank(t *testing.T) {
	tests := []struct {
		style string
		want  doctree.Rank
	}{
		{"Heading2", doctree.RankSection},
		{"heading 2", doctree.RankSection},
		{"Heading3", doctree.RankSubsection},
		{"HEADING 3", doctree.RankSubsection},
		{"Heading1", doctree.RankNone},
		{"Heading4", doctree.RankNone},
		{"Normal", doctree.RankNone},
	}
	for _, tt := range tests {
		if got := docxHeadingRank(tt.style); got != tt.want {
			t.Errorf("docxHeadingRank(%q) = %d, want %d", tt.style, got, tt.want)
		}
	}
}

func TestOutlineHeadings(t *testing.T) {
	root := ledpdf.Outline{
		Child: []ledpdf.Outline{
			{
				Title: "Chapter One",
				Child: []ledpdf.Outline{
					{Title: "Background", Child: []ledpdf.Outline{{Title: "Too deep"}}},
					{Title: "Scope"},
				},
			},
			{Title: "Chapter Two"},
			{Title: "Chapter One"},
		},
	}

	got := outlineHeadings(root)
	want := []doctree.Heading{
		{Rank: doctree.RankSection, Text: "Chapter One", ID: "chapter-one"},
		{Rank: doctree.RankSubsection, Text: "Background", ID: "background"},
		{Rank: doctree.RankSubsection, Text: "Scope", ID: "scope"},
		{Rank: doctree.RankSection, Text: "Chapter Two", ID: "chapter-two"},
		{Rank: doctree.RankSection, Text: "Chapter One", ID: "chapter-one-1"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d headings, got %d: %+v", len(want), len(got), got)
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("heading[%d]: expected %+v, got %+v", i, w, got[i])
		}
	}
}

func TestAnchorIDs_Fallback(t *testing.T) {
	ids := newAnchorIDs()
	if got := ids.generate("!!!"); got != "heading" {
		t.Errorf("expected fallback id %q, got %q", "heading", got)
	}
	if got := ids.generate("Hello, World"); got != "hello-world" {
		t.Errorf("expected %q, got %q", "hello-world", got)
	}
}
