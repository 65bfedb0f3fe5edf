// Package outline renders a document's h2/h3 headings as a nested
// Markdown list of in-page links.
package outline

import (
	"strings"

	"github.com/dgallion1/docoutline/internal/doctree"
)

// FooterClass marks headings that belong to a page footer.
const FooterClass = "footer-heading"

const (
	sectionMarker    = "* "
	subsectionMarker = "  * "
)

// Entry is one rendered line of an outline.
type Entry struct {
	Depth  int    // 0 for sections, 1 for subsections, -1 for unranked headings
	Label  string // Heading text
	Anchor string // Heading identifier, without the leading '#'
}

// String renders the entry as a single outline line including the trailing newline.
func (e Entry) String() string {
	var b strings.Builder
	e.writeTo(&b)
	return b.String()
}

func (e Entry) writeTo(b *strings.Builder) {
	switch e.Depth {
	case 0:
		b.WriteString(sectionMarker)
	case 1:
		b.WriteString(subsectionMarker)
	}
	b.WriteString("[")
	b.WriteString(e.Label)
	b.WriteString("](#")
	b.WriteString(e.Anchor)
	b.WriteString(")\n")
}

// Builder turns documents into outline text. A Builder is immutable and
// safe for concurrent use.
type Builder struct {
	excludeClass string
}

// Option configures a Builder.
type Option func(*Builder)

// WithExcludeClass overrides the class that marks headings to skip.
// An empty class disables exclusion.
func WithExcludeClass(class string) Option {
	return func(b *Builder) {
		b.excludeClass = class
	}
}

// New creates a Builder that skips FooterClass headings unless told otherwise.
func New(opts ...Option) *Builder {
	b := &Builder{excludeClass: FooterClass}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ExcludeClass returns the class this builder skips.
func (b *Builder) ExcludeClass() string {
	return b.excludeClass
}

func (b *Builder) excluded(h doctree.Heading) bool {
	return b.excludeClass != "" && h.Class == b.excludeClass
}

// Entries returns one entry per non-excluded heading, in document order.
func (b *Builder) Entries(doc doctree.Document) []Entry {
	var entries []Entry
	for _, h := range doc.HeadingElements() {
		if b.excluded(h) {
			continue
		}
		entries = append(entries, Entry{
			Depth:  depth(h.Rank),
			Label:  h.Text,
			Anchor: h.ID,
		})
	}
	return entries
}

// Build renders the outline text for doc. The result is empty when doc has
// no eligible headings.
func (b *Builder) Build(doc doctree.Document) string {
	return Render(b.Entries(doc))
}

// Render concatenates the rendered form of every entry.
func Render(entries []Entry) string {
	var out strings.Builder
	for _, e := range entries {
		e.writeTo(&out)
	}
	return out.String()
}

var defaultBuilder = New()

// Build renders doc with the default builder.
func Build(doc doctree.Document) string {
	return defaultBuilder.Build(doc)
}

func depth(r doctree.Rank) int {
	switch r {
	case doctree.RankSection:
		return 0
	case doctree.RankSubsection:
		return 1
	}
	return -1
}
