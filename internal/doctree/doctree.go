package doctree

import "strings"

// Rank is the heading tier an element belongs to.
type Rank int

const (
	RankNone       Rank = 0
	RankSection    Rank = 2 // h2
	RankSubsection Rank = 3 // h3
)

// RankFromTag maps an element tag name to its rank. Only h2 and h3 are recognized.
func RankFromTag(tag string) Rank {
	switch strings.ToLower(tag) {
	case "h2":
		return RankSection
	case "h3":
		return RankSubsection
	}
	return RankNone
}

// Heading is a section title element exposed by a host document.
type Heading struct {
	Rank  Rank   // Tier discriminator
	Text  string // Rendered text, verbatim
	ID    string // Anchor identifier (may be empty)
	Class string // Style classification, only used for exclusion
}

// Document is anything that can be queried for its tier-2 and tier-3
// headings in document order.
type Document interface {
	HeadingElements() []Heading
}

// DocTree is the root of a parsed document.
type DocTree struct {
	Title    string    // Document title (from metadata or filename)
	Headings []Heading // h2/h3 headings in document order
}

func (t *DocTree) HeadingElements() []Heading {
	if t == nil {
		return nil
	}
	return t.Headings
}

// Headings is a pre-materialized heading sequence.
type Headings []Heading

func (h Headings) HeadingElements() []Heading { return h }
