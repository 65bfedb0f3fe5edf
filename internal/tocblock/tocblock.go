// Package tocblock keeps a generated outline in sync with the marked block
// of a Markdown file:
//
//	<!-- toc -->
//	* [Intro](#intro)
//	<!-- tocstop -->
package tocblock

import (
	"errors"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	StartMarker = "<!-- toc -->"
	EndMarker   = "<!-- tocstop -->"
)

// ErrNoMarkers means the document has no well-formed marked block.
var ErrNoMarkers = errors.New("toc markers not found")

func locate(md string) (bodyStart, bodyEnd int, ok bool) {
	start := strings.Index(md, StartMarker)
	if start < 0 {
		return 0, 0, false
	}
	bodyStart = start + len(StartMarker)
	end := strings.Index(md[bodyStart:], EndMarker)
	if end < 0 {
		return 0, 0, false
	}
	return bodyStart, bodyStart + end, true
}

// Extract returns the current body of the marked block with line endings
// normalised to "\n".
func Extract(md string) (string, bool) {
	from, to, ok := locate(md)
	if !ok {
		return "", false
	}
	body := strings.ReplaceAll(md[from:to], "\r\n", "\n")
	return strings.TrimPrefix(body, "\n"), true
}

// Replace swaps the body of the marked block for outline. A document that
// uses CRLF line endings gets the outline written with CRLF too.
func Replace(md, outline string) (string, error) {
	from, to, ok := locate(md)
	if !ok {
		return "", ErrNoMarkers
	}
	eol := lineEnding(md)
	outline = strings.ReplaceAll(outline, "\r\n", "\n")
	if eol != "\n" {
		outline = strings.ReplaceAll(outline, "\n", eol)
	}

	var b strings.Builder
	b.Grow(len(md) + len(outline))
	b.WriteString(md[:from])
	b.WriteString(eol)
	b.WriteString(outline)
	b.WriteString(md[to:])
	return b.String(), nil
}

// lineEnding reports the terminator of the document's first line.
func lineEnding(md string) string {
	i := strings.IndexByte(md, '\n')
	if i > 0 && md[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

// Diff renders a line diff from current to generated with "-", "+" and " "
// prefixes. It returns "" when both are identical.
func Diff(current, generated string) string {
	if current == generated {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(current, generated)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	var out strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix)
			out.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				out.WriteString("\n")
			}
		}
	}
	return out.String()
}
