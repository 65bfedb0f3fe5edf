package parser

import (
	"github.com/yuin/goldmark/ast"
	gmparser "github.com/yuin/goldmark/parser"
)

// anchorIDs hands out goldmark-style heading anchors ("hello-world",
// "hello-world-1", ...) for formats that have no element ids of their own.
type anchorIDs struct {
	ids gmparser.IDs
}

func newAnchorIDs() *anchorIDs {
	return &anchorIDs{ids: gmparser.NewContext().IDs()}
}

func (a *anchorIDs) generate(text string) string {
	return string(a.ids.Generate([]byte(text), ast.KindHeading))
}
