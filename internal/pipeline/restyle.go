package pipeline

import (
	"golang.org/x/net/html"

	"github.com/alnah/go-mdark/internal/dom"
)

// ColorSet is the concrete colour profile forced onto an export tree.
type ColorSet struct {
	Background     string
	Foreground     string
	Border         string
	CodeBackground string
	CodeForeground string
}

// Override property names, in the order they are written to style attributes.
const (
	PropColor           = "color"
	PropBackgroundColor = "background-color"
	PropBorderColor     = "border-color"
)

var overrideKeys = []string{PropColor, PropBackgroundColor, PropBorderColor}

// borderedTags always receive the border override, whether or not their
// inline style declares a border: table parts and the blockquote left rule
// are drawn by the stylesheet.
var borderedTags = map[string]bool{
	"table":      true,
	"thead":      true,
	"tbody":      true,
	"tr":         true,
	"th":         true,
	"td":         true,
	"blockquote": true,
	"hr":         true,
}

// ApplyOverrides walks every element under root and forces the colours in
// cs onto its inline style. Callers must pass a clone: the tree is mutated.
//
//   - pre and code take the code background/foreground pair
//   - tokens inside a highlighted block keep their token colour and get a
//     transparent background so the block background shows through
//   - other elements inside a pre inherit the code foreground
//   - everything else takes the generic foreground/background pair
//   - bordered elements additionally take the border colour
func ApplyOverrides(root *html.Node, cs ColorSet) {
	dom.Walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			dom.SetStyle(n, overridesFor(n, cs), overrideKeys...)
		}
		return true
	})
}

func overridesFor(n *html.Node, cs ColorSet) map[string]string {
	props := make(map[string]string, len(overrideKeys))

	switch {
	case n.Data == "pre" || n.Data == "code":
		props[PropColor] = cs.CodeForeground
		props[PropBackgroundColor] = cs.CodeBackground
	case inHighlightedBlock(n):
		props[PropBackgroundColor] = "transparent"
	case inPre(n):
		props[PropColor] = cs.CodeForeground
		props[PropBackgroundColor] = "transparent"
	default:
		props[PropColor] = cs.Foreground
		props[PropBackgroundColor] = cs.Background
	}

	if borderedTags[n.Data] || dom.HasBorder(n) {
		props[PropBorderColor] = cs.Border
	}
	return props
}

func inPre(n *html.Node) bool {
	return dom.Ancestor(n, func(p *html.Node) bool { return p.Data == "pre" }) != nil
}

func inHighlightedBlock(n *html.Node) bool {
	if n.Data != "span" {
		return false
	}
	return dom.Ancestor(n, isHighlightedPre) != nil
}

// isHighlightedPre matches the wrapper chroma emits for tagged fences.
func isHighlightedPre(n *html.Node) bool {
	return n.Data == "pre" && dom.HasClass(n, "chroma")
}

// IsHighlighted reports whether n is a code block produced by the highlighter.
func IsHighlighted(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && isHighlightedPre(n)
}
