package dom

import (
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
)

// Style returns n's inline declarations keyed by lower-cased property name.
// An unparsable style attribute yields an empty map.
func Style(n *html.Node) map[string]string {
	out := make(map[string]string)
	for _, d := range declarations(n) {
		out[d.Property] = d.Value
	}
	return out
}

// SetStyle writes props into n's inline style. Existing declarations for the
// same properties are replaced in place; the rest are kept in their order and
// new properties are appended in the order given by keys.
func SetStyle(n *html.Node, props map[string]string, keys ...string) {
	decls := declarations(n)

	seen := make(map[string]bool, len(props))
	for _, d := range decls {
		if v, ok := props[d.Property]; ok {
			d.Value = v
			d.Important = false
			seen[d.Property] = true
		}
	}
	for _, k := range keys {
		v, ok := props[k]
		if !ok || seen[k] {
			continue
		}
		decls = append(decls, &css.Declaration{Property: k, Value: v})
		seen[k] = true
	}

	SetAttr(n, "style", formatDeclarations(decls))
}

// HasBorder reports whether n's inline style declares a border.
func HasBorder(n *html.Node) bool {
	for _, d := range declarations(n) {
		if strings.HasPrefix(d.Property, "border") && !strings.HasSuffix(d.Property, "radius") {
			return true
		}
	}
	return false
}

func declarations(n *html.Node) []*css.Declaration {
	raw, _ := Attr(n, "style")
	raw = strings.TrimRight(raw, "; \t\n")
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	// douceur drops the value of a final declaration without a ';'.
	decls, err := parser.ParseDeclarations(raw + ";")
	if err != nil {
		return nil
	}
	for _, d := range decls {
		d.Property = strings.ToLower(strings.TrimSpace(d.Property))
	}
	return decls
}

func formatDeclarations(decls []*css.Declaration) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		s := d.Property + ": " + d.Value
		if d.Important {
			s += " !important"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "; ")
}
