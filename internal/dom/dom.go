// Package dom holds the tree operations the preview and the exporter share:
// deep cloning, walking, serialization and inline-style editing on
// golang.org/x/net/html nodes.
package dom

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Clone returns a deep copy of n and its descendants. The copy is detached:
// its Parent and sibling links are nil, so mutating it can never reach the
// original tree.
func Clone(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}

	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		c.Attr = make([]html.Attribute, len(n.Attr))
		copy(c.Attr, n.Attr)
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(Clone(child))
	}
	return c
}

// Walk calls fn for n and every descendant in document order.
// Returning false from fn skips that node's children.
func Walk(n *html.Node, fn func(*html.Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		Walk(child, fn)
	}
}

// Elements returns every element node under n (n included) in document order.
func Elements(n *html.Node) []*html.Node {
	var out []*html.Node
	Walk(n, func(node *html.Node) bool {
		if node.Type == html.ElementNode {
			out = append(out, node)
		}
		return true
	})
	return out
}

// Find returns the first element under n whose tag is tag, or nil.
func Find(n *html.Node, tag string) *html.Node {
	var found *html.Node
	Walk(n, func(node *html.Node) bool {
		if found != nil {
			return false
		}
		if node.Type == html.ElementNode && node.Data == tag {
			found = node
			return false
		}
		return true
	})
	return found
}

// TextContent concatenates every text node under n.
func TextContent(n *html.Node) string {
	var b strings.Builder
	Walk(n, func(node *html.Node) bool {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		return true
	})
	return b.String()
}

// Render serializes n (including n itself) to HTML.
func Render(n *html.Node) (string, error) {
	if n == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", fmt.Errorf("rendering node: %w", err)
	}
	return buf.String(), nil
}

// RenderChildren serializes the children of n without n's own tag.
func RenderChildren(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if err := html.Render(&buf, child); err != nil {
			return "", fmt.Errorf("rendering node: %w", err)
		}
	}
	return buf.String(), nil
}

// Attr returns the value of attribute key on n.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets attribute key on n, replacing any existing value.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// HasClass reports whether n's class attribute lists class.
func HasClass(n *html.Node, class string) bool {
	v, ok := Attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// Ancestor returns the nearest ancestor of n matching match, or nil.
func Ancestor(n *html.Node, match func(*html.Node) bool) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && match(p) {
			return p
		}
	}
	return nil
}
