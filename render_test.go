package mdark

// Notes:
// - Tests render real markdown through goldmark; assertions walk the tree
//   instead of comparing serialized HTML.

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/alnah/go-mdark/internal/dom"
)

func mustRender(t *testing.T, r *Renderer, src string) *RenderTree {
	t.Helper()

	tree, err := r.Render(context.Background(), src)
	if err != nil {
		t.Fatalf("Render(%q) unexpected error: %v", src, err)
	}
	return tree
}

func childElements(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// TestRenderer_Render - Scenarios
// ---------------------------------------------------------------------------

func TestRenderer_Render_HeadingAndBold(t *testing.T) {
	t.Parallel()

	tree := mustRender(t, NewRenderer(), "# Title\n\nHello **world**")
	root := tree.Root()

	if !dom.HasClass(root, PreviewClass) {
		t.Fatalf("root class = %v, want %s", root.Attr, PreviewClass)
	}

	kids := childElements(root)
	if len(kids) != 2 {
		t.Fatalf("root has %d element children, want 2", len(kids))
	}
	if kids[0].Data != "h1" || dom.TextContent(kids[0]) != "Title" {
		t.Errorf("first child = <%s>%q, want <h1>Title", kids[0].Data, dom.TextContent(kids[0]))
	}
	if kids[1].Data != "p" {
		t.Fatalf("second child = <%s>, want <p>", kids[1].Data)
	}
	if !strings.HasPrefix(dom.TextContent(kids[1]), "Hello") {
		t.Errorf("paragraph text = %q, want Hello prefix", dom.TextContent(kids[1]))
	}
	strong := dom.Find(kids[1], "strong")
	if strong == nil || dom.TextContent(strong) != "world" {
		t.Errorf("want <strong>world</strong> inside paragraph")
	}
}

func TestRenderer_Render_PlainTextIsOneParagraph(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"hello",
		"just some plain words 123",
		"Sentence with punctuation, commas and a period.",
		"ünïcödé text",
	}

	r := NewRenderer()
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			t.Parallel()

			kids := childElements(mustRender(t, r, in).Root())
			if len(kids) != 1 || kids[0].Data != "p" {
				t.Fatalf("Render(%q) children = %d, want a single <p>", in, len(kids))
			}
			if got := dom.TextContent(kids[0]); got != in {
				t.Errorf("paragraph text = %q, want %q", got, in)
			}
		})
	}
}

func TestRenderer_Render_CodeBlocks(t *testing.T) {
	t.Parallel()

	r := NewRenderer()

	tagged := mustRender(t, r, "```javascript\nconst a = 1;\n```").Root()
	pre := dom.Find(tagged, "pre")
	if pre == nil || !dom.HasClass(pre, "chroma") {
		t.Fatal("tagged fence should render a highlighted <pre class=chroma>")
	}
	if dom.Find(pre, "span") == nil {
		t.Error("highlighted block should contain token spans")
	}

	plain := mustRender(t, r, "```\nconst a = 1;\n```").Root()
	pre = dom.Find(plain, "pre")
	if pre == nil || dom.HasClass(pre, "chroma") {
		t.Fatal("untagged fence should render a plain <pre>")
	}
	if dom.Find(pre, "span") != nil {
		t.Error("plain block should not contain token spans")
	}
	if got := dom.TextContent(pre); !strings.Contains(got, "const a = 1;") {
		t.Errorf("plain block text = %q", got)
	}
}

func TestRenderer_Render_Malformed(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"**unclosed bold",
		"[broken link](",
		"| a |\n|--",
		"```go\nnever closed",
		"<div>raw",
		"\x00\x01",
		"",
	}

	r := NewRenderer()
	for _, in := range inputs {
		tree, err := r.Render(context.Background(), in)
		if err != nil {
			t.Errorf("Render(%q) unexpected error: %v", in, err)
			continue
		}
		if tree.Root() == nil {
			t.Errorf("Render(%q) returned an empty tree", in)
		}
	}

	tree := mustRender(t, r, "**unclosed bold")
	if !strings.Contains(tree.Text(), "**unclosed bold") {
		t.Errorf("unrecognized syntax should stay literal, got %q", tree.Text())
	}
}

func TestRenderer_Render_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewRenderer().Render(ctx, "# x"); err == nil {
		t.Error("Render() with canceled context should fail")
	}
}

func TestRenderer_WithBaseDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "pic.png"), pngBytes(t, 1, 1), 0o644); err != nil {
		t.Fatal(err)
	}

	tree := mustRender(t, NewRenderer(WithBaseDir(dir)), "![pic](pic.png) ![web](https://example.com/x.png)")

	var srcs []string
	for _, n := range dom.Elements(tree.Root()) {
		if n.Data == "img" {
			src, _ := dom.Attr(n, "src")
			srcs = append(srcs, src)
		}
	}
	if len(srcs) != 2 {
		t.Fatalf("found %d images, want 2", len(srcs))
	}
	if !strings.HasPrefix(srcs[0], "file://") {
		t.Errorf("local image src = %q, want file:// URL", srcs[0])
	}
	if srcs[1] != "https://example.com/x.png" {
		t.Errorf("remote image src = %q, want unchanged", srcs[1])
	}
}

func TestRenderTree_HTML(t *testing.T) {
	t.Parallel()

	out, err := mustRender(t, NewRenderer(), "hi").HTML()
	if err != nil {
		t.Fatal(err)
	}
	if out != `<div class="markdown-preview"><p>hi</p>`+"\n"+`</div>` {
		t.Errorf("HTML() = %q", out)
	}

	var nilTree *RenderTree
	if nilTree.Root() != nil {
		t.Error("nil tree should have a nil root")
	}
}
