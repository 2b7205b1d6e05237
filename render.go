package mdark

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-mdark/internal/dom"
	"github.com/alnah/go-mdark/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
)

// PreviewClass is the class of every RenderTree root.
const PreviewClass = "markdown-preview"

// RenderTree is the parsed form of one markdown source. Its root is a
// detached <div class="markdown-preview"> element.
type RenderTree struct {
	root *html.Node
}

// Root returns the tree's root element. Callers must not mutate it; the
// exporter relies on the live tree staying unchanged.
func (t *RenderTree) Root() *html.Node {
	if t == nil {
		return nil
	}
	return t.root
}

// HTML serializes the tree, root element included.
func (t *RenderTree) HTML() (string, error) {
	return dom.Render(t.Root())
}

// Text returns the concatenated text content.
func (t *RenderTree) Text() string {
	return dom.TextContent(t.Root())
}

// RenderOption configures a Renderer.
type RenderOption func(*Renderer)

// WithBaseDir resolves relative image paths against dir.
func WithBaseDir(dir string) RenderOption {
	return func(r *Renderer) {
		r.baseDir = dir
	}
}

// WithRenderLogger sets the logger for swallowed render failures.
func WithRenderLogger(l *zap.Logger) RenderOption {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// Renderer turns markdown source into a RenderTree.
type Renderer struct {
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	baseDir       string
	logger        *zap.Logger
}

// NewRenderer creates a Renderer with the GFM dialect and highlighting.
func NewRenderer(opts ...RenderOption) *Renderer {
	r := &Renderer{
		preprocessor:  &pipeline.CommonMarkPreprocessor{},
		htmlConverter: pipeline.NewGoldmarkConverter(),
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render converts source into a RenderTree. Malformed markdown never fails:
// whatever the parser does not recognize is kept as literal text. The only
// errors returned come from ctx.
func (r *Renderer) Render(ctx context.Context, source string) (*RenderTree, error) {
	md := r.preprocessor.PreprocessMarkdown(ctx, source)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fragment, err := r.htmlConverter.ToHTML(ctx, md)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		r.logger.Warn("markdown conversion failed, rendering literal text", zap.Error(err))
		return literalTree(md), nil
	}

	root, err := parseFragment(fragment)
	if err != nil {
		r.logger.Warn("parsing rendered HTML failed, rendering literal text", zap.Error(err))
		return literalTree(md), nil
	}

	if r.baseDir != "" {
		if err := pipeline.ResolveLocalImages(root, r.baseDir); err != nil {
			r.logger.Warn("resolving local images failed", zap.String("base_dir", r.baseDir), zap.Error(err))
		}
	}

	return &RenderTree{root: root}, nil
}

func newPreviewRoot() *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Div,
		Data:     "div",
		Attr:     []html.Attribute{{Key: "class", Val: PreviewClass}},
	}
}

func parseFragment(fragment string) (*html.Node, error) {
	root := newPreviewRoot()
	parent := &html.Node{Type: html.ElementNode, DataAtom: atom.Div, Data: "div"}

	nodes, err := html.ParseFragment(strings.NewReader(fragment), parent)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, nil
}

// literalTree shows source verbatim as a single preformatted paragraph.
func literalTree(source string) *RenderTree {
	root := newPreviewRoot()
	p := &html.Node{Type: html.ElementNode, DataAtom: atom.P, Data: "p"}
	p.AppendChild(&html.Node{Type: html.TextNode, Data: source})
	root.AppendChild(p)
	return &RenderTree{root: root}
}
