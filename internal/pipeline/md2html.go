package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// ErrHTMLConversion indicates goldmark rejected the source.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// HTMLConverter turns markdown into an HTML fragment.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// GoldmarkConverter renders the GFM dialect. Fences with a language tag are
// highlighted with chroma classes; the colours come from the theme
// stylesheet, so the same fragment serves light and dark documents.
type GoldmarkConverter struct {
	md   goldmark.Markdown
	bufs sync.Pool
}

// NewGoldmarkConverter returns a converter safe for concurrent use.
// Raw HTML in the source is escaped.
func NewGoldmarkConverter() *GoldmarkConverter {
	c := &GoldmarkConverter{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithGuessLanguage(false),
					highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
				),
			),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}
	c.bufs.New = func() any { return new(bytes.Buffer) }
	return c
}

// ToHTML converts content. Goldmark has no cancellation hook, so the
// conversion runs aside and ctx only bounds how long the caller waits.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type outcome struct {
		html string
		err  error
	}
	ch := make(chan outcome, 1)

	go func() {
		buf := c.bufs.Get().(*bytes.Buffer)
		buf.Reset()
		defer c.bufs.Put(buf)

		if err := c.md.Convert([]byte(content), buf); err != nil {
			ch <- outcome{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		ch <- outcome{html: buf.String()}
	}()

	select {
	case o := <-ch:
		return o.html, o.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
