package pipeline

import (
	"context"
	"strings"
)

// MarkdownPreprocessor prepares source text for conversion.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CommonMarkPreprocessor only normalizes encoding artefacts. It never adds
// or removes markdown syntax.
type CommonMarkPreprocessor struct{}

// newlines folds \r\n first so a Windows line ending yields one \n.
var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// PreprocessMarkdown drops a leading byte order mark and folds \r\n and a
// lone \r into \n. A cancelled ctx returns content untouched.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}
	return newlines.Replace(strings.TrimPrefix(content, "\uFEFF"))
}
