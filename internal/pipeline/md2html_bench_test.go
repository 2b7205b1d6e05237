//go:build bench

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

// BenchmarkGoldmarkToHTML measures markdown conversion, the step that runs
// on every keystroke in the editor.
func BenchmarkGoldmarkToHTML(b *testing.B) {
	converter := NewGoldmarkConverter()
	ctx := context.Background()

	for _, sections := range []int{1, 10, 50, 200} {
		content := generateMixedMarkdown(sections)
		b.Run(fmt.Sprintf("sections_%d", sections), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := converter.ToHTML(ctx, content); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkApplyOverrides measures the colour walk on a rendered tree.
func BenchmarkApplyOverrides(b *testing.B) {
	out, err := NewGoldmarkConverter().ToHTML(context.Background(), generateMixedMarkdown(50))
	if err != nil {
		b.Fatal(err)
	}
	cs := ColorSet{"#000000", "#ffffff", "#999999", "#2d2d2d", "#ffffff"}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		doc, err := html.Parse(strings.NewReader(out))
		if err != nil {
			b.Fatal(err)
		}
		ApplyOverrides(doc, cs)
	}
}

func generateMixedMarkdown(sections int) string {
	var sb strings.Builder
	for i := 0; i < sections; i++ {
		fmt.Fprintf(&sb, "## Section %d\n\nSome **bold** and ~~struck~~ text.\n\n", i)
		sb.WriteString("- [x] done\n- [ ] todo\n\n")
		sb.WriteString("| a | b |\n|---|---|\n| 1 | 2 |\n\n")
		sb.WriteString("> quoted\n\n")
		sb.WriteString("```go\nfunc main() {}\n```\n\n")
	}
	return sb.String()
}
