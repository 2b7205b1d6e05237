package pipeline

// Notes:
// - Assertions look for structural markers (tags, chroma classes) rather
//   than whole documents, since goldmark and chroma tweak whitespace between
//   releases.

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestGoldmarkConverter_ToHTML - Dialect coverage
// ---------------------------------------------------------------------------

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "headings levels",
			input:    "# One\n\n###### Six",
			contains: []string{"<h1", ">One</h1>", "<h6", ">Six</h6>"},
		},
		{
			name:     "emphasis strong strikethrough",
			input:    "*em* **strong** ~~gone~~",
			contains: []string{"<em>em</em>", "<strong>strong</strong>", "<del>gone</del>"},
		},
		{
			name:     "task list",
			input:    "- [x] done\n- [ ] todo",
			contains: []string{`type="checkbox"`, "checked", "todo"},
		},
		{
			name:     "nested lists",
			input:    "1. first\n   - inner\n2. second",
			contains: []string{"<ol>", "<ul>", "inner"},
		},
		{
			name:     "table",
			input:    "| a | b |\n|---|---|\n| 1 | 2 |",
			contains: []string{"<table>", "<th>a</th>", "<td>2</td>"},
		},
		{
			name:     "blockquote and rule",
			input:    "> quote\n\n---",
			contains: []string{"<blockquote>", "<hr"},
		},
		{
			name:     "autolink",
			input:    "see https://example.com now",
			contains: []string{`<a href="https://example.com">`},
		},
		{
			name:     "image and inline code",
			input:    "![alt](pic.png) and `x := 1`",
			contains: []string{`<img src="pic.png" alt="alt"`, "<code>x := 1</code>"},
		},
		{
			name:     "tagged fence is highlighted",
			input:    "```javascript\nfunction greet(name) { return name; }\n```",
			contains: []string{`class="chroma"`, "<span class="},
		},
		{
			name:     "untagged fence is plain",
			input:    "```\nfunction greet(name) { return name; }\n```",
			contains: []string{"<pre><code>function greet(name)"},
			excludes: []string{"chroma"},
		},
		{
			name:     "raw HTML omitted",
			input:    "<script>alert(1)</script>",
			excludes: []string{"<script>"},
		},
	}

	conv := NewGoldmarkConverter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := conv.ToHTML(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("ToHTML() unexpected error: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q\n%s", want, got)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("output should not contain %q\n%s", bad, got)
				}
			}
		})
	}
}

func TestGoldmarkConverter_ToHTML_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter().ToHTML(ctx, "# x")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestCommonMarkPreprocessor - Source normalization
// ---------------------------------------------------------------------------

func TestCommonMarkPreprocessor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "CRLF", input: "a\r\nb", want: "a\nb"},
		{name: "CR", input: "a\rb", want: "a\nb"},
		{name: "mixed", input: "a\r\n\rb\n", want: "a\n\nb\n"},
		{name: "BOM stripped", input: "\uFEFF# Title", want: "# Title"},
		{name: "blank lines in fences kept", input: "```\na\n\n\n\nb\n```", want: "```\na\n\n\n\nb\n```"},
	}

	p := &CommonMarkPreprocessor{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := p.PreprocessMarkdown(context.Background(), tt.input); got != tt.want {
				t.Errorf("PreprocessMarkdown(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestHighlightCSS - Token stylesheet
// ---------------------------------------------------------------------------

func TestHighlightCSS(t *testing.T) {
	t.Parallel()

	for _, name := range []string{LightCodeStyle, DarkCodeStyle} {
		css, err := HighlightCSS(name)
		if err != nil {
			t.Fatalf("HighlightCSS(%q) unexpected error: %v", name, err)
		}
		if !strings.Contains(css, ".chroma") {
			t.Errorf("HighlightCSS(%q) has no .chroma rules", name)
		}
	}
}
