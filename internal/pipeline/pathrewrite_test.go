package pipeline

// Notes:
// - ResolveLocalImages is tested on trees parsed from goldmark-like output.
// - localImage and within are tested directly since they carry the
//   traversal checks.

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/alnah/go-mdark/internal/dom"
)

func parseFragmentRoot(t *testing.T, src string) *html.Node {
	t.Helper()

	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("html.Parse: %v", err)
	}
	return dom.Find(doc, "body")
}

// ---------------------------------------------------------------------------
// TestResolveLocalImages - Image src rewriting
// ---------------------------------------------------------------------------

func TestResolveLocalImages(t *testing.T) {
	t.Parallel()

	sourceDir := t.TempDir()
	absDir, _ := filepath.Abs(sourceDir)

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "relative image",
			src:  "images/logo.png",
			want: fileURL(filepath.Join(absDir, "images", "logo.png")),
		},
		{
			name: "remote image unchanged",
			src:  "https://example.com/logo.png",
			want: "https://example.com/logo.png",
		},
		{
			name: "data URI unchanged",
			src:  "data:image/png;base64,AAAA",
			want: "data:image/png;base64,AAAA",
		},
		{
			name: "percent-encoded name",
			src:  "my%20logo.png",
			want: fileURL(filepath.Join(absDir, "my logo.png")),
		},
		{
			name: "query dropped",
			src:  "logo.png?v=2",
			want: fileURL(filepath.Join(absDir, "logo.png")),
		},
		{
			name: "anchor unchanged",
			src:  "#top",
			want: "#top",
		},
		{
			name: "traversal left as is",
			src:  "../../etc/passwd",
			want: "../../etc/passwd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := parseFragmentRoot(t, `<p><img src="`+tt.src+`" alt="x"></p>`)
			if err := ResolveLocalImages(root, sourceDir); err != nil {
				t.Fatalf("ResolveLocalImages() unexpected error: %v", err)
			}

			got, _ := dom.Attr(dom.Find(root, "img"), "src")
			if got != tt.want {
				t.Errorf("src = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveLocalImages_NoSourceDir(t *testing.T) {
	t.Parallel()

	root := parseFragmentRoot(t, `<img src="logo.png">`)
	if err := ResolveLocalImages(root, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := dom.Attr(dom.Find(root, "img"), "src"); got != "logo.png" {
		t.Errorf("src = %q, want unchanged", got)
	}
}

func TestResolveLocalImages_LinksUntouched(t *testing.T) {
	t.Parallel()

	root := parseFragmentRoot(t, `<a href="notes.md">notes</a>`)
	if err := ResolveLocalImages(root, t.TempDir()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := dom.Attr(dom.Find(root, "a"), "href"); got != "notes.md" {
		t.Errorf("href = %q, want unchanged", got)
	}
}

// ---------------------------------------------------------------------------
// TestLocalImage - Classification of src values
// ---------------------------------------------------------------------------

func TestLocalImage(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(string(filepath.Separator)+"docs", "notes")
	if runtime.GOOS == "windows" {
		dir = `C:\docs\notes`
	}

	tests := []struct {
		name string
		src  string
		want string // empty means not local
	}{
		{"plain file", "a.png", filepath.Join(dir, "a.png")},
		{"dot slash", "./img/a.png", filepath.Join(dir, "img", "a.png")},
		{"inner dotdot stays inside", "img/../a.png", filepath.Join(dir, "a.png")},
		{"empty", "", ""},
		{"http", "http://x/a.png", ""},
		{"https", "https://x/a.png", ""},
		{"file url", "file:///tmp/a.png", ""},
		{"data uri", "data:image/png;base64,AA", ""},
		{"protocol relative", "//cdn/a.png", ""},
		{"anchor", "#a", ""},
		{"absolute", "/etc/a.png", ""},
		{"escape", "../a.png", ""},
		{"deep escape", "img/../../a.png", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := localImage(tt.src, dir)
			if ok != (tt.want != "") {
				t.Fatalf("localImage(%q) ok = %v, want %v", tt.src, ok, tt.want != "")
			}
			if ok && got != tt.want {
				t.Errorf("localImage(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWithin - Containment
// ---------------------------------------------------------------------------

func TestWithin(t *testing.T) {
	t.Parallel()

	base := filepath.Join(string(filepath.Separator)+"base", "dir")
	tests := []struct {
		file string
		want bool
	}{
		{base, true},
		{filepath.Join(base, "a.png"), true},
		{filepath.Join(base, "sub", "a.png"), true},
		{filepath.Join(base+"evil", "a.png"), false},
		{filepath.Dir(base), false},
		{filepath.Join(base, "..", "..", "a.png"), false},
	}
	for _, tt := range tests {
		if got := within(tt.file, base); got != tt.want {
			t.Errorf("within(%q, %q) = %v, want %v", tt.file, base, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestFileURL - URL generation
// ---------------------------------------------------------------------------

func TestFileURL(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		if got := fileURL(`C:\img\a.png`); got != "file:///C:/img/a.png" {
			t.Errorf("fileURL = %q", got)
		}
		return
	}
	tests := []struct {
		path string
		want string
	}{
		{"/img/a.png", "file:///img/a.png"},
		{"/my docs/a b.png", "file:///my%20docs/a%20b.png"},
	}
	for _, tt := range tests {
		if got := fileURL(tt.path); got != tt.want {
			t.Errorf("fileURL(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
