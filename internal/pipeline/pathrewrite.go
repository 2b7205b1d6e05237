package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-mdark/internal/dom"
)

// ResolveLocalImages points relative img[src] values at file:// URLs under
// sourceDir so the headless browser finds images stored next to the
// markdown file. URLs, anchors, absolute paths and paths that climb out of
// sourceDir keep their original value. An empty sourceDir is a no-op.
func ResolveLocalImages(root *html.Node, sourceDir string) error {
	if root == nil || sourceDir == "" {
		return nil
	}
	dir, err := filepath.Abs(sourceDir)
	if err != nil {
		return err
	}

	dom.Walk(root, func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.Data != "img" {
			return true
		}
		if src, ok := dom.Attr(n, "src"); ok {
			if file, ok := localImage(src, dir); ok {
				dom.SetAttr(n, "src", fileURL(file))
			}
		}
		return true
	})
	return nil
}

// localImage returns the file src names inside dir. Goldmark percent-encodes
// destinations, so the path is decoded before it is joined.
func localImage(src, dir string) (string, bool) {
	if src == "" || strings.HasPrefix(src, "#") || strings.HasPrefix(src, "//") {
		return "", false
	}
	u, err := url.Parse(src)
	if err != nil || u.Scheme != "" || u.Path == "" {
		return "", false
	}
	rel := filepath.FromSlash(u.Path)
	if filepath.IsAbs(rel) {
		return "", false
	}

	file := filepath.Join(dir, rel)
	if !within(file, dir) {
		return "", false
	}
	return file, true
}

// within reports whether file is dir or lies below it.
func within(file, dir string) bool {
	rel, err := filepath.Rel(dir, file)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// fileURL turns an absolute path into a file:// URL. Windows drive paths
// gain the leading slash file URLs require.
func fileURL(abs string) string {
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}
