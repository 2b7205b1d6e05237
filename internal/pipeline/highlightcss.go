package pipeline

import (
	"bytes"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// Chroma styles used for token colours on each export background.
const (
	LightCodeStyle = "github"
	DarkCodeStyle  = "monokai"
)

// HighlightCSS returns the class-based token stylesheet for a chroma style.
// Unknown names fall back to chroma's default style.
func HighlightCSS(styleName string) (string, error) {
	formatter := chromahtml.New(chromahtml.WithClasses(true))

	var buf bytes.Buffer
	if err := formatter.WriteCSS(&buf, styles.Get(styleName)); err != nil {
		return "", fmt.Errorf("writing %s token stylesheet: %w", styleName, err)
	}
	return buf.String(), nil
}
