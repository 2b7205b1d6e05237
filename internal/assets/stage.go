package assets

import (
	"bytes"
	"fmt"
	"html/template"
)

// StagePage is the data rendered into the stage template.
type StagePage struct {
	Title        string
	Width        int
	Background   template.CSS
	FontFamily   template.CSS
	Stylesheet   template.CSS
	HighlightCSS template.CSS
	Body         template.HTML // Empty when the tree is inserted later
}

// RenderStage loads the stage template through loader and executes it.
func RenderStage(loader AssetLoader, page StagePage) (string, error) {
	src, err := loader.LoadTemplate(StageTemplateName)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New(StageTemplateName).Parse(src)
	if err != nil {
		return "", fmt.Errorf("%w: parsing %s: %v", ErrAssetRead, StageTemplateName, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, page); err != nil {
		return "", fmt.Errorf("%w: executing %s: %v", ErrAssetRead, StageTemplateName, err)
	}
	return buf.String(), nil
}
