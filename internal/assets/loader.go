package assets

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// Built-in asset names.
const (
	PreviewStyleName  = "preview" // stylesheet applied to rendered markdown
	StageTemplateName = "stage"   // page hosting a tree while it is rasterized
)

var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetName = errors.New("invalid asset name")
	ErrInvalidBasePath  = errors.New("invalid base path")
	ErrAssetRead        = errors.New("failed to read asset")
	ErrPathTraversal    = errors.New("path traversal detected")
)

// AssetLoader supplies stylesheets and page templates by bare name.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}

// kind maps a bare asset name to a slash-separated file under a root.
type kind struct {
	dir     string
	ext     string
	missing error
}

var (
	styleKind    = kind{dir: "styles", ext: ".css", missing: ErrStyleNotFound}
	templateKind = kind{dir: "templates", ext: ".html", missing: ErrTemplateNotFound}
)

func (k kind) file(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	return path.Join(k.dir, name+k.ext), nil
}

func (k kind) notFound(name string) error {
	return fmt.Errorf("%w: %q", k.missing, name)
}

// ValidateAssetName rejects empty names and names carrying separators or
// dots, so a name can never select another directory or extension.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, `/\.`) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrStyleNotFound) || errors.Is(err, ErrTemplateNotFound)
}
