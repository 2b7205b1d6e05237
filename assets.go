package mdark

import (
	"fmt"

	"github.com/alnah/go-mdark/internal/assets"
)

// AssetLoader supplies the preview stylesheet ("preview") and the stage page
// template ("stage") by name.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}

var _ assets.AssetLoader = (AssetLoader)(nil)

// NewAssetLoader returns a loader that reads overrides from basePath and
// falls back to the built-in assets. An empty basePath uses built-ins only.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	overlay, err := assets.NewOverlay(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAsset, err)
	}
	return overlay, nil
}

// PreviewStylesheet returns the stylesheet used for previews and exports.
func PreviewStylesheet(loader AssetLoader) (string, error) {
	if loader == nil {
		return assets.LoadStyle(assets.PreviewStyleName)
	}
	return loader.LoadStyle(assets.PreviewStyleName)
}
