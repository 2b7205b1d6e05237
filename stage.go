package mdark

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"image"
	_ "image/png" // Raster dimensions come from image.DecodeConfig

	"github.com/alnah/go-mdark/internal/assets"
)

// RasterScale is the supersampling factor used for captures.
const RasterScale = 2.0

// StageRequest describes a tree to host off-screen.
type StageRequest struct {
	HTML         string // Serialized, already restyled clone
	Width        int    // CSS pixels, matches the live surface
	FontFamily   string
	Background   string // Hex colour filling the capture
	HighlightCSS string // Token stylesheet for highlighted code
}

// Raster is a PNG capture and its pixel dimensions.
type Raster struct {
	PNG    []byte
	Width  int
	Height int
}

// Stage hosts styled trees where a layout engine can measure and draw them.
type Stage interface {
	// Attach lays out req off-screen and returns a handle to it.
	Attach(ctx context.Context, req StageRequest) (Mount, error)
	Close() error
}

// Mount is one tree attached to a Stage.
type Mount interface {
	// Rasterize draws the attached tree at scale times its CSS size.
	Rasterize(ctx context.Context, scale float64) (*Raster, error)
	// Detach removes the tree and frees everything Attach allocated.
	// It is safe to call more than once.
	Detach() error
}

// NewRaster reads the dimensions of a PNG capture.
func NewRaster(png []byte) (*Raster, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(png))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding capture: %v", ErrRasterize, err)
	}
	if format != "png" {
		return nil, fmt.Errorf("%w: capture is %s, want png", ErrRasterize, format)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: empty capture %dx%d", ErrRasterize, cfg.Width, cfg.Height)
	}
	return &Raster{PNG: png, Width: cfg.Width, Height: cfg.Height}, nil
}

// stageDocument renders the stage page for req. A non-empty body is placed
// in the stage host directly; otherwise the host is left empty.
func stageDocument(loader assets.AssetLoader, req StageRequest, body string) (string, error) {
	stylesheet, err := loader.LoadStyle(assets.PreviewStyleName)
	if err != nil {
		return "", fmt.Errorf("loading preview stylesheet: %w", err)
	}
	page, err := assets.RenderStage(loader, assets.StagePage{
		Title:        "mdark export",
		Width:        req.Width,
		Background:   template.CSS(req.Background),   // #nosec G203 -- fixed profile colour
		FontFamily:   template.CSS(req.FontFamily),   // #nosec G203 -- from the fixed font list
		Stylesheet:   template.CSS(stylesheet),       // #nosec G203 -- embedded or user-provided asset
		HighlightCSS: template.CSS(req.HighlightCSS), // #nosec G203 -- generated by chroma
		Body:         template.HTML(body),            // #nosec G203 -- serialized from a parsed tree
	})
	if err != nil {
		return "", fmt.Errorf("rendering stage page: %w", err)
	}
	return page, nil
}
