package mdark

import "errors"

// Sentinel errors for library operations.
var (
	ErrNoSurface      = errors.New("no render surface to export")
	ErrExportInFlight = errors.New("an export is already in progress")
	ErrNoExporter     = errors.New("editor has no exporter")
	ErrRasterize      = errors.New("rasterization failed")
	ErrAssemble       = errors.New("document assembly failed")
	ErrSave           = errors.New("saving document failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrUnknownFont    = errors.New("unknown font")
	ErrInvalidWidth   = errors.New("invalid surface width")
	ErrCounter        = errors.New("usage counter unavailable")
	ErrInvalidAsset   = errors.New("invalid asset path")
)

// ExportFailedMessage is the only export error text shown to users.
const ExportFailedMessage = "Failed to generate PDF. Please try again."
