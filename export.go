package mdark

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alnah/go-mdark/internal/assets"
	"github.com/alnah/go-mdark/internal/dom"
	"github.com/alnah/go-mdark/internal/pipeline"
)

// Surface is the live rendered view an export reads from.
type Surface struct {
	Tree  *RenderTree
	Width int        // Current rendered width in CSS pixels
	Font  FontOption // Zero value uses DefaultFont
}

// Artifact describes a saved export.
type Artifact struct {
	ID           string
	Path         string
	Size         int // Document bytes
	RasterWidth  int
	RasterHeight int
	Placement    Placement
	// UsageCount is the counter after this export. It is 0 and CounterErr is
	// set when the counter could not be updated; the export still succeeded.
	UsageCount int
	CounterErr error
}

// ExportOption configures an Exporter.
type ExportOption func(*Exporter)

// WithStage replaces the headless Chrome stage.
func WithStage(s Stage) ExportOption {
	return func(e *Exporter) {
		e.stage = s
	}
}

// WithAssembler replaces the PDF assembler.
func WithAssembler(a Assembler) ExportOption {
	return func(e *Exporter) {
		e.assembler = a
	}
}

// WithSaver replaces the directory saver.
func WithSaver(s Saver) ExportOption {
	return func(e *Exporter) {
		e.saver = s
	}
}

// WithOutputDir saves exports into dir.
func WithOutputDir(dir string) ExportOption {
	return func(e *Exporter) {
		e.saver = DirSaver{Dir: dir}
	}
}

// WithCounter counts successful exports.
func WithCounter(c *UsageCounter) ExportOption {
	return func(e *Exporter) {
		e.counter = c
	}
}

// WithLogger sets the exporter logger.
func WithLogger(l *zap.Logger) ExportOption {
	return func(e *Exporter) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithTimeout bounds each browser wait. Zero, the default, waits indefinitely.
// Panics if d < 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) ExportOption {
	if d < 0 {
		panic("mdark: WithTimeout duration must not be negative")
	}
	return func(e *Exporter) {
		e.timeout = d
	}
}

// WithAssetLoader sets where the stage page and stylesheet come from.
func WithAssetLoader(l AssetLoader) ExportOption {
	return func(e *Exporter) {
		if l != nil {
			e.loader = l
		}
	}
}

// Exporter turns a Surface into a saved single-page PDF.
// Create with NewExporter, call Export, and Close when done.
type Exporter struct {
	stage     Stage
	assembler Assembler
	saver     Saver
	counter   *UsageCounter
	loader    AssetLoader
	logger    *zap.Logger
	timeout   time.Duration

	inFlight atomic.Bool
}

// NewExporter creates an Exporter. The default stage launches headless
// Chrome on the first export, not here.
func NewExporter(opts ...ExportOption) *Exporter {
	e := &Exporter{
		assembler: &PDFAssembler{Title: "Markdown Document"},
		saver:     DirSaver{},
		loader:    assets.NewBuiltin(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.stage == nil {
		e.stage = newRodStage(e.loader, e.timeout, e.logger)
	}
	return e
}

// Busy reports whether an export is running.
func (e *Exporter) Busy() bool {
	return e.inFlight.Load()
}

// Export clones the surface tree, applies overrides to the clone, rasterizes
// it at 2x, fits it on one A4 page and saves the result. The surface tree is
// never modified.
//
// Only one export runs at a time: a concurrent call returns ErrExportInFlight
// without doing anything. On failure nothing is saved and the counter is not
// touched. Counter failures after a successful save are reported in
// Artifact.CounterErr, not as an error.
func (e *Exporter) Export(ctx context.Context, surface *Surface, overrides StyleOverrides) (art *Artifact, err error) {
	if !e.inFlight.CompareAndSwap(false, true) {
		return nil, ErrExportInFlight
	}
	defer e.inFlight.Store(false)

	id := uuid.NewString()
	log := e.logger.With(zap.String("export_id", id))
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
			art = nil
		}
		if err != nil {
			log.Error("export failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		}
	}()

	if err := validateSurface(surface); err != nil {
		return nil, err
	}
	log.Debug("export started",
		zap.String("theme", overrides.Name()),
		zap.Int("width", surface.Width))

	req, err := e.prepare(surface, overrides)
	if err != nil {
		return nil, err
	}

	raster, err := e.capture(ctx, req, log)
	if err != nil {
		return nil, err
	}

	doc, err := e.assembler.Assemble(raster)
	if err != nil {
		return nil, wrapStage(ErrAssemble, err)
	}

	path, err := e.saver.Save(doc)
	if err != nil {
		return nil, wrapStage(ErrSave, err)
	}

	art = &Artifact{
		ID:           id,
		Path:         path,
		Size:         len(doc),
		RasterWidth:  raster.Width,
		RasterHeight: raster.Height,
		Placement:    FitToPage(PageWidthMM, PageHeightMM, raster.Width, raster.Height),
	}

	if e.counter != nil {
		n, cerr := e.counter.Increment()
		if cerr != nil {
			log.Warn("usage counter not updated", zap.Error(cerr))
			art.CounterErr = cerr
		}
		art.UsageCount = n
	}

	log.Debug("export finished",
		zap.String("path", path),
		zap.Int("bytes", len(doc)),
		zap.Int("usage_count", art.UsageCount),
		zap.Duration("elapsed", time.Since(start)))
	return art, nil
}

// Close releases the stage.
func (e *Exporter) Close() error {
	return e.stage.Close()
}

// StandaloneHTML returns the export view of surface as a self-contained
// page: the restyled clone inlined in the same stage page the rasterizer
// loads. Nothing is launched or saved.
func (e *Exporter) StandaloneHTML(surface *Surface, overrides StyleOverrides) (string, error) {
	if err := validateSurface(surface); err != nil {
		return "", err
	}
	req, err := e.prepare(surface, overrides)
	if err != nil {
		return "", err
	}
	return stageDocument(e.loader, req, req.HTML)
}

func validateSurface(s *Surface) error {
	if s == nil || s.Tree.Root() == nil {
		return ErrNoSurface
	}
	if s.Width <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWidth, s.Width)
	}
	return nil
}

// prepare clones and restyles the surface tree and gathers what the stage
// needs to lay it out.
func (e *Exporter) prepare(s *Surface, o StyleOverrides) (StageRequest, error) {
	clone := dom.Clone(s.Tree.Root())
	pipeline.ApplyOverrides(clone, o.colorSet())

	markup, err := dom.Render(clone)
	if err != nil {
		return StageRequest{}, fmt.Errorf("serializing export tree: %w", err)
	}

	tokenCSS, err := pipeline.HighlightCSS(o.CodeStyle())
	if err != nil {
		return StageRequest{}, err
	}

	font := s.Font
	if font.Family == "" {
		font = DefaultFont
	}

	return StageRequest{
		HTML:         markup,
		Width:        s.Width,
		FontFamily:   font.Family,
		Background:   o.Background,
		HighlightCSS: tokenCSS,
	}, nil
}

// capture attaches, rasterizes and detaches. Detach always runs after
// Rasterize returns and before capture does.
func (e *Exporter) capture(ctx context.Context, req StageRequest, log *zap.Logger) (raster *Raster, err error) {
	attachStart := time.Now()
	mount, err := e.stage.Attach(ctx, req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if derr := mount.Detach(); derr != nil {
			log.Warn("detaching export tree", zap.Error(derr))
		}
	}()
	log.Debug("tree attached", zap.Duration("elapsed", time.Since(attachStart)))

	rasterStart := time.Now()
	raster, err = mount.Rasterize(ctx, RasterScale)
	if err != nil {
		return nil, wrapStage(ErrRasterize, err)
	}
	if raster == nil {
		return nil, fmt.Errorf("%w: empty capture", ErrRasterize)
	}
	log.Debug("tree rasterized",
		zap.Int("raster_width", raster.Width),
		zap.Int("raster_height", raster.Height),
		zap.Duration("elapsed", time.Since(rasterStart)))
	return raster, nil
}

// wrapStage tags err with sentinel unless it already carries it or is a
// context error.
func wrapStage(sentinel, err error) error {
	if errors.Is(err, sentinel) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}
