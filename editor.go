package mdark

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// DefaultSurfaceWidth is the capture width when none is configured.
const DefaultSurfaceWidth = 800

// State is the whole editor application state. Frontends render from it and
// never keep their own copies of these flags.
type State struct {
	Source      string `yaml:"source"`
	Font        string `yaml:"font"`
	DarkMode    bool   `yaml:"darkMode"`
	ExportDark  bool   `yaml:"exportDark"`
	HelpVisible bool   `yaml:"helpVisible"`
	Exporting   bool   `yaml:"exporting"`
	Error       string `yaml:"error,omitempty"`
	UsageCount  int    `yaml:"usageCount"`
	LastExport  string `yaml:"lastExport,omitempty"`
}

// EditorOption configures an Editor.
type EditorOption func(*Editor)

// WithRenderer replaces the default renderer.
func WithRenderer(r *Renderer) EditorOption {
	return func(ed *Editor) {
		if r != nil {
			ed.renderer = r
		}
	}
}

// WithExporter sets the exporter used by Export.
func WithExporter(x *Exporter) EditorOption {
	return func(ed *Editor) {
		ed.exporter = x
	}
}

// WithUsageCounter sets the counter read at startup.
func WithUsageCounter(c *UsageCounter) EditorOption {
	return func(ed *Editor) {
		ed.counter = c
	}
}

// WithSurfaceWidth sets the width the preview is laid out and captured at.
func WithSurfaceWidth(px int) EditorOption {
	return func(ed *Editor) {
		if px > 0 {
			ed.width = px
		}
	}
}

// WithInitialState seeds the editor. Exporting and Error are cleared.
func WithInitialState(s State) EditorOption {
	return func(ed *Editor) {
		s.Exporting = false
		s.Error = ""
		ed.state = s
	}
}

// WithEditorLogger sets the editor logger.
func WithEditorLogger(l *zap.Logger) EditorOption {
	return func(ed *Editor) {
		if l != nil {
			ed.logger = l
		}
	}
}

// Editor owns the application state and keeps the preview in sync with the
// source. Its methods are safe for concurrent use.
type Editor struct {
	mu       sync.Mutex
	state    State
	tree     *RenderTree
	width    int
	renderer *Renderer
	exporter *Exporter
	counter  *UsageCounter
	logger   *zap.Logger
}

// NewEditor creates an Editor holding the welcome document, renders it, and
// loads the usage count. Counter failures are logged and read as 0.
func NewEditor(ctx context.Context, opts ...EditorOption) *Editor {
	ed := &Editor{
		state:  State{Source: WelcomeMarkdown, Font: DefaultFont.Name},
		width:  DefaultSurfaceWidth,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(ed)
	}
	if ed.renderer == nil {
		ed.renderer = NewRenderer(WithRenderLogger(ed.logger))
	}
	if _, err := LookupFont(ed.state.Font); err != nil {
		ed.logger.Warn("unknown font in initial state, using default", zap.String("font", ed.state.Font))
		ed.state.Font = DefaultFont.Name
	}

	if ed.counter != nil {
		n, err := ed.counter.Load()
		if err != nil {
			ed.logger.Warn("usage counter unavailable", zap.Error(err))
		}
		ed.state.UsageCount = n
	}

	ed.rerender(ctx)
	return ed
}

// State returns a copy of the current state.
func (ed *Editor) State() State {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.state
}

// SetSource replaces the document and re-renders the preview. Render
// failures are never surfaced: on cancellation the previous preview stays.
func (ed *Editor) SetSource(ctx context.Context, source string) {
	ed.mu.Lock()
	ed.state.Source = source
	ed.mu.Unlock()
	ed.rerender(ctx)
}

func (ed *Editor) rerender(ctx context.Context) {
	ed.mu.Lock()
	source := ed.state.Source
	ed.mu.Unlock()

	tree, err := ed.renderer.Render(ctx, source)
	if err != nil {
		ed.logger.Debug("render skipped", zap.Error(err))
		return
	}

	ed.mu.Lock()
	// A newer SetSource may have landed while rendering.
	if ed.state.Source == source {
		ed.tree = tree
	}
	ed.mu.Unlock()
}

// Preview returns the current render tree.
func (ed *Editor) Preview() *RenderTree {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.tree
}

// Surface returns the live view the exporter reads from, or nil before the
// first render.
func (ed *Editor) Surface() *Surface {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.surfaceLocked()
}

func (ed *Editor) surfaceLocked() *Surface {
	if ed.tree == nil {
		return nil
	}
	font, err := LookupFont(ed.state.Font)
	if err != nil {
		font = DefaultFont
	}
	return &Surface{Tree: ed.tree, Width: ed.width, Font: font}
}

// Font returns the selected font option.
func (ed *Editor) Font() FontOption {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	f, err := LookupFont(ed.state.Font)
	if err != nil {
		return DefaultFont
	}
	return f
}

// SelectFont picks a font by display name.
func (ed *Editor) SelectFont(name string) error {
	f, err := LookupFont(name)
	if err != nil {
		return err
	}
	ed.mu.Lock()
	ed.state.Font = f.Name
	ed.mu.Unlock()
	return nil
}

// CycleFont selects the next font in the list.
func (ed *Editor) CycleFont() FontOption {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	cur, err := LookupFont(ed.state.Font)
	if err != nil {
		cur = DefaultFont
	}
	next := NextFont(cur)
	ed.state.Font = next.Name
	return next
}

// ToggleDarkMode flips the preview theme.
func (ed *Editor) ToggleDarkMode() bool {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	ed.state.DarkMode = !ed.state.DarkMode
	return ed.state.DarkMode
}

// SetExportDark chooses the export profile.
func (ed *Editor) SetExportDark(dark bool) {
	ed.mu.Lock()
	ed.state.ExportDark = dark
	ed.mu.Unlock()
}

// ToggleExportDark flips the export profile.
func (ed *Editor) ToggleExportDark() bool {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	ed.state.ExportDark = !ed.state.ExportDark
	return ed.state.ExportDark
}

// ShowHelp opens the help panel.
func (ed *Editor) ShowHelp() { ed.setHelp(true) }

// HideHelp closes the help panel.
func (ed *Editor) HideHelp() { ed.setHelp(false) }

func (ed *Editor) setHelp(v bool) {
	ed.mu.Lock()
	ed.state.HelpVisible = v
	ed.mu.Unlock()
}

// DismissError clears the error banner.
func (ed *Editor) DismissError() {
	ed.mu.Lock()
	ed.state.Error = ""
	ed.mu.Unlock()
}

// ExportRun is a prepared export. Calling it runs the pipeline and settles
// the editor state; it must be called exactly once.
type ExportRun func(ctx context.Context) (*Artifact, error)

// StartExport marks an export as running and returns the work to do. It
// returns false while another export is running, leaving state unchanged.
// The surface and overrides are captured now, so edits made while the
// export runs do not leak into it.
func (ed *Editor) StartExport() (ExportRun, bool) {
	ed.mu.Lock()
	defer ed.mu.Unlock()

	if ed.state.Exporting {
		return nil, false
	}
	ed.state.Exporting = true
	ed.state.Error = ""

	surface := ed.surfaceLocked()
	overrides := ResolveOverrides(ed.state.ExportDark)

	return func(ctx context.Context) (*Artifact, error) {
		art, err := ed.runExport(ctx, surface, overrides)
		ed.finishExport(art, err)
		return art, err
	}, true
}

// Export runs an export to completion. It returns ErrExportInFlight when one
// is already running.
func (ed *Editor) Export(ctx context.Context) (*Artifact, error) {
	run, ok := ed.StartExport()
	if !ok {
		return nil, ErrExportInFlight
	}
	return run(ctx)
}

func (ed *Editor) runExport(ctx context.Context, surface *Surface, o StyleOverrides) (*Artifact, error) {
	if ed.exporter == nil {
		return nil, ErrNoExporter
	}
	return ed.exporter.Export(ctx, surface, o)
}

func (ed *Editor) finishExport(art *Artifact, err error) {
	ed.mu.Lock()
	defer ed.mu.Unlock()

	ed.state.Exporting = false
	if err != nil {
		ed.logger.Error("export failed", zap.Error(err))
		ed.state.Error = ExportFailedMessage
		return
	}
	ed.state.LastExport = art.Path
	if art.CounterErr == nil && art.UsageCount > 0 {
		ed.state.UsageCount = art.UsageCount
	}
}
