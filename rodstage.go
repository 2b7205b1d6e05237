package mdark

import (
	"context"
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	colorful "github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/alnah/go-mdark/internal/assets"
	"github.com/alnah/go-mdark/internal/fileutil"
	"github.com/alnah/go-mdark/internal/process"
)

// stageHostSelector is the element of the stage page receiving the clone.
const stageHostSelector = "#mdark-stage"

// rodStage attaches trees to a headless Chrome tab the user never sees.
// Rod downloads Chromium on first run if none is found.
type rodStage struct {
	loader  assets.AssetLoader
	timeout time.Duration // Zero waits indefinitely
	logger  *zap.Logger

	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
}

func newRodStage(loader assets.AssetLoader, timeout time.Duration, logger *zap.Logger) *rodStage {
	return &rodStage{loader: loader, timeout: timeout, logger: logger}
}

// ensureBrowser lazily launches and connects to the browser.
func (s *rodStage) ensureBrowser() (*rod.Browser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.browser != nil {
		return s.browser, nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		process.KillProcessGroup(l.PID())
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	s.logger.Debug("browser launched", zap.Int("pid", l.PID()))
	s.launcher = l
	s.browser = browser
	return browser, nil
}

// Attach renders the stage page for req, opens it in a new tab and inserts
// req.HTML into the stage host.
func (s *rodStage) Attach(ctx context.Context, req StageRequest) (Mount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pageHTML, err := stageDocument(s.loader, req, "")
	if err != nil {
		return nil, err
	}

	path, cleanup, err := fileutil.WriteTempFile(pageHTML, "html")
	if err != nil {
		return nil, err
	}

	browser, err := s.ensureBrowser()
	if err != nil {
		cleanup()
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "file://" + path})
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	m := &rodMount{page: page.Context(ctx), tab: page, cleanup: cleanup, width: req.Width, background: req.Background}
	if s.timeout > 0 {
		m.page = m.page.Timeout(s.timeout)
	}

	if err := m.page.WaitLoad(); err != nil {
		_ = m.Detach()
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	host, err := m.page.Element(stageHostSelector)
	if err != nil {
		_ = m.Detach()
		return nil, fmt.Errorf("%w: stage host: %v", ErrPageLoad, err)
	}
	if _, err := host.Eval(`function (h) { this.innerHTML = h }`, req.HTML); err != nil {
		_ = m.Detach()
		return nil, fmt.Errorf("%w: inserting tree: %v", ErrPageLoad, err)
	}
	m.host = host
	return m, nil
}

// Close releases browser resources.
func (s *rodStage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if s.browser != nil {
		err = s.browser.Close()
		s.browser = nil
	}
	if s.launcher != nil {
		process.KillProcessGroup(s.launcher.PID())
		s.launcher.Kill()
		s.launcher.Cleanup()
		s.launcher = nil
	}
	return err
}

// rodMount is one stage tab holding one tree.
type rodMount struct {
	page       *rod.Page // bound to the export ctx and timeout
	tab        *rod.Page // bound to the browser only, used for teardown
	host       *rod.Element
	cleanup    func()
	width      int
	background string

	once sync.Once
}

// Rasterize sizes the viewport to the laid-out tree and captures it.
func (m *rodMount) Rasterize(ctx context.Context, scale float64) (*Raster, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.host == nil {
		return nil, fmt.Errorf("%w: nothing attached", ErrRasterize)
	}

	bg, err := backgroundRGBA(m.background)
	if err != nil {
		return nil, err
	}
	if err := (proto.EmulationSetDefaultBackgroundColorOverride{Color: bg}).Call(m.page); err != nil {
		return nil, fmt.Errorf("%w: background: %v", ErrRasterize, err)
	}

	shape, err := m.host.Shape()
	if err != nil {
		return nil, fmt.Errorf("%w: measuring tree: %v", ErrRasterize, err)
	}
	box := shape.Box()
	height := int(math.Ceil(box.Y + box.Height))
	if height < 1 {
		height = 1
	}

	if err := m.page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             m.width,
		Height:            height,
		DeviceScaleFactor: scale,
	}); err != nil {
		return nil, fmt.Errorf("%w: viewport: %v", ErrRasterize, err)
	}

	png, err := m.page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
		Clip: &proto.PageViewport{
			X:      box.X,
			Y:      box.Y,
			Width:  box.Width,
			Height: box.Height,
			Scale:  1,
		},
		CaptureBeyondViewport: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRasterize, err)
	}
	return NewRaster(png)
}

// Detach empties the stage host, closes the tab and removes the page file.
// It runs outside the export ctx so a cancelled or timed-out export still
// tears the tab down.
func (m *rodMount) Detach() error {
	var err error
	m.once.Do(func() {
		if m.host != nil {
			_, _ = m.host.Context(m.tab.GetContext()).Eval(`function () { this.innerHTML = "" }`)
			m.host = nil
		}
		err = m.tab.Close()
		m.cleanup()
	})
	return err
}

// backgroundRGBA converts a hex colour into the CDP colour type.
func backgroundRGBA(hex string) (*proto.DOMRGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("%w: background %q: %v", ErrRasterize, hex, err)
	}
	r, g, b := c.RGB255()
	alpha := 1.0
	return &proto.DOMRGBA{R: int(r), G: int(g), B: int(b), A: &alpha}, nil
}
