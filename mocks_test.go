package mdark

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/alnah/go-mdark/internal/storage"
)

// pngBytes encodes a w x h opaque PNG.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

// ---------------------------------------------------------------------------
// mockStage / mockMount
// ---------------------------------------------------------------------------

type mockStage struct {
	mu        sync.Mutex
	events    []string
	requests  []StageRequest
	raster    *Raster
	attachErr error
	rasterErr error
	panicMsg  string
	// release, when set, blocks Rasterize until closed.
	release chan struct{}
	// started is signalled once Rasterize begins.
	started chan struct{}
	closed  bool
}

func (s *mockStage) record(e string) {
	s.mu.Lock()
	s.events = append(s.events, e)
	s.mu.Unlock()
}

func (s *mockStage) Events() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.events...)
}

// reset clears recorded events and injected failures.
func (s *mockStage) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
	s.requests = nil
	s.attachErr = nil
	s.rasterErr = nil
	s.panicMsg = ""
}

func (s *mockStage) Attach(_ context.Context, req StageRequest) (Mount, error) {
	s.record("attach")
	if s.attachErr != nil {
		return nil, s.attachErr
	}
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()
	return &mockMount{stage: s}, nil
}

func (s *mockStage) Close() error {
	s.closed = true
	return nil
}

type mockMount struct {
	stage    *mockStage
	detaches atomic.Int32
}

func (m *mockMount) Rasterize(_ context.Context, scale float64) (*Raster, error) {
	m.stage.record("rasterize")
	if m.stage.started != nil {
		close(m.stage.started)
	}
	if m.stage.release != nil {
		<-m.stage.release
	}
	if m.stage.panicMsg != "" {
		panic(m.stage.panicMsg)
	}
	if scale != RasterScale {
		return nil, errors.New("unexpected scale")
	}
	if m.stage.rasterErr != nil {
		return nil, m.stage.rasterErr
	}
	return m.stage.raster, nil
}

func (m *mockMount) Detach() error {
	if m.detaches.Add(1) == 1 {
		m.stage.record("detach")
	}
	return nil
}

// ---------------------------------------------------------------------------
// mockAssembler / mockSaver / failingStore
// ---------------------------------------------------------------------------

type mockAssembler struct {
	err   error
	calls atomic.Int32
}

func (a *mockAssembler) Assemble(r *Raster) ([]byte, error) {
	a.calls.Add(1)
	if a.err != nil {
		return nil, a.err
	}
	return []byte("%PDF-mock"), nil
}

type mockSaver struct {
	mu    sync.Mutex
	err   error
	saves [][]byte
}

func (s *mockSaver) Save(data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	s.saves = append(s.saves, data)
	return "/out/" + ArtifactName, nil
}

func (s *mockSaver) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saves)
}

type failingStore struct {
	getErr error
	setErr error
}

func (f failingStore) Get(string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return "", storage.ErrNotFound
}

func (f failingStore) Set(string, string) error { return f.setErr }
func (f failingStore) Close() error             { return nil }
