package host

import (
	"errors"
	"sync"

	"github.com/Faultbox/diwan-tower/internal/engine/building"
)

type fakeSurface struct {
	w, h     int
	dw, dh   int
	presents int
}

func newFakeSurface(w, h int) *fakeSurface {
	return &fakeSurface{w: w, h: h, dw: w, dh: h}
}

func (s *fakeSurface) Size() (int, int)         { return s.w, s.h }
func (s *fakeSurface) DrawableSize() (int, int) { return s.dw, s.dh }
func (s *fakeSurface) Present()                 { s.presents++ }

// fakeBackend records calls and can be told to fail at any step.
type fakeBackend struct {
	mu sync.Mutex

	initErr   error
	uploadErr error
	bloomErr  error
	drawErr   error
	resizeErr error
	onUpload  func()

	caps      Capabilities
	viewports []Viewport
	uploaded  *building.Blueprint
	bloom     bool
	draws     int
	frames    []Frame
	releases  int
	live      bool // resources held between Init and Release
}

func (b *fakeBackend) Init(caps Capabilities, vp Viewport) error {
	b.caps = caps
	b.viewports = append(b.viewports, vp)
	if b.initErr != nil {
		return b.initErr
	}
	b.live = true
	return nil
}

func (b *fakeBackend) Upload(bp *building.Blueprint) error {
	if b.onUpload != nil {
		b.onUpload()
	}
	if b.uploadErr != nil {
		return b.uploadErr
	}
	b.uploaded = bp
	return nil
}

func (b *fakeBackend) EnableBloom(strength, threshold float32) error {
	if b.bloomErr != nil {
		return b.bloomErr
	}
	b.bloom = true
	return nil
}

func (b *fakeBackend) Resize(vp Viewport) error {
	if b.resizeErr != nil {
		return b.resizeErr
	}
	b.viewports = append(b.viewports, vp)
	return nil
}

func (b *fakeBackend) Draw(f *Frame) error {
	b.draws++
	if b.drawErr != nil {
		return b.drawErr
	}
	snapshot := *f
	snapshot.Particles = append([]float32(nil), f.Particles...)
	snapshot.Glow = append([]building.GlowLine(nil), f.Glow...)
	b.frames = append(b.frames, snapshot)
	return nil
}

func (b *fakeBackend) Release() error {
	b.releases++
	b.live = false
	b.uploaded = nil
	return nil
}

func (b *fakeBackend) lastFrame() Frame {
	return b.frames[len(b.frames)-1]
}

type capturingBackend struct {
	fakeBackend
}

func (b *capturingBackend) Capture() ([]byte, int, int, error) {
	return make([]byte, 4), 1, 1, nil
}

var errBoom = errors.New("boom")
