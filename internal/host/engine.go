// Package host mounts the tower scene onto a render surface. It wires the
// geometry builder, camera path controller and idle animation to a GPU
// backend and to the external scroll-progress and resize signals.
package host

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/diwan-tower/internal/config"
	"github.com/Faultbox/diwan-tower/internal/engine/animation"
	"github.com/Faultbox/diwan-tower/internal/engine/building"
	"github.com/Faultbox/diwan-tower/internal/engine/camera"
	"github.com/Faultbox/diwan-tower/internal/engine/material"
	"github.com/Faultbox/diwan-tower/internal/logger"
	"github.com/Faultbox/diwan-tower/internal/signal"
)

var (
	// ErrSurfaceUnavailable is returned when the rendering context cannot be
	// created or the scene cannot be uploaded to it.
	ErrSurfaceUnavailable = errors.New("render surface unavailable")
	// ErrDisposed is returned by operations on an engine that has been disposed.
	ErrDisposed = errors.New("engine disposed")
)

// Size is a logical viewport size carried by the resize signal.
type Size struct {
	Width, Height int
}

// Options configure a mount.
type Options struct {
	Params      building.Parameters
	Effects     config.EffectsConfig
	ForceMobile bool
	// Seed fixes the dust cloud layout. Zero picks a fresh layout per mount.
	Seed uint64

	// Progress and Resize are optional external signals the engine follows
	// until it is disposed.
	Progress *signal.Signal[float64]
	Resize   *signal.Signal[Size]

	// OnStage is called when the camera enters another stage. It runs while
	// the engine is locked and must not call back into it.
	OnStage func(from, to int, s camera.Stage)
}

// OptionsFromConfig maps the viewer configuration onto mount options.
func OptionsFromConfig(cfg *config.Config) Options {
	b := cfg.Building
	return Options{
		Params: building.Parameters{
			Floors:         b.Floors,
			FloorHeight:    b.FloorHeight,
			FootprintSize:  b.FootprintSize,
			CoreSize:       b.CoreSize,
			ColumnsPerSide: b.ColumnsPerSide,
		},
		Effects:     cfg.Effects,
		ForceMobile: cfg.Graphics.ForceMobile,
		Seed:        b.Seed,
	}
}

// Disposer releases a mount. It is idempotent.
type Disposer func() error

// Engine is one mounted scene.
type Engine struct {
	mu sync.Mutex

	surface Surface
	backend Backend
	log     *zap.Logger

	caps      Capabilities
	viewport  Viewport
	bloom     bool
	blueprint *building.Blueprint

	camera     *camera.Camera
	materials  *material.State
	controller *camera.Controller
	idle       *animation.Idle

	pending *Size
	capture func(pixels []byte, width, height int, err error)
	frames  uint64

	unsubscribe []func()
	disposed    bool
	disposeOnce sync.Once
	disposeErr  error
}

// Mount builds the scene on surface and starts following the option signals.
// A failed or cancelled mount releases everything it acquired and returns no
// engine. Cancellation is observed between the build and upload steps, so a
// context cancelled while the scene is being uploaded still leaves nothing
// behind.
func Mount(ctx context.Context, surface Surface, backend Backend, opts Options) (*Engine, error) {
	log := logger.Named("host")
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w, h := surface.Size()
	caps := DetectCapabilities(w, opts.ForceMobile, opts.Effects)
	dw, dh := surface.DrawableSize()
	vp := NewViewport(w, h, dw, dh, caps.PixelRatioCap)
	log.Info("mounting scene",
		zap.Int("width", vp.Width),
		zap.Int("height", vp.Height),
		zap.Int("render_width", vp.RenderWidth),
		zap.Int("render_height", vp.RenderHeight),
		zap.Bool("constrained", caps.Constrained),
		zap.Int("particles", caps.ParticleCount),
		zap.Int("samples", caps.Samples),
	)

	if err := backend.Init(caps, vp); err != nil {
		return nil, multierr.Append(
			fmt.Errorf("%w: %w", ErrSurfaceUnavailable, err),
			backend.Release(),
		)
	}

	bp, err := building.Build(opts.Params, building.Options{
		ParticleCount: caps.ParticleCount,
		Rand:          newRand(opts.Seed),
	})
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("building scene: %w", err), backend.Release())
	}

	if err := ctx.Err(); err != nil {
		log.Info("mount cancelled before upload")
		return nil, multierr.Append(err, backend.Release())
	}
	if err := backend.Upload(bp); err != nil {
		return nil, multierr.Append(
			fmt.Errorf("%w: uploading scene: %w", ErrSurfaceUnavailable, err),
			backend.Release(),
		)
	}
	if err := ctx.Err(); err != nil {
		log.Info("mount cancelled during upload")
		return nil, multierr.Append(err, backend.Release())
	}

	e := &Engine{
		surface:   surface,
		backend:   backend,
		log:       log,
		caps:      caps,
		viewport:  vp,
		blueprint: bp,
		camera:    camera.New(vp.Width, vp.Height),
		materials: material.NewState(),
	}
	e.controller = camera.NewController(camera.NewPath(opts.Params), e.camera, e.materials)
	e.controller.OnStage = opts.OnStage
	e.idle = animation.NewIdle(bp)

	if caps.Bloom {
		if err := backend.EnableBloom(opts.Effects.BloomStrength, opts.Effects.BloomThreshold); err != nil {
			log.Warn("bloom unavailable, using base render path", zap.Error(err))
		} else {
			e.bloom = true
		}
	}

	if opts.Progress != nil {
		if p, ok := opts.Progress.Last(); ok {
			e.controller.Update(p)
		}
		e.unsubscribe = append(e.unsubscribe, opts.Progress.Subscribe(func(p float64) {
			_ = e.SetProgress(p)
		}))
	}
	if opts.Resize != nil {
		e.unsubscribe = append(e.unsubscribe, opts.Resize.Subscribe(func(s Size) {
			_ = e.Resize(s.Width, s.Height)
		}))
	}

	stats := bp.Stats()
	log.Info("scene mounted",
		zap.Int("floors", stats.Floors),
		zap.Int("columns", stats.Columns),
		zap.Int("particles", stats.Particles),
		zap.Bool("bloom", e.bloom),
	)
	return e, nil
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// SetProgress forwards scroll progress to the camera path controller.
func (e *Engine) SetProgress(p float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed {
		return ErrDisposed
	}
	e.controller.Update(p)
	return nil
}

// Resize records a new logical viewport size. It is safe to call from any
// goroutine; the next Tick applies it.
func (e *Engine) Resize(width, height int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed {
		return ErrDisposed
	}
	e.pending = &Size{Width: width, Height: height}
	return nil
}

// RequestCapture asks for the next drawn frame to be read back. fn runs inside
// Tick after the frame is drawn and must not call back into the engine.
func (e *Engine) RequestCapture(fn func(pixels []byte, width, height int, err error)) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed {
		return ErrDisposed
	}
	e.capture = fn
	return nil
}

// Tick advances the idle animation by dt and draws one frame. Draw errors are
// logged and the loop carries on.
func (e *Engine) Tick(dt time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed {
		return ErrDisposed
	}

	e.applyResize()
	e.idle.Advance(dt)

	cloud := e.blueprint.Particles
	frame := &Frame{
		View:             e.camera.ViewMatrix(),
		Projection:       e.camera.ProjectionMatrix(),
		CameraPosition:   e.camera.Position,
		Materials:        *e.materials,
		Glow:             e.blueprint.GlowLines,
		Particles:        cloud.Positions,
		ParticleRotation: cloud.Rotation,
		Elapsed:          e.idle.Elapsed().Seconds(),
	}
	if err := e.backend.Draw(frame); err != nil {
		e.log.Warn("draw failed", zap.Error(err))
		return nil
	}
	e.frames++

	if e.capture != nil {
		fn := e.capture
		e.capture = nil
		if c, ok := e.backend.(Capturer); ok {
			fn(c.Capture())
		} else {
			fn(nil, 0, 0, errors.New("backend cannot capture frames"))
		}
	}

	e.surface.Present()
	return nil
}

func (e *Engine) applyResize() {
	if e.pending == nil {
		return
	}
	s := *e.pending
	e.pending = nil

	// A minimised window reports zero area. Keep the last viewport and
	// render targets until it comes back.
	if s.Width <= 0 || s.Height <= 0 {
		e.log.Debug("ignoring zero-area resize", zap.Int("width", s.Width), zap.Int("height", s.Height))
		return
	}

	dw, dh := e.surface.DrawableSize()
	vp := NewViewport(s.Width, s.Height, dw, dh, e.caps.PixelRatioCap)
	if vp == e.viewport {
		return
	}
	if err := e.backend.Resize(vp); err != nil {
		e.log.Warn("resize failed", zap.Error(err), zap.Int("width", s.Width), zap.Int("height", s.Height))
		return
	}
	e.viewport = vp
	e.camera.SetViewport(vp.Width, vp.Height)
	e.log.Debug("viewport resized",
		zap.Int("width", vp.Width),
		zap.Int("height", vp.Height),
		zap.Int("render_width", vp.RenderWidth),
		zap.Int("render_height", vp.RenderHeight),
	)
}

// Dispose unsubscribes from the signals and releases the backend. Later calls
// return the result of the first.
func (e *Engine) Dispose() error {
	e.disposeOnce.Do(func() {
		e.mu.Lock()
		e.disposed = true
		unsubs := e.unsubscribe
		e.unsubscribe = nil
		e.capture = nil
		e.mu.Unlock()

		for _, u := range unsubs {
			u()
		}
		e.disposeErr = e.backend.Release()
		e.log.Info("scene disposed", zap.Uint64("frames", e.frames), zap.Error(e.disposeErr))
	})
	return e.disposeErr
}

// Disposer returns Dispose as a standalone function.
func (e *Engine) Disposer() Disposer {
	return e.Dispose
}

// Disposed reports whether Dispose has been called.
func (e *Engine) Disposed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.disposed
}

// Capabilities returns the device branch chosen at mount.
func (e *Engine) Capabilities() Capabilities { return e.caps }

// BloomEnabled reports whether the post-processing path is active.
func (e *Engine) BloomEnabled() bool { return e.bloom }

// Blueprint returns the mounted scene description.
func (e *Engine) Blueprint() *building.Blueprint { return e.blueprint }

// Viewport returns the current viewport.
func (e *Engine) Viewport() Viewport {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewport
}

// Camera returns a copy of the camera state.
func (e *Engine) Camera() camera.Camera {
	e.mu.Lock()
	defer e.mu.Unlock()
	return *e.camera
}

// Materials returns a copy of the shared material state.
func (e *Engine) Materials() material.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return *e.materials
}

// Stage returns the current camera path stage.
func (e *Engine) Stage() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.controller.Stage()
}

// Frames returns the number of frames drawn.
func (e *Engine) Frames() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frames
}
