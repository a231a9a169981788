// Package viewer runs the windowed tower viewer: it owns the SDL window, the
// virtual page scroll and the mounted scene, and drives them from one loop.
package viewer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/diwan-tower/internal/config"
	"github.com/Faultbox/diwan-tower/internal/engine/camera"
	"github.com/Faultbox/diwan-tower/internal/engine/debug"
	"github.com/Faultbox/diwan-tower/internal/engine/input"
	"github.com/Faultbox/diwan-tower/internal/engine/lighting"
	"github.com/Faultbox/diwan-tower/internal/engine/renderer"
	"github.com/Faultbox/diwan-tower/internal/engine/window"
	"github.com/Faultbox/diwan-tower/internal/host"
	"github.com/Faultbox/diwan-tower/internal/logger"
	"github.com/Faultbox/diwan-tower/internal/scroll"
	"github.com/Faultbox/diwan-tower/internal/signal"
)

// Title is the window title prefix.
const Title = "Diwan Tower"

// arrowStep is how far the arrow keys scroll, in wheel notches.
const arrowStep = 1

// Viewer is one running viewer instance.
type Viewer struct {
	cfg *config.Config
	log *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	tracker  *scroll.Tracker
	resize   *signal.Signal[host.Size]
	engine   *host.Engine
	shots    *debug.ScreenshotCapture

	frameInterval time.Duration

	section string // page section under the viewport centre
	shot    string // camera stage name
}

// New opens the window and mounts the scene. ctx cancels an in-flight mount.
func New(ctx context.Context, cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg:    cfg,
		log:    logger.Named("viewer"),
		resize: signal.New[host.Size](),
		shots:  debug.NewScreenshotCapture("screenshots", "diwan"),
	}

	// The window needs its sample count before the scene is mounted; the
	// engine repeats this decision from the real surface size.
	caps := host.DetectCapabilities(cfg.Graphics.Width, cfg.Graphics.ForceMobile, cfg.Effects)
	var err error
	v.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Samples:    caps.Samples,
		HighDPI:    caps.PixelRatioCap > 1,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", host.ErrSurfaceUnavailable, err)
	}

	fps := scroll.DefaultFPS
	if cfg.Graphics.FPSLimit > 0 {
		fps = cfg.Graphics.FPSLimit
		v.frameInterval = time.Second / time.Duration(fps)
	}

	_, h := v.window.Size()
	v.tracker = scroll.NewTracker(cfg.Scroll, float64(h), fps)
	_, v.section = v.tracker.Section()
	v.tracker.OnSection = func(_ int, name string) {
		v.section = name
		v.updateTitle()
	}

	v.renderer = renderer.New(lighting.DefaultRig())
	opts := host.OptionsFromConfig(cfg)
	opts.Progress = v.tracker.Progress()
	opts.Resize = v.resize
	opts.OnStage = v.stageChanged
	// Mount only reports a stage when priming moves off the first one.
	v.shot = camera.NewPath(opts.Params).Stages[0].Name

	v.engine, err = host.Mount(ctx, v.window, v.renderer, opts)
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("mounting scene: %w", err)
	}

	v.updateTitle()

	v.input = input.New()
	return v, nil
}

func (v *Viewer) stageChanged(from, to int, s camera.Stage) {
	v.shot = s.Name
	v.log.Info("camera stage",
		zap.Int("from", from+1),
		zap.Int("to", to+1),
		zap.String("name", s.Name),
		zap.String("section", s.Section),
		zap.String("ease", s.EaseName),
	)
	v.updateTitle()
}

func (v *Viewer) updateTitle() {
	v.window.SetTitle(fmt.Sprintf("%s - %s [%s]", Title, v.section, v.shot))
}

// Run drives input, scroll smoothing and rendering until the window closes
// or ctx is cancelled.
func (v *Viewer) Run(ctx context.Context) error {
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting render loop", zap.Strings("sections", v.tracker.Sections()))

	for ctx.Err() == nil {
		frameStart := time.Now()
		dt := frameStart.Sub(lastTime)
		lastTime = frameStart

		if v.input.Update() {
			return nil
		}
		if v.handleEvents() {
			return nil
		}

		v.tracker.Step()
		if err := v.engine.Tick(dt); err != nil {
			return fmt.Errorf("render loop: %w", err)
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			_, section := v.tracker.Section()
			v.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Duration("dt", dt),
				zap.Float64("progress", v.tracker.Current()),
				zap.String("section", section),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}

		if v.frameInterval > 0 {
			if rest := v.frameInterval - time.Since(frameStart); rest > 0 {
				time.Sleep(rest)
			}
		}
	}
	return nil
}

// handleEvents applies this frame's events. It returns true to quit.
func (v *Viewer) handleEvents() bool {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			v.resize.Emit(host.Size{Width: event.Width, Height: event.Height})
			v.tracker.SetViewport(float64(event.Height))
		case input.EventMouseWheel:
			v.tracker.Wheel(event.Wheel)
		case input.EventKeyDown:
			if v.handleAction(input.ActionFor(event.Key)) {
				return true
			}
		}
	}
	return false
}

func (v *Viewer) handleAction(a input.Action) bool {
	switch a {
	case input.ActionQuit:
		return true
	case input.ActionScrollDown:
		v.tracker.Wheel(arrowStep)
	case input.ActionScrollUp:
		v.tracker.Wheel(-arrowStep)
	case input.ActionPageDown:
		v.tracker.PageDown()
	case input.ActionPageUp:
		v.tracker.PageUp()
	case input.ActionHome:
		v.tracker.Home()
	case input.ActionEnd:
		v.tracker.End()
	case input.ActionNextSection:
		v.tracker.NextSection()
	case input.ActionPrevSection:
		v.tracker.PrevSection()
	case input.ActionScreenshot:
		v.captureScreenshot()
	case input.ActionToggleDebugLog:
		v.toggleDebugLog()
	}
	return false
}

func (v *Viewer) captureScreenshot() {
	err := v.engine.RequestCapture(func(pixels []byte, w, h int, err error) {
		if err != nil {
			v.log.Warn("screenshot failed", zap.Error(err))
			return
		}
		path, err := v.shots.CaptureFromPixels(pixels, w, h)
		if err != nil {
			v.log.Warn("screenshot failed", zap.Error(err))
			return
		}
		v.log.Info("screenshot saved", zap.String("path", path))
	})
	if err != nil {
		v.log.Warn("screenshot unavailable", zap.Error(err))
	}
}

func (v *Viewer) toggleDebugLog() {
	lvl := "debug"
	if logger.Level() == zapcore.DebugLevel {
		lvl = v.cfg.Logging.Level
		if lvl == "debug" {
			lvl = "info"
		}
	}
	if err := logger.SetLevel(lvl); err != nil {
		v.log.Warn("log level unchanged", zap.Error(err))
		return
	}
	v.log.Info("log level changed", zap.String("level", lvl))
}

// Close disposes the scene and closes the window.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.engine != nil {
		if err := v.engine.Dispose(); err != nil {
			v.log.Warn("dispose failed", zap.Error(err))
		}
	}
	if v.window != nil {
		v.window.Close()
	}
}
