package host

import (
	gomath "math"

	"github.com/Faultbox/diwan-tower/internal/config"
)

// MSAASamples is the sample count requested on unconstrained displays.
const MSAASamples = 4

// Capabilities is the device branch taken once per mount.
type Capabilities struct {
	// Constrained is true for narrow (mobile-class) viewports.
	Constrained   bool
	ParticleCount int
	// Samples is the MSAA sample count; zero disables antialiasing.
	Samples int
	// PixelRatioCap bounds the render resolution relative to logical pixels.
	PixelRatioCap float64
	Bloom         bool
}

// DetectCapabilities decides the device branch from the viewport width.
func DetectCapabilities(viewportWidth int, forceMobile bool, fx config.EffectsConfig) Capabilities {
	constrained := forceMobile || viewportWidth < fx.MobileBreakpoint
	if constrained {
		return Capabilities{
			Constrained:   true,
			ParticleCount: fx.ParticleCountMobile,
			PixelRatioCap: 1,
		}
	}
	return Capabilities{
		ParticleCount: fx.ParticleCountDesktop,
		Samples:       MSAASamples,
		PixelRatioCap: 2,
		Bloom:         fx.Bloom,
	}
}

// Viewport describes the surface in logical and physical pixels plus the
// resolution the scene is actually rendered at.
type Viewport struct {
	Width, Height                 int
	DrawableWidth, DrawableHeight int
	RenderWidth, RenderHeight     int
}

// Aspect returns width/height, or 1 for an empty viewport.
func (v Viewport) Aspect() float32 {
	if v.Width <= 0 || v.Height <= 0 {
		return 1
	}
	return float32(v.Width) / float32(v.Height)
}

// NewViewport computes the render resolution as the drawable size limited to
// ratioCap times the logical size.
func NewViewport(width, height, drawableWidth, drawableHeight int, ratioCap float64) Viewport {
	width, height = max(width, 1), max(height, 1)
	if drawableWidth <= 0 || drawableHeight <= 0 {
		drawableWidth, drawableHeight = width, height
	}
	if ratioCap <= 0 {
		ratioCap = 1
	}

	ratio := gomath.Min(float64(drawableWidth)/float64(width), ratioCap)
	return Viewport{
		Width:          width,
		Height:         height,
		DrawableWidth:  drawableWidth,
		DrawableHeight: drawableHeight,
		RenderWidth:    max(int(gomath.Round(float64(width)*ratio)), 1),
		RenderHeight:   max(int(gomath.Round(float64(height)*ratio)), 1),
	}
}
