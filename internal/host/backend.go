package host

import (
	"github.com/Faultbox/diwan-tower/internal/engine/building"
	"github.com/Faultbox/diwan-tower/internal/engine/material"
	"github.com/Faultbox/diwan-tower/pkg/math"
)

// Surface is the window area the engine renders into.
type Surface interface {
	// Size returns the logical size in pixels.
	Size() (width, height int)
	// DrawableSize returns the physical size of the default framebuffer.
	DrawableSize() (width, height int)
	// Present shows the frame just drawn.
	Present()
}

// Frame is everything a backend needs to draw one frame. Slices point into
// the mounted scene and are only valid during Draw.
type Frame struct {
	View           math.Mat4
	Projection     math.Mat4
	CameraPosition math.Vec3
	Materials      material.State

	Glow             []building.GlowLine
	Particles        []float32
	ParticleRotation float32

	Elapsed float64
}

// Backend owns the GPU side of a mount.
type Backend interface {
	// Init acquires the rendering context. Failure is fatal to the mount.
	Init(caps Capabilities, vp Viewport) error
	// Upload creates GPU resources for the static scene.
	Upload(bp *building.Blueprint) error
	// EnableBloom sets up post-processing. Failure leaves the base path working.
	EnableBloom(strength, threshold float32) error
	// Resize adapts render targets to a new viewport.
	Resize(vp Viewport) error
	// Draw renders one frame.
	Draw(f *Frame) error
	// Release frees every GPU resource acquired since Init. It must be safe
	// to call after a partial Init or Upload.
	Release() error
}

// Capturer is implemented by backends that can read back the last frame.
type Capturer interface {
	// Capture returns top-down RGBA pixels of the frame just drawn.
	Capture() (pixels []byte, width, height int, err error)
}
