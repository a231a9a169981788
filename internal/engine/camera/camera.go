// Package camera provides the scene camera and the scroll-driven path that moves it.
package camera

import (
	"github.com/Faultbox/diwan-tower/pkg/math"
)

// Projection defaults.
const (
	DefaultFovY = 60 // degrees
	DefaultNear = 0.1
	DefaultFar  = 1000
)

// Camera is a perspective camera aimed at a look-at point. Orientation is never
// stored: the view matrix is derived from Position and Target on demand.
type Camera struct {
	Position math.Vec3
	Target   math.Vec3

	FovY   float32 // degrees
	Aspect float32
	Near   float32
	Far    float32
}

// New creates a camera with default projection for the given viewport.
func New(width, height int) *Camera {
	c := &Camera{
		FovY: DefaultFovY,
		Near: DefaultNear,
		Far:  DefaultFar,
	}
	c.SetViewport(width, height)
	return c
}

// SetViewport recomputes the aspect ratio. Zero-area viewports keep the
// previous aspect so a minimised window does not produce NaNs.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		if c.Aspect == 0 {
			c.Aspect = 1
		}
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// ViewMatrix returns the look-at view matrix for the current position and target.
func (c *Camera) ViewMatrix() math.Mat4 {
	up := math.Up
	forward := c.Target.Sub(c.Position).Normalize()
	// Looking straight up or down: any horizontal up vector will do.
	if f := forward.Cross(up); f.Length() < 1e-6 {
		up = math.Vec3{Z: -1}
	}
	return math.LookAt(c.Position, c.Target, up)
}

// ProjectionMatrix returns the perspective projection.
func (c *Camera) ProjectionMatrix() math.Mat4 {
	return math.Perspective(math.Radians(c.FovY), c.Aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *Camera) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}
