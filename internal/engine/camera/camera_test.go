package camera

import (
	"testing"

	"github.com/Faultbox/diwan-tower/pkg/math"
)

func TestSetViewportIgnoresZeroArea(t *testing.T) {
	c := New(1600, 800)
	if c.Aspect != 2 {
		t.Fatalf("aspect = %v, want 2", c.Aspect)
	}
	c.SetViewport(0, 0)
	if c.Aspect != 2 {
		t.Errorf("zero viewport changed aspect to %v", c.Aspect)
	}
	c.SetViewport(800, 800)
	if c.Aspect != 1 {
		t.Errorf("aspect = %v, want 1", c.Aspect)
	}
}

func TestViewMatrixLooksAtTarget(t *testing.T) {
	c := New(100, 100)
	c.Position = math.Vec3{X: 36, Y: 107.5, Z: 36}
	c.Target = math.Vec3{Y: 43.75}

	p := c.ViewMatrix().TransformVec3(c.Target)
	if !near(p.X, 0, 1e-3) || !near(p.Y, 0, 1e-3) || p.Z >= 0 {
		t.Errorf("target in view space = %v, want on -Z axis", p)
	}
}

func TestViewMatrixStraightDown(t *testing.T) {
	c := New(100, 100)
	c.Position = math.Vec3{Y: 50}
	c.Target = math.Vec3{}

	m := c.ViewMatrix()
	for i, v := range m {
		if v != v {
			t.Fatalf("view matrix element %d is NaN", i)
		}
	}
}
