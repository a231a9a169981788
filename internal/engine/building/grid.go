package building

import (
	"github.com/Faultbox/diwan-tower/internal/engine/material"
	"github.com/Faultbox/diwan-tower/pkg/math"
)

// Ground grid layout.
const (
	DefaultGridSize      = 100
	DefaultGridDivisions = 40
	GridElevation        = -0.5
	GridOpacity          = 0.15
)

// LineVertex is a coloured line endpoint.
type LineVertex struct {
	Position math.Vec3
	Color    [3]float32
}

// Grid is the decorative reference grid under the tower, drawn as GL lines.
type Grid struct {
	Size      float32
	Divisions int
	Vertices  []LineVertex
}

// NewGrid lays out divisions+1 lines along each axis across size units.
// The two centre lines use the accent colour.
func NewGrid(size float32, divisions int, y float32) *Grid {
	if divisions < 1 {
		divisions = 1
	}

	half := size / 2
	step := size / float32(divisions)
	g := &Grid{Size: size, Divisions: divisions}

	colorFor := func(i int) [3]float32 {
		if i == divisions/2 {
			return material.GridCenterColor
		}
		return material.GridLineColor
	}

	for i := 0; i <= divisions; i++ {
		x := -half + float32(i)*step
		c := colorFor(i)
		g.Vertices = append(g.Vertices,
			LineVertex{math.Vec3{X: x, Y: y, Z: -half}, c},
			LineVertex{math.Vec3{X: x, Y: y, Z: half}, c},
		)
	}
	for i := 0; i <= divisions; i++ {
		z := -half + float32(i)*step
		c := colorFor(i)
		g.Vertices = append(g.Vertices,
			LineVertex{math.Vec3{X: -half, Y: y, Z: z}, c},
			LineVertex{math.Vec3{X: half, Y: y, Z: z}, c},
		)
	}
	return g
}
