package building

import (
	"fmt"
	"math/rand/v2"

	"github.com/Faultbox/diwan-tower/internal/engine/material"
	"github.com/Faultbox/diwan-tower/pkg/math"
)

// Batch is one instanced draw: a box geometry repeated at several transforms,
// drawn with one of the shared materials.
type Batch struct {
	Name      string
	Size      math.Vec3 // box dimensions
	Material  material.Kind
	Instances []math.Mat4 // translation-only, written once at build time
}

// GlowLine is a thin plate hugging one floor. Each line owns its opacity so it
// can pulse out of phase with its neighbours.
type GlowLine struct {
	Floor   int
	Y       float32
	Opacity float32
}

// Blueprint is the complete static scene description returned by Build.
type Blueprint struct {
	Params Parameters

	Core    Batch
	Slabs   Batch
	Columns Batch
	// Batches lists every building batch, each once per shared material.
	Batches []Batch

	GlowSize  math.Vec3
	GlowLines []GlowLine

	Particles *ParticleCloud
	Grid      *Grid
}

// Options control the parts of the build that depend on the device.
type Options struct {
	ParticleCount int
	// Rand seeds the particle cloud. Nil means a fresh random source.
	Rand *rand.Rand
}

// Build constructs the tower described by p. It is called once per mount.
func Build(p Parameters, opts Options) (*Blueprint, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if opts.ParticleCount < 0 {
		return nil, fmt.Errorf("%w: particle count = %d", ErrInvalidParameters, opts.ParticleCount)
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	bp := &Blueprint{Params: p}
	bp.Core = buildCore(p)
	bp.Slabs = buildSlabs(p)

	cols, err := buildColumns(p)
	if err != nil {
		return nil, err
	}
	bp.Columns = cols

	for _, b := range []Batch{bp.Core, bp.Slabs, bp.Columns} {
		bp.Batches = append(bp.Batches, b, b.withMaterial(material.Wire))
	}

	bp.GlowSize, bp.GlowLines = buildGlowLines(p)
	bp.Particles = NewParticleCloud(opts.ParticleCount, p, rng)
	bp.Grid = NewGrid(DefaultGridSize, DefaultGridDivisions, GridElevation)

	return bp, nil
}

// withMaterial returns a copy of b sharing its instance transforms.
func (b Batch) withMaterial(k material.Kind) Batch {
	b.Material = k
	return b
}

func buildCore(p Parameters) Batch {
	h := p.TotalHeight()
	return Batch{
		Name:      "core",
		Size:      math.Vec3{X: p.CoreSize, Y: h, Z: p.CoreSize},
		Material:  material.Solid,
		Instances: []math.Mat4{math.Translate(0, h/2, 0)},
	}
}

func buildSlabs(p Parameters) Batch {
	instances := make([]math.Mat4, p.Floors)
	for i := range instances {
		instances[i] = math.Translate(0, float32(i)*p.FloorHeight, 0)
	}
	return Batch{
		Name:      "slabs",
		Size:      math.Vec3{X: p.FootprintSize, Y: SlabThickness, Z: p.FootprintSize},
		Material:  material.Solid,
		Instances: instances,
	}
}

// buildColumns walks each edge of each floor. Front and back edges take every
// step including corners; side edges skip the corners already placed.
func buildColumns(p Parameters) (Batch, error) {
	instances := make([]math.Mat4, p.TotalColumns())
	n := 0
	place := func(x, y, z float32) error {
		if n >= len(instances) {
			return fmt.Errorf("%w: capacity %d", ErrColumnOverflow, len(instances))
		}
		instances[n] = math.Translate(x, y, z)
		n++
		return nil
	}

	offset := p.ColumnOffset()
	last := p.ColumnsPerSide - 1
	for i := 0; i < p.Floors; i++ {
		y := float32(i)*p.FloorHeight + p.FloorHeight/2
		for j := 0; j <= last; j++ {
			step := float32(j)/float32(last)*p.FootprintSize - p.FootprintSize/2

			if err := place(step, y, offset); err != nil {
				return Batch{}, err
			}
			if err := place(step, y, -offset); err != nil {
				return Batch{}, err
			}
			if j > 0 && j < last {
				if err := place(offset, y, step); err != nil {
					return Batch{}, err
				}
				if err := place(-offset, y, step); err != nil {
					return Batch{}, err
				}
			}
		}
	}
	if n != len(instances) {
		return Batch{}, fmt.Errorf("%w: placed %d of %d", ErrColumnOverflow, n, len(instances))
	}

	return Batch{
		Name:      "columns",
		Size:      math.Vec3{X: ColumnWidth, Y: p.FloorHeight, Z: ColumnWidth},
		Material:  material.Solid,
		Instances: instances,
	}, nil
}

func buildGlowLines(p Parameters) (math.Vec3, []GlowLine) {
	size := math.Vec3{
		X: p.FootprintSize + GlowPadding,
		Y: GlowThickness,
		Z: p.FootprintSize + GlowPadding,
	}
	lines := make([]GlowLine, p.Floors)
	for i := range lines {
		lines[i] = GlowLine{
			Floor:   i,
			Y:       float32(i)*p.FloorHeight + GlowOffset,
			Opacity: GlowBaseOpacity,
		}
	}
	return size, lines
}

// GlowBaseOpacity is the resting opacity the pulse oscillates around.
const GlowBaseOpacity = 0.12

// Stats summarises instance counts.
type Stats struct {
	Floors          int `yaml:"floors"`
	Slabs           int `yaml:"slabs"`
	Columns         int `yaml:"columns"`
	ColumnsPerFloor int `yaml:"columns_per_floor"`
	GlowLines       int `yaml:"glow_lines"`
	Particles       int `yaml:"particles"`
	GridLines       int `yaml:"grid_lines"`
	DrawBatches     int `yaml:"draw_batches"`
}

// Stats reports the instance counts of the blueprint.
func (bp *Blueprint) Stats() Stats {
	return Stats{
		Floors:          bp.Params.Floors,
		Slabs:           len(bp.Slabs.Instances),
		Columns:         len(bp.Columns.Instances),
		ColumnsPerFloor: bp.Params.ColumnsPerFloor(),
		GlowLines:       len(bp.GlowLines),
		Particles:       bp.Particles.Len(),
		GridLines:       len(bp.Grid.Vertices) / 2,
		DrawBatches:     len(bp.Batches),
	}
}
