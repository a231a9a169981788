// Package building constructs the procedural tower: core, floor slabs,
// perimeter columns, per-floor glow lines, the ambient dust cloud and the
// ground grid. Everything here is plain CPU data; the renderer uploads it once.
package building

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameters is returned when Parameters cannot describe a tower.
	ErrInvalidParameters = errors.New("invalid building parameters")
	// ErrColumnOverflow is returned when column placement would exceed the
	// pre-sized instance batch.
	ErrColumnOverflow = errors.New("column batch overflow")
)

// Fixed proportions of the tower's parts.
const (
	SlabThickness = 0.4
	ColumnWidth   = 0.8
	GlowThickness = 0.05
	GlowPadding   = 0.5 // glow lines overhang the slab edge by half this on each side
	GlowOffset    = 0.2 // glow line height above its slab
)

// Parameters describe the tower. They are fixed for the life of a mount.
type Parameters struct {
	Floors         int
	FloorHeight    float32
	FootprintSize  float32
	CoreSize       float32
	ColumnsPerSide int
}

// DefaultParameters returns the reference tower.
func DefaultParameters() Parameters {
	return Parameters{
		Floors:         25,
		FloorHeight:    3.5,
		FootprintSize:  24,
		CoreSize:       8,
		ColumnsPerSide: 5,
	}
}

// Validate reports whether p can be built.
func (p Parameters) Validate() error {
	switch {
	case p.Floors < 1:
		return fmt.Errorf("%w: floors = %d", ErrInvalidParameters, p.Floors)
	case !(p.FloorHeight > 0):
		return fmt.Errorf("%w: floor height = %g", ErrInvalidParameters, p.FloorHeight)
	case !(p.FootprintSize > 0):
		return fmt.Errorf("%w: footprint size = %g", ErrInvalidParameters, p.FootprintSize)
	case !(p.CoreSize > 0):
		return fmt.Errorf("%w: core size = %g", ErrInvalidParameters, p.CoreSize)
	case p.ColumnsPerSide < 2:
		return fmt.Errorf("%w: columns per side = %d", ErrInvalidParameters, p.ColumnsPerSide)
	}
	return nil
}

// TotalHeight is floors × floorHeight.
func (p Parameters) TotalHeight() float32 {
	return float32(p.Floors) * p.FloorHeight
}

// ColumnsPerFloor counts perimeter columns on one floor with corners counted once.
func (p Parameters) ColumnsPerFloor() int {
	return 2*p.ColumnsPerSide + 2*(p.ColumnsPerSide-2)
}

// TotalColumns is the exact size of each column batch.
func (p Parameters) TotalColumns() int {
	return p.Floors * p.ColumnsPerFloor()
}

// ColumnOffset is the distance from the centre to the column centreline.
func (p Parameters) ColumnOffset() float32 {
	return p.FootprintSize/2 - ColumnWidth/2
}
