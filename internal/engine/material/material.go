// Package material holds the surface styles shared by the building geometry.
//
// The solid and wireframe styles are the only channel through which the tower
// moves from blueprint to solid: every building batch refers to one of them by
// Kind, and the renderer resolves the opacity from a single State at draw time.
package material

import "github.com/Faultbox/diwan-tower/pkg/math"

// Kind identifies which shared style a batch is drawn with.
type Kind int

const (
	// Solid is the opaque concrete style.
	Solid Kind = iota
	// Wire is the glowing blueprint style, drawn as edges.
	Wire
)

func (k Kind) String() string {
	switch k {
	case Solid:
		return "solid"
	case Wire:
		return "wire"
	default:
		return "unknown"
	}
}

// Initial opacities before any scroll input.
const (
	InitialSolidOpacity = 0.0
	InitialWireOpacity  = 0.35
)

// State is the pair of shared opacities. Only the camera path controller
// writes it; the render loop reads it.
type State struct {
	SolidOpacity float32
	WireOpacity  float32
}

// NewState returns the blueprint starting state.
func NewState() *State {
	return &State{
		SolidOpacity: InitialSolidOpacity,
		WireOpacity:  InitialWireOpacity,
	}
}

// Opacity returns the current opacity for a shared style.
func (s *State) Opacity(k Kind) float32 {
	if k == Wire {
		return s.WireOpacity
	}
	return s.SolidOpacity
}

// Set writes both opacities, clamped to [0,1].
func (s *State) Set(solid, wire float32) {
	s.SolidOpacity = math.Clamp01(solid)
	s.WireOpacity = math.Clamp01(wire)
}

// Style is the fixed, non-animated part of a material.
type Style struct {
	Color     [3]float32
	Roughness float32
	Metalness float32
	Additive  bool
	Lit       bool
}

// Hex converts 0xRRGGBB to linear-ish RGB in [0,1].
func Hex(c uint32) [3]float32 {
	return [3]float32{
		float32((c>>16)&0xff) / 255,
		float32((c>>8)&0xff) / 255,
		float32(c&0xff) / 255,
	}
}

// Palette used by the tower scene.
var (
	SolidStyle = Style{Color: Hex(0x1a2744), Roughness: 0.7, Metalness: 0.3, Lit: true}
	WireStyle  = Style{Color: Hex(0x00e5ff)}
	GlowStyle  = Style{Color: Hex(0x00e5ff)}
	DustStyle  = Style{Color: Hex(0x00e5ff), Additive: true}

	GridCenterColor = Hex(0x00e5ff)
	GridLineColor   = Hex(0x0a1628)
	BackgroundColor = Hex(0x050a15)
)

// StyleFor returns the fixed style of a shared kind.
func StyleFor(k Kind) Style {
	if k == Wire {
		return WireStyle
	}
	return SolidStyle
}
