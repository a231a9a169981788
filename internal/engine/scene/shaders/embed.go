// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// InstancedVertexShader transforms instanced boxes and edge sets.
//
//go:embed instanced.vert
var InstancedVertexShader string

// BuildingFragmentShader shades the shared solid and wire materials and the
// glow lines, with the light rig and exponential fog.
//
//go:embed building.frag
var BuildingFragmentShader string

// PointsVertexShader places the rotating dust cloud with size attenuation.
//
//go:embed points.vert
var PointsVertexShader string

// PointsFragmentShader draws round, fogged dust points.
//
//go:embed points.frag
var PointsFragmentShader string

// LinesVertexShader is the vertex shader for the ground grid.
//
//go:embed lines.vert
var LinesVertexShader string

// LinesFragmentShader is the fragment shader for the ground grid.
//
//go:embed lines.frag
var LinesFragmentShader string

// FullscreenVertexShader emits a viewport-covering triangle for post passes.
//
//go:embed fullscreen.vert
var FullscreenVertexShader string

// BrightFragmentShader extracts the bright parts of the scene for bloom.
//
//go:embed bright.frag
var BrightFragmentShader string

// BlurFragmentShader is a separable gaussian blur.
//
//go:embed blur.frag
var BlurFragmentShader string

// CompositeFragmentShader adds bloom, applies ACES tone mapping and encodes
// the result for display.
//
//go:embed composite.frag
var CompositeFragmentShader string
