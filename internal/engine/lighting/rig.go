package lighting

import (
	"github.com/Faultbox/diwan-tower/internal/engine/material"
	"github.com/Faultbox/diwan-tower/pkg/math"
)

// Rig is the fixed set of lights illuminating the tower.
type Rig struct {
	AmbientColor     [3]float32
	AmbientIntensity float32

	// SunPosition is where the directional light shines from, toward the origin.
	SunPosition  math.Vec3
	SunColor     [3]float32
	SunIntensity float32

	Points *PointLightBuffer
}

// DefaultRig returns the blue ambient fill, a white key light and three cyan
// accents placed around and under the tower.
func DefaultRig() *Rig {
	cyan := material.Hex(0x00e5ff)
	r := &Rig{
		AmbientColor:     material.Hex(0x1a2a4a),
		AmbientIntensity: 1.2,
		SunPosition:      math.Vec3{X: 50, Y: 100, Z: 50},
		SunColor:         [3]float32{1, 1, 1},
		SunIntensity:     0.8,
		Points:           NewPointLightBuffer(),
	}
	r.Points.SetLights([]PointLight{
		{Position: [3]float32{-40, 60, 40}, Color: cyan, Intensity: 2.5, Range: 200},
		{Position: [3]float32{40, 40, -40}, Color: cyan, Intensity: 1.5, Range: 150},
		{Position: [3]float32{0, 5, 0}, Color: cyan, Intensity: 0.5, Range: 80},
	})
	return r
}

// SunDirection returns the normalized direction pointing toward the light.
func (r *Rig) SunDirection() [3]float32 {
	return r.SunPosition.Normalize().Array()
}

// Ambient returns the ambient colour scaled by its intensity.
func (r *Rig) Ambient() [3]float32 {
	return scale(r.AmbientColor, r.AmbientIntensity)
}

// Sun returns the directional colour scaled by its intensity.
func (r *Rig) Sun() [3]float32 {
	return scale(r.SunColor, r.SunIntensity)
}

func scale(c [3]float32, k float32) [3]float32 {
	return [3]float32{c[0] * k, c[1] * k, c[2] * k}
}
