// Package animation drives the idle motion that runs independently of scroll:
// glow lines pulse, dust drifts and the dust cloud slowly turns.
package animation

import (
	gomath "math"
	"time"

	"github.com/Faultbox/diwan-tower/internal/engine/building"
)

// Glow pulse: opacity = GlowBase + GlowAmplitude*sin(GlowSpeed*t + GlowPhaseStep*floor).
const (
	GlowBase      = building.GlowBaseOpacity
	GlowAmplitude = 0.08
	GlowSpeed     = 1.5
	GlowPhaseStep = 0.3
)

// Dust drift is a displacement from each particle's spawn point, so the cloud
// never accumulates error or needs velocity state.
const (
	DriftAmplitudeY = 1.0
	DriftSpeedY     = 0.5
	DriftPhaseY     = 0.15
	DriftAmplitudeX = 0.6
	DriftSpeedX     = 0.3
	DriftPhaseX     = 0.09
	CloudSpin       = 0.003 // rad/s
)

// Idle owns the elapsed-time accumulator and writes glow opacities and
// particle positions. It never touches the camera or the shared materials.
type Idle struct {
	elapsed time.Duration
	glow    []building.GlowLine
	cloud   *building.ParticleCloud
}

// NewIdle animates the glow lines and dust of bp in place.
func NewIdle(bp *building.Blueprint) *Idle {
	a := &Idle{
		glow:  bp.GlowLines,
		cloud: bp.Particles,
	}
	a.Apply(0)
	return a
}

// Advance adds dt to the accumulator and applies the new phase.
// Negative steps are ignored.
func (a *Idle) Advance(dt time.Duration) {
	if dt > 0 {
		a.elapsed += dt
	}
	a.Apply(a.elapsed.Seconds())
}

// Elapsed returns the accumulated time.
func (a *Idle) Elapsed() time.Duration {
	return a.elapsed
}

// Apply writes the idle state for elapsed seconds t. It depends only on t and
// the spawn positions, so equal t gives equal output.
func (a *Idle) Apply(t float64) {
	for i := range a.glow {
		a.glow[i].Opacity = GlowOpacity(t, a.glow[i].Floor)
	}

	if a.cloud == nil {
		return
	}
	base, pos := a.cloud.Base, a.cloud.Positions
	for k := 0; k < len(base)/3; k++ {
		dx, dy := Drift(t, k)
		pos[k*3] = base[k*3] + dx
		pos[k*3+1] = base[k*3+1] + dy
		pos[k*3+2] = base[k*3+2]
	}
	a.cloud.Rotation = float32(t * CloudSpin)
}

// GlowOpacity is the pulse of the glow line on the given floor at time t.
func GlowOpacity(t float64, floor int) float32 {
	return float32(GlowBase + GlowAmplitude*gomath.Sin(GlowSpeed*t+GlowPhaseStep*float64(floor)))
}

// Drift returns the horizontal and vertical displacement of particle k at time t.
func Drift(t float64, k int) (dx, dy float32) {
	dy = float32(DriftAmplitudeY * gomath.Sin(DriftSpeedY*t+DriftPhaseY*float64(k)))
	dx = float32(DriftAmplitudeX * gomath.Cos(DriftSpeedX*t+DriftPhaseX*float64(k)))
	return dx, dy
}
