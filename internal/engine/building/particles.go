package building

import (
	"math/rand/v2"

	"github.com/Faultbox/diwan-tower/pkg/math"
)

// ParticleSpread is the horizontal extent of the dust cloud.
const ParticleSpread = 120

// ParticleCloud is the ambient dust. Base holds the spawn positions; Positions
// holds the displaced positions the renderer uploads each frame. Both are flat
// xyz triples.
type ParticleCloud struct {
	Base      []float32
	Positions []float32
	// Rotation is the cloud's yaw around the tower axis in radians.
	Rotation float32
}

// NewParticleCloud scatters n points uniformly in a box ParticleSpread wide and
// as tall as the tower.
func NewParticleCloud(n int, p Parameters, rng *rand.Rand) *ParticleCloud {
	h := p.TotalHeight()
	base := make([]float32, n*3)
	for i := 0; i < n; i++ {
		base[i*3] = (rng.Float32() - 0.5) * ParticleSpread
		base[i*3+1] = rng.Float32() * h
		base[i*3+2] = (rng.Float32() - 0.5) * ParticleSpread
	}

	positions := make([]float32, len(base))
	copy(positions, base)

	return &ParticleCloud{Base: base, Positions: positions}
}

// Len returns the number of particles.
func (c *ParticleCloud) Len() int {
	return len(c.Base) / 3
}

// At returns the current position of particle i.
func (c *ParticleCloud) At(i int) math.Vec3 {
	return math.Vec3{X: c.Positions[i*3], Y: c.Positions[i*3+1], Z: c.Positions[i*3+2]}
}

// BaseAt returns the spawn position of particle i.
func (c *ParticleCloud) BaseAt(i int) math.Vec3 {
	return math.Vec3{X: c.Base[i*3], Y: c.Base[i*3+1], Z: c.Base[i*3+2]}
}
