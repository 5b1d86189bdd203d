package field

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// minSeparation bounds all inverse-distance terms away from the
// singularity at r = 0.
const minSeparation = 0.1

// Particle is a token with semantic mass embedded in 3-space.
// Mass for ordinary particles is intensity times provenance.
type Particle struct {
	Token    string
	Mass     float64
	Position r3.Vec
	Velocity r3.Vec

	// Charge is emotional valence in [-1, 1].
	Charge     float64
	Provenance float64
	Intensity  float64
}

// NewParticle creates an ordinary particle at rest.
func NewParticle(token string, intensity, provenance float64, pos r3.Vec) *Particle {
	return &Particle{
		Token:      token,
		Mass:       intensity * provenance,
		Position:   pos,
		Charge:     0,
		Provenance: provenance,
		Intensity:  intensity,
	}
}

// NewTraumaAttractor creates a stationary high-mass well particle with
// maximal negative valence.
func NewTraumaAttractor(token string, mass float64, pos r3.Vec) *Particle {
	return &Particle{
		Token:      token,
		Mass:       mass,
		Position:   pos,
		Charge:     -1,
		Provenance: 1,
		Intensity:  mass,
	}
}

// NewCoherenceLift creates a stabilizing particle with fixed upward
// velocity and positive valence.
func NewCoherenceLift(token string, pos r3.Vec) *Particle {
	return &Particle{
		Token:      token,
		Mass:       50,
		Position:   pos,
		Velocity:   r3.Vec{Z: 5},
		Charge:     1,
		Provenance: 1,
		Intensity:  0.8,
	}
}

// ApplyForce integrates a force into velocity over dt.
func (p *Particle) ApplyForce(force r3.Vec, dt float64) {
	if p.Mass <= 0 {
		return
	}
	p.Velocity = r3.Add(p.Velocity, r3.Scale(dt/p.Mass, force))
}

// Advance moves the particle by its velocity over dt and then applies
// linear drag to the velocity.
func (p *Particle) Advance(dt, drag float64) {
	p.Position = r3.Add(p.Position, r3.Scale(dt, p.Velocity))
	p.Velocity = r3.Scale(1-drag, p.Velocity)
}

// GravityTo returns the force vector pulling p toward other.
// Inside minSeparation the force is zero.
func (p *Particle) GravityTo(other *Particle, g float64) r3.Vec {
	displacement := r3.Sub(other.Position, p.Position)
	distance := r3.Norm(displacement)
	if distance < minSeparation {
		return r3.Vec{}
	}
	magnitude := g * p.Mass * other.Mass / (distance * distance)
	return r3.Scale(magnitude/distance, displacement)
}

// KineticEnergy is 0.5 m v².
func (p *Particle) KineticEnergy() float64 {
	return 0.5 * p.Mass * r3.Norm2(p.Velocity)
}

// PotentialEnergy is the pairwise gravitational potential -G m1 m2 / r,
// zero inside minSeparation.
func (p *Particle) PotentialEnergy(other *Particle, g float64) float64 {
	distance := r3.Norm(r3.Sub(p.Position, other.Position))
	if distance < minSeparation {
		return 0
	}
	return -g * p.Mass * other.Mass / distance
}

func (p *Particle) String() string {
	return fmt.Sprintf("Particle(%q, mass=%.2f, charge=%.2f)", p.Token, p.Mass, p.Charge)
}
