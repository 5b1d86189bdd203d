package field

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"
)

const (
	DefaultGravityConstant = 0.5
	DefaultDragCoefficient = 0.1
	DefaultTimeStep        = 0.1

	// DefaultWellThreshold is the mass above which a particle counts as
	// a gravity well.
	DefaultWellThreshold = 75.0
)

// speedFloor is the speed below which a velocity contributes nothing to
// the coherence measure.
const speedFloor = 0.01

// Field owns a set of particles and advances them under mutual gravity.
// It is not safe for concurrent use; a simulation run is single-writer.
type Field struct {
	particles []*Particle

	gravity float64
	drag    float64
	dt      float64

	time   float64
	energy float64
	phi    float64
	alpha  float64

	logger *slog.Logger
}

// FieldOption configures a Field.
type FieldOption func(*Field)

// WithGravity sets the gravitational constant.
func WithGravity(g float64) FieldOption {
	return func(f *Field) { f.gravity = g }
}

// WithDrag sets the velocity drag coefficient per step.
func WithDrag(d float64) FieldOption {
	return func(f *Field) { f.drag = d }
}

// WithTimeStep sets the integration step.
func WithTimeStep(dt float64) FieldOption {
	return func(f *Field) { f.dt = dt }
}

// WithFieldLogger sets the structured logger.
func WithFieldLogger(l *slog.Logger) FieldOption {
	return func(f *Field) { f.logger = l }
}

// NewField builds an empty field with defaults applied.
func NewField(opts ...FieldOption) *Field {
	f := &Field{
		gravity: DefaultGravityConstant,
		drag:    DefaultDragCoefficient,
		dt:      DefaultTimeStep,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Add appends particles to the field.
func (f *Field) Add(ps ...*Particle) {
	f.particles = append(f.particles, ps...)
}

// Remove drops the first particle with the given token.
func (f *Field) Remove(token string) bool {
	for i, p := range f.particles {
		if p.Token == token {
			f.particles = append(f.particles[:i], f.particles[i+1:]...)
			return true
		}
	}
	return false
}

// ByToken finds a particle by token.
func (f *Field) ByToken(token string) (*Particle, bool) {
	for _, p := range f.particles {
		if p.Token == token {
			return p, true
		}
	}
	return nil, false
}

// Particles returns the live particle slice. Callers must not mutate it
// while a simulation is running.
func (f *Field) Particles() []*Particle { return f.particles }

// Len returns the particle count.
func (f *Field) Len() int { return len(f.particles) }

// Time returns the accumulated simulation time.
func (f *Field) Time() float64 { return f.time }

// Gravity returns the field's gravitational constant.
func (f *Field) Gravity() float64 { return f.gravity }

// Well is a high-mass particle and the total pull it exerts on the rest
// of the field.
type Well struct {
	Particle *Particle
	Pull     float64
}

// DetectWells returns all particles at or above the mass threshold,
// strongest pull first. Ties break by token for determinism.
func (f *Field) DetectWells(threshold float64) []Well {
	var wells []Well
	for _, p := range f.particles {
		if p.Mass < threshold {
			continue
		}
		pull := 0.0
		for _, other := range f.particles {
			if other == p {
				continue
			}
			pull += r3.Norm(other.GravityTo(p, f.gravity))
		}
		wells = append(wells, Well{Particle: p, Pull: pull})
	}
	sort.Slice(wells, func(i, j int) bool {
		if wells[i].Pull != wells[j].Pull {
			return wells[i].Pull > wells[j].Pull
		}
		return wells[i].Particle.Token < wells[j].Particle.Token
	})
	return wells
}

// Energy computes and caches total field energy, kinetic plus pairwise
// gravitational potential.
func (f *Field) Energy() float64 {
	total := 0.0
	for _, p := range f.particles {
		total += p.KineticEnergy()
	}
	for i, p1 := range f.particles {
		for _, p2 := range f.particles[i+1:] {
			total += p1.PotentialEnergy(p2, f.gravity)
		}
	}
	f.energy = total
	return total
}

// Phi measures velocity coherence: mean positive cosine similarity of
// each particle's velocity against the field's mean velocity. Near-zero
// velocities contribute nothing. Fewer than two particles score zero.
func (f *Field) Phi() float64 {
	if len(f.particles) < 2 {
		f.phi = 0
		return 0
	}
	var mean r3.Vec
	for _, p := range f.particles {
		mean = r3.Add(mean, p.Velocity)
	}
	mean = r3.Scale(1/float64(len(f.particles)), mean)
	meanNorm := r3.Norm(mean)

	coherence := 0.0
	for _, p := range f.particles {
		speed := r3.Norm(p.Velocity)
		if speed <= speedFloor || meanNorm <= speedFloor {
			continue
		}
		similarity := r3.Dot(p.Velocity, mean) / (speed * meanNorm)
		if similarity > 0 {
			coherence += similarity
		}
	}
	f.phi = coherence / float64(len(f.particles))
	return f.phi
}

// Alpha measures phase synchrony: half spatial concentration around the
// center of mass, half velocity coherence. Values at or above the
// phase-lock threshold indicate an aligned field.
func (f *Field) Alpha() float64 {
	if len(f.particles) < 2 {
		f.alpha = 0
		return 0
	}
	totalMass := 0.0
	for _, p := range f.particles {
		totalMass += p.Mass
	}
	if totalMass == 0 {
		f.alpha = 0
		return 0
	}

	var center r3.Vec
	for _, p := range f.particles {
		center = r3.Add(center, r3.Scale(p.Mass, p.Position))
	}
	center = r3.Scale(1/totalMass, center)

	distances := make([]float64, len(f.particles))
	for i, p := range f.particles {
		distances[i] = r3.Norm(r3.Sub(p.Position, center))
	}
	meanDist := stat.Mean(distances, nil)
	stdDist := stat.StdDev(distances, nil)

	synchrony := 1.0
	if meanDist > 0 {
		synchrony = 1.0 / (1.0 + stdDist/meanDist)
	}

	f.alpha = 0.5*synchrony + 0.5*f.Phi()
	return f.alpha
}

// Step advances the simulation once: accumulate pairwise forces, apply
// them, move every particle, refresh the diagnostics.
func (f *Field) Step() {
	forces := make([]r3.Vec, len(f.particles))
	for i, p1 := range f.particles {
		for j := i + 1; j < len(f.particles); j++ {
			p2 := f.particles[j]
			pull := p1.GravityTo(p2, f.gravity)
			forces[i] = r3.Add(forces[i], pull)
			forces[j] = r3.Sub(forces[j], pull)
		}
	}
	for i, p := range f.particles {
		p.ApplyForce(forces[i], f.dt)
		p.Advance(f.dt, f.drag)
	}

	f.Energy()
	f.Alpha()
	f.time += f.dt
}

// Simulate runs the given number of steps, logging diagnostics every
// tenth step at debug level.
func (f *Field) Simulate(steps int) {
	for i := 0; i < steps; i++ {
		f.Step()
		if i%10 == 0 {
			f.logger.Debug("field step",
				"step", i,
				"phi", f.phi,
				"alpha", f.alpha,
				"energy", f.energy,
			)
		}
	}
}
