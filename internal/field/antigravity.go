package field

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	DefaultPhaseLockThreshold = 0.85
	DefaultEscapeThreshold    = 75.0

	// influenceRadius bounds how far a well's trap extends.
	influenceRadius = 5.0

	defaultLiftCount = 3
)

// DefaultCoherenceTokens are the lift vocabulary used when no custom
// tokens are configured.
var DefaultCoherenceTokens = []string{
	"Sovereignty",
	"Lattice",
	"Cathedral",
	"Logic",
	"Structure",
	"Truth",
	"Clarity",
}

// EscapeStatus classifies a protocol run.
type EscapeStatus string

const (
	StatusEscapeAchieved   EscapeStatus = "ESCAPE_ACHIEVED"
	StatusEscapeIncomplete EscapeStatus = "ESCAPE_INCOMPLETE"
	StatusNoWells          EscapeStatus = "NO_GRAVITY_WELLS"
)

// Trapped pairs a particle with the well holding it and the speed it
// would need to leave.
type Trapped struct {
	Particle       *Particle
	Well           *Particle
	EscapeVelocity float64
}

// TrajectoryPoint is one step of a protocol run's diagnostics.
type TrajectoryPoint struct {
	Step   int     `json:"step"`
	Alpha  float64 `json:"alpha"`
	Phi    float64 `json:"phi"`
	Energy float64 `json:"energy"`
}

// EscapeReport is the outcome of one protocol execution.
type EscapeReport struct {
	Status        EscapeStatus      `json:"status"`
	Message       string            `json:"message"`
	StepsToEscape int               `json:"steps_to_escape"`
	FinalAlpha    float64           `json:"final_alpha"`
	FinalPhi      float64           `json:"final_phi"`
	FinalEnergy   float64           `json:"final_energy"`
	Trajectory    []TrajectoryPoint `json:"trajectory"`
	LiftTokens    []string          `json:"lift_tokens"`
}

// Protocol drives a field out of gravity wells by injecting coherence
// lift and simulating toward phase-lock.
type Protocol struct {
	field *Field

	escapeThreshold    float64
	phaseLockThreshold float64
	tokens             []string

	rng    *rand.Rand
	logger *slog.Logger
}

// ProtocolOption configures a Protocol.
type ProtocolOption func(*Protocol)

// WithEscapeThreshold sets the well-mass threshold.
func WithEscapeThreshold(t float64) ProtocolOption {
	return func(p *Protocol) { p.escapeThreshold = t }
}

// WithPhaseLockThreshold sets the alpha level treated as escape.
func WithPhaseLockThreshold(t float64) ProtocolOption {
	return func(p *Protocol) { p.phaseLockThreshold = t }
}

// WithCoherenceTokens replaces the lift vocabulary.
func WithCoherenceTokens(tokens []string) ProtocolOption {
	return func(p *Protocol) { p.tokens = tokens }
}

// WithRand sets the randomness source for lift spawn jitter.
func WithRand(rng *rand.Rand) ProtocolOption {
	return func(p *Protocol) { p.rng = rng }
}

// WithProtocolLogger sets the structured logger.
func WithProtocolLogger(l *slog.Logger) ProtocolOption {
	return func(p *Protocol) { p.logger = l }
}

// NewProtocol builds a protocol over the given field.
func NewProtocol(f *Field, opts ...ProtocolOption) *Protocol {
	p := &Protocol{
		field:              f,
		escapeThreshold:    DefaultEscapeThreshold,
		phaseLockThreshold: DefaultPhaseLockThreshold,
		tokens:             DefaultCoherenceTokens,
		rng:                rand.New(rand.NewSource(1)),
		logger:             slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// EscapeVelocity is the classical sqrt(2GM/r) against a well, with the
// distance floored at the singularity bound.
func (p *Protocol) EscapeVelocity(well *Particle, pos r3.Vec) float64 {
	distance := r3.Norm(r3.Sub(pos, well.Position))
	if distance < minSeparation {
		distance = minSeparation
	}
	return math.Sqrt(2 * p.field.Gravity() * well.Mass / distance)
}

// DetectTrapped lists every particle inside a well's influence radius
// moving slower than that well's escape velocity.
func (p *Protocol) DetectTrapped() []Trapped {
	var trapped []Trapped
	for _, well := range p.field.DetectWells(p.escapeThreshold) {
		for _, particle := range p.field.Particles() {
			if particle == well.Particle {
				continue
			}
			distance := r3.Norm(r3.Sub(particle.Position, well.Particle.Position))
			if distance >= influenceRadius {
				continue
			}
			required := p.EscapeVelocity(well.Particle, particle.Position)
			if r3.Norm(particle.Velocity) < required {
				trapped = append(trapped, Trapped{
					Particle:       particle,
					Well:           well.Particle,
					EscapeVelocity: required,
				})
			}
		}
	}
	return trapped
}

// InjectLift spawns up to n coherence lift particles jittered around the
// first target and adds them to the field.
func (p *Protocol) InjectLift(targets []*Particle, n int) []*Particle {
	if n > len(p.tokens) {
		n = len(p.tokens)
	}
	injected := make([]*Particle, 0, n)
	for i := 0; i < n; i++ {
		var pos r3.Vec
		if len(targets) > 0 {
			pos = r3.Add(targets[0].Position, r3.Vec{
				X: p.rng.NormFloat64() * 0.5,
				Y: p.rng.NormFloat64() * 0.5,
				Z: p.rng.NormFloat64() * 0.5,
			})
		} else {
			pos = r3.Vec{
				X: p.rng.Float64() * 10,
				Y: p.rng.Float64() * 10,
				Z: p.rng.Float64() * 10,
			}
		}
		lift := NewCoherenceLift(p.tokens[i], pos)
		p.field.Add(lift)
		injected = append(injected, lift)
		p.logger.Debug("injected coherence lift", "token", lift.Token)
	}
	return injected
}

// PhaseLocked reports whether the field's alpha has reached the
// phase-lock threshold.
func (p *Protocol) PhaseLocked() bool {
	return p.field.Alpha() >= p.phaseLockThreshold
}

// Execute runs the full protocol: detect trapped particles, inject
// lift, and simulate until phase-lock or maxSteps.
func (p *Protocol) Execute(maxSteps int) *EscapeReport {
	trapped := p.DetectTrapped()
	p.logger.Info("antigravity protocol start",
		"trapped", len(trapped),
		"phase_lock_threshold", p.phaseLockThreshold,
	)

	if len(trapped) == 0 {
		return &EscapeReport{
			Status:  StatusNoWells,
			Message: "no trapped particles detected",
			// Alpha recomputes Phi as a side effect, so order matters.
			FinalAlpha: p.field.Alpha(),
			FinalPhi:   p.field.phi,
		}
	}

	targets := make([]*Particle, len(trapped))
	for i, t := range trapped {
		targets[i] = t.Particle
	}
	lifts := p.InjectLift(targets, defaultLiftCount)
	liftTokens := make([]string, len(lifts))
	for i, l := range lifts {
		liftTokens[i] = l.Token
	}

	trajectory := make([]TrajectoryPoint, 0, maxSteps)
	for step := 0; step < maxSteps; step++ {
		p.field.Step()
		trajectory = append(trajectory, TrajectoryPoint{
			Step:   step,
			Alpha:  p.field.alpha,
			Phi:    p.field.phi,
			Energy: p.field.energy,
		})

		if p.field.alpha >= p.phaseLockThreshold {
			p.logger.Info("phase lock achieved", "step", step, "alpha", p.field.alpha)
			return &EscapeReport{
				Status:        StatusEscapeAchieved,
				Message:       "phase-lock successful, escape velocity reached",
				StepsToEscape: step,
				FinalAlpha:    p.field.alpha,
				FinalPhi:      p.field.phi,
				FinalEnergy:   p.field.energy,
				Trajectory:    trajectory,
				LiftTokens:    liftTokens,
			}
		}
	}

	p.logger.Info("escape incomplete", "steps", maxSteps, "alpha", p.field.alpha)
	return &EscapeReport{
		Status:      StatusEscapeIncomplete,
		Message:     fmt.Sprintf("phase-lock not achieved within %d steps", maxSteps),
		FinalAlpha:  p.field.alpha,
		FinalPhi:    p.field.phi,
		FinalEnergy: p.field.energy,
		Trajectory:  trajectory,
		LiftTokens:  liftTokens,
	}
}
