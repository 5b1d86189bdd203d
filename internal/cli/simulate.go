package cli

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/mc-adrian-lei/adrianlm-glassbox/internal/field"
	"github.com/mc-adrian-lei/adrianlm-glassbox/internal/soul"
)

// NewSimulateCommand builds the simulate subcommand: it spawns trauma
// wells, runs the antigravity protocol, and reports whether the field
// reached phase-lock.
func NewSimulateCommand(opts *RootOptions) *cobra.Command {
	var (
		soulPath string
		traumas  []string
		steps    int
		seed     int64
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the semantic field antigravity protocol",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := opts.formatter(cmd.OutOrStdout())

			cfg, err := opts.loadConfig()
			if err != nil {
				return WrapExitError(ExitCommandError, "loading config", err)
			}

			physics := cfg.Physics
			liftTokens := field.DefaultCoherenceTokens
			wellMass := 100.0
			if soulPath != "" {
				s, err := soul.Load(soulPath)
				if err != nil {
					return WrapExitError(ExitCommandError, "loading soul", err)
				}
				if s.Physics.GravityConstant > 0 {
					physics.GravityConstant = s.Physics.GravityConstant
				}
				if s.Physics.DragCoefficient > 0 {
					physics.DragCoefficient = s.Physics.DragCoefficient
				}
				if s.Physics.PhaseLockThreshold > 0 {
					physics.PhaseLockThreshold = s.Physics.PhaseLockThreshold
				}
				if len(s.Gravity.AntigravityTriggers) > 0 {
					liftTokens = s.Gravity.AntigravityTriggers
				}
				if s.Gravity.HighMassThreshold > 0 {
					wellMass = s.Gravity.HighMassThreshold
				}
			}

			rng := rand.New(rand.NewSource(seed))
			f := field.NewField(
				field.WithGravity(physics.GravityConstant),
				field.WithDrag(physics.DragCoefficient),
				field.WithTimeStep(physics.TimeStep),
			)
			for _, token := range traumas {
				pos := r3.Vec{
					X: rng.Float64() * 10,
					Y: rng.Float64() * 10,
					Z: rng.Float64() * 10,
				}
				trauma := field.NewTraumaAttractor(token, wellMass, pos)
				f.Add(trauma)
				// Seed a few low-mass thoughts around each well so the
				// protocol has something to free.
				for i := 0; i < 3; i++ {
					offset := r3.Vec{
						X: rng.NormFloat64(),
						Y: rng.NormFloat64(),
						Z: rng.NormFloat64(),
					}
					f.Add(field.NewParticle(
						fmt.Sprintf("%s_thought_%d", token, i),
						0.5, 0.5, r3.Add(pos, offset)))
				}
			}

			protocol := field.NewProtocol(f,
				field.WithEscapeThreshold(physics.EscapeVelocityThreshold),
				field.WithPhaseLockThreshold(physics.PhaseLockThreshold),
				field.WithCoherenceTokens(liftTokens),
				field.WithRand(rng),
			)
			report := protocol.Execute(steps)

			if opts.Format == "json" {
				return out.Success(report)
			}
			fmt.Fprintf(out.Writer, "status:  %s\n", report.Status)
			fmt.Fprintf(out.Writer, "message: %s\n", report.Message)
			fmt.Fprintf(out.Writer, "alpha:   %.3f\n", report.FinalAlpha)
			fmt.Fprintf(out.Writer, "phi:     %.3f\n", report.FinalPhi)
			if len(report.LiftTokens) > 0 {
				fmt.Fprintf(out.Writer, "lift:    %v\n", report.LiftTokens)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&soulPath, "soul", "", "soul file overriding physics and lift tokens")
	cmd.Flags().StringArrayVar(&traumas, "trauma", []string{"eviction"}, "trauma well token (repeatable)")
	cmd.Flags().IntVar(&steps, "steps", 100, "maximum simulation steps")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed for particle placement")
	return cmd
}
