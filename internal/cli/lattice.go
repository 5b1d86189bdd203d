package cli

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mc-adrian-lei/adrianlm-glassbox/internal/fca"
	"github.com/mc-adrian-lei/adrianlm-glassbox/internal/lattice"
	"github.com/mc-adrian-lei/adrianlm-glassbox/internal/textctx"
)

// latticeOutput is the JSON payload of the lattice command.
type latticeOutput struct {
	Concepts  []conceptOutput `json:"concepts"`
	Metrics   lattice.Metrics `json:"metrics"`
	Stability []float64       `json:"stability,omitempty"`
}

type conceptOutput struct {
	Extent []string `json:"extent"`
	Intent []string `json:"intent"`
}

// NewLatticeCommand builds the lattice subcommand.
func NewLatticeCommand(opts *RootOptions) *cobra.Command {
	var (
		textFile  string
		limit     int
		stability bool
		samples   int
		seed      int64
	)

	cmd := &cobra.Command{
		Use:   "lattice [text]",
		Short: "Build and inspect the concept lattice of a text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := opts.formatter(cmd.OutOrStdout())

			text, err := resolveText(args, textFile)
			if err != nil {
				return WrapExitError(ExitCommandError, "reading text", err)
			}

			cfg, err := opts.loadConfig()
			if err != nil {
				return WrapExitError(ExitCommandError, "loading config", err)
			}
			if limit <= 0 {
				limit = cfg.ConceptLimit
			}
			if samples <= 0 {
				samples = cfg.StabilitySamples
			}

			ctx := textctx.FromText(text)
			gen := fca.NewGenerator(ctx, fca.WithConceptLimit(limit))
			concepts, err := gen.GenerateAll()
			if err != nil {
				return WrapExitError(ExitCommandError, "concept generation failed", err)
			}
			l := lattice.New(ctx, concepts)

			payload := latticeOutput{Metrics: l.ComputeMetrics()}
			for _, c := range concepts {
				payload.Concepts = append(payload.Concepts, conceptOutput{
					Extent: ctx.ObjectNames(c.Extent),
					Intent: ctx.AttributeNames(c.Intent),
				})
			}
			if stability {
				rng := rand.New(rand.NewSource(seed))
				payload.Stability = make([]float64, l.Len())
				for i := 0; i < l.Len(); i++ {
					payload.Stability[i] = l.StabilityIndex(i, samples, rng)
				}
			}

			if opts.Format == "json" {
				return out.Success(payload)
			}
			renderLattice(out, payload)
			return nil
		},
	}

	cmd.Flags().StringVar(&textFile, "file", "", "read the text from a file")
	cmd.Flags().IntVar(&limit, "limit", 0, "concept generation ceiling (default from config)")
	cmd.Flags().BoolVar(&stability, "stability", false, "compute per-concept stability indices")
	cmd.Flags().IntVar(&samples, "samples", 0, "stability samples per concept (default from config)")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed for stability sampling")
	return cmd
}

func renderLattice(out *Formatter, payload latticeOutput) {
	for i, c := range payload.Concepts {
		line := fmt.Sprintf("c%-3d {%s} / {%s}",
			i, strings.Join(c.Extent, " "), strings.Join(c.Intent, " "))
		if payload.Stability != nil {
			line += fmt.Sprintf("  stability %.3f", payload.Stability[i])
		}
		fmt.Fprintln(out.Writer, line)
	}
	fmt.Fprintf(out.Writer, "metrics: %s\n", metricsLine(payload.Metrics))
	fmt.Fprintf(out.Writer, "irreducibles: %d join, %d meet\n",
		payload.Metrics.JoinIrreducible, payload.Metrics.MeetIrreducible)
}
