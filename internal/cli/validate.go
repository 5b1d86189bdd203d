package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mc-adrian-lei/adrianlm-glassbox/internal/soul"
)

// NewValidateCommand builds the validate subcommand: it resolves the
// configuration (and optionally a soul file) and reports what the
// engine would actually run with.
func NewValidateCommand(opts *RootOptions) *cobra.Command {
	var soulPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration and identity files",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := opts.formatter(cmd.OutOrStdout())

			cfg, err := opts.loadConfig()
			if err != nil {
				if ferr := out.Error("CONFIG", err.Error()); ferr != nil {
					return ferr
				}
				return WrapExitError(ExitCommandError, "invalid config", err)
			}

			if soulPath != "" {
				if _, err := soul.Load(soulPath); err != nil {
					if ferr := out.Error("SOUL", err.Error()); ferr != nil {
						return ferr
					}
					return WrapExitError(ExitCommandError, "invalid soul", err)
				}
			}

			if opts.Format == "json" {
				return out.Success(cfg)
			}
			fmt.Fprintf(out.Writer, "concept limit:     %d\n", cfg.ConceptLimit)
			fmt.Fprintf(out.Writer, "stability samples: %d\n", cfg.StabilitySamples)
			fmt.Fprintf(out.Writer, "gravity:           %g\n", cfg.Physics.GravityConstant)
			fmt.Fprintf(out.Writer, "drag:              %g\n", cfg.Physics.DragCoefficient)
			fmt.Fprintf(out.Writer, "time step:         %g\n", cfg.Physics.TimeStep)
			fmt.Fprintf(out.Writer, "phase lock:        %g\n", cfg.Physics.PhaseLockThreshold)
			return nil
		},
	}

	cmd.Flags().StringVar(&soulPath, "soul", "", "also validate a soul identity file")
	return cmd
}
