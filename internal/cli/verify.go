package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mc-adrian-lei/adrianlm-glassbox/internal/config"
	"github.com/mc-adrian-lei/adrianlm-glassbox/internal/detector"
	"github.com/mc-adrian-lei/adrianlm-glassbox/internal/lattice"
	"github.com/mc-adrian-lei/adrianlm-glassbox/internal/verifier"
)

// NewVerifyCommand builds the verify subcommand.
func NewVerifyCommand(opts *RootOptions) *cobra.Command {
	var (
		citations  []string
		answerFile string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "verify [answer]",
		Short: "Verify an answer against citation texts",
		Long: "Builds a ground-truth lattice from the citations and an answer " +
			"lattice from the answer, then reports entailments only the answer makes.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := opts.formatter(cmd.OutOrStdout())

			if len(citations) == 0 {
				return NewExitError(ExitCommandError, "at least one --citation is required")
			}
			answer, err := resolveText(args, answerFile)
			if err != nil {
				return WrapExitError(ExitCommandError, "reading answer", err)
			}

			cfg, err := opts.loadConfig()
			if err != nil {
				return WrapExitError(ExitCommandError, "loading config", err)
			}
			if limit <= 0 {
				limit = cfg.ConceptLimit
			}

			d := detector.New(verifier.New(verifier.WithConceptLimit(limit)))
			report, err := d.Detect(citations, answer)
			if err != nil {
				return WrapExitError(ExitCommandError, "verification failed", err)
			}

			if opts.Format == "json" {
				if err := out.Success(report); err != nil {
					return err
				}
			} else {
				renderReport(out, report)
			}

			if report.Status == detector.StatusHallucination {
				return NewExitError(ExitFailure, "hallucinations detected")
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&citations, "citation", nil, "citation text (repeatable)")
	cmd.Flags().StringVar(&answerFile, "answer-file", "", "read the answer from a file")
	cmd.Flags().IntVar(&limit, "limit", 0, "concept generation ceiling (default from config)")
	return cmd
}

func resolveText(args []string, file string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	if len(args) > 0 {
		return args[0], nil
	}
	return "", nil
}

func renderReport(out *Formatter, report *detector.Report) {
	fmt.Fprintf(out.Writer, "status:     %s\n", report.Status)
	fmt.Fprintf(out.Writer, "confidence: %.3f\n", report.Confidence)
	if len(report.Findings) > 0 {
		fmt.Fprintln(out.Writer, "findings:")
		for _, f := range report.Findings {
			fmt.Fprintf(out.Writer, "  - %s (%s)\n", f.Description, f.Severity)
		}
	}
	for _, w := range report.Warnings {
		fmt.Fprintf(out.Writer, "warning: %s\n", w)
	}
	fmt.Fprintf(out.Writer, "truth:  %s\n", metricsLine(report.Result.Truth))
	fmt.Fprintf(out.Writer, "answer: %s\n", metricsLine(report.Result.Answer))
}

func metricsLine(m lattice.Metrics) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d concepts, %d edges, density %.3f, beta0 %d, beta1 %d",
		m.ConceptCount, m.EdgeCount, m.Density, m.Beta0, m.Beta1)
	return b.String()
}

func (o *RootOptions) loadConfig() (config.Config, error) {
	if o.Config == "" {
		return config.Default(), nil
	}
	return config.Load(o.Config)
}
