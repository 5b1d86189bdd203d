package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mc-adrian-lei/adrianlm-glassbox/internal/harness"
)

// testOutput is the JSON payload of the test subcommand.
type testOutput struct {
	Total   int              `json:"total"`
	Passed  int              `json:"passed"`
	Failed  int              `json:"failed"`
	Results []scenarioResult `json:"results"`
}

type scenarioResult struct {
	Name     string   `json:"name"`
	Passed   bool     `json:"passed"`
	Failures []string `json:"failures,omitempty"`
}

// NewTestCommand builds the test subcommand: it runs every YAML
// scenario in a directory and fails if any expectation is missed.
func NewTestCommand(opts *RootOptions) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Run verification scenarios from a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := opts.formatter(cmd.OutOrStdout())

			scenarios, err := harness.LoadScenarios(dir)
			if err != nil {
				return WrapExitError(ExitCommandError, "loading scenarios", err)
			}
			if len(scenarios) == 0 {
				return NewExitError(ExitCommandError, fmt.Sprintf("no scenarios found in %s", dir))
			}

			results, err := harness.RunAll(scenarios)
			if err != nil {
				return WrapExitError(ExitCommandError, "running scenarios", err)
			}

			payload := testOutput{Total: len(results)}
			for _, r := range results {
				sr := scenarioResult{
					Name:     r.Scenario.Name,
					Passed:   r.Passed,
					Failures: r.Failures,
				}
				payload.Results = append(payload.Results, sr)
				if r.Passed {
					payload.Passed++
				} else {
					payload.Failed++
				}
			}

			if opts.Format == "json" {
				if err := out.Success(payload); err != nil {
					return err
				}
			} else {
				for _, r := range payload.Results {
					mark := "ok"
					if !r.Passed {
						mark = "FAIL"
					}
					fmt.Fprintf(out.Writer, "%-4s %s\n", mark, r.Name)
					for _, f := range r.Failures {
						fmt.Fprintf(out.Writer, "     %s\n", f)
					}
				}
				fmt.Fprintf(out.Writer, "%d scenarios: %d passed, %d failed\n",
					payload.Total, payload.Passed, payload.Failed)
			}

			if payload.Failed > 0 {
				return NewExitError(ExitFailure,
					fmt.Sprintf("%d of %d scenarios failed", payload.Failed, payload.Total))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "scenarios", "directory of scenario YAML files")
	return cmd
}
