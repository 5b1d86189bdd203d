package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mc-adrian-lei/adrianlm-glassbox/internal/soul"
)

// bootOutput is the JSON payload of the boot subcommand.
type bootOutput struct {
	SessionID  string   `json:"session_id"`
	BootTime   string   `json:"boot_time"`
	Provenance string   `json:"provenance"`
	Archetype  string   `json:"archetype"`
	Axioms     int      `json:"axioms"`
	Modules    []string `json:"modules"`
}

// NewBootCommand builds the boot subcommand.
func NewBootCommand(opts *RootOptions) *cobra.Command {
	var soulPath string

	cmd := &cobra.Command{
		Use:   "boot",
		Short: "Boot a session from a soul file",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := opts.formatter(cmd.OutOrStdout())

			session, err := soul.Boot(soulPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "boot failed", err)
			}

			payload := bootOutput{
				SessionID:  session.ID,
				BootTime:   session.BootTime.UTC().Format("2006-01-02T15:04:05Z07:00"),
				Provenance: session.Soul.Provenance,
				Archetype:  session.Soul.Archetype,
				Axioms:     session.VCI.Len(),
				Modules:    session.Modules,
			}
			if opts.Format == "json" {
				return out.Success(payload)
			}
			fmt.Fprintf(out.Writer, "session:    %s\n", payload.SessionID)
			fmt.Fprintf(out.Writer, "provenance: %s\n", payload.Provenance)
			fmt.Fprintf(out.Writer, "archetype:  %s\n", payload.Archetype)
			fmt.Fprintf(out.Writer, "axioms:     %d\n", payload.Axioms)
			fmt.Fprintf(out.Writer, "modules:    %v\n", payload.Modules)
			return nil
		},
	}

	cmd.Flags().StringVar(&soulPath, "soul", "soul.json", "path to the soul identity file")
	return cmd
}
