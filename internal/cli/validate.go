package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chatforge/blockflow/internal/graph"
)

// ValidationResult holds graph validation results.
type ValidationResult struct {
	Valid       bool               `json:"valid"`
	Diagnostics []graph.Diagnostic `json:"diagnostics,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &struct {
		Schemas string
	}{}

	cmd := &cobra.Command{
		Use:   "validate <graph-file>",
		Short: "Validate a block graph without generating code",
		Long: `Validate a graph document: connection compatibility, cycle freedom,
dangling references, and terminal-reply conventions.

Warnings do not fail the command; diagnostics at error severity exit 1.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, opts.Schemas, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Schemas, "schemas", "", "CUE schema table (default: builtin blocks)")

	return cmd
}

func runValidate(opts *RootOptions, schemasPath, graphPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	loaded, err := LoadGraph(graphPath, schemasPath)
	if err != nil {
		return outputLoadError(formatter, err)
	}

	diags := loaded.Graph.ValidateAll()
	result := ValidationResult{
		Valid:       !hasErrors(diags),
		Diagnostics: diags,
	}

	if formatter.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		if result.Valid && len(diags) == 0 {
			fmt.Fprintln(formatter.Writer, "✓ Graph is valid")
		} else if result.Valid {
			fmt.Fprintf(formatter.Writer, "✓ Graph is valid (%d warning(s))\n", len(diags))
		} else {
			fmt.Fprintln(formatter.Writer, "✗ Graph has errors")
		}
		for _, d := range diags {
			fmt.Fprintf(formatter.Writer, "  [%s] %s: %s (connection %s)\n",
				d.Severity, d.Kind, d.Message, d.ConnectionID)
		}
	}

	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d diagnostic(s)", len(diags)))
	}
	return nil
}

func hasErrors(diags []graph.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == graph.SeverityError {
			return true
		}
	}
	return false
}
