package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chatforge/blockflow/internal/codegen"
	"github.com/chatforge/blockflow/internal/ir"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Schemas string   // path to a CUE schema table, empty = builtin
	Entries []string // explicit entry block ids, empty = every EVENT block
	Output  string   // output file path
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <graph-file>",
		Short: "Compile a block graph into a response program",
		Long: `Compile a graph document (JSON or YAML) into the response program
its blocks describe.

Entry points default to every EVENT block in the graph; --entry narrows
them. Unreachable blocks and missing template fields are reported as
warnings, never as errors.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Schemas, "schemas", "", "CUE schema table (default: builtin blocks)")
	cmd.Flags().StringArrayVar(&opts.Entries, "entry", nil, "entry block id (repeatable; default: all EVENT blocks)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write generated code to file")

	return cmd
}

func runCompile(opts *CompileOptions, graphPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	loaded, err := LoadGraph(graphPath, opts.Schemas)
	if err != nil {
		return outputLoadError(formatter, err)
	}
	formatter.VerboseLog("Loaded %d block(s), %d connection(s) from %s",
		loaded.Graph.Len(), len(loaded.Graph.Connections()), graphPath)

	entries := opts.Entries
	if len(entries) == 0 {
		entries = eventEntries(loaded)
	}
	if len(entries) == 0 {
		return outputCommandError(formatter, ErrCodeGeneric, "graph has no EVENT blocks and no --entry was given")
	}

	result, err := codegen.Compile(loaded.Graph, entries)
	if err != nil {
		var ce *codegen.CompileError
		if errors.As(err, &ce) {
			return outputCommandError(formatter, ErrCodeGeneric,
				fmt.Sprintf("entry blocks not found: %v", ce.MissingEntryIDs))
		}
		return outputCommandError(formatter, ErrCodeGeneric, err.Error())
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(result.Code), 0644); err != nil {
			return outputCommandError(formatter, ErrCodeWriteFailed, fmt.Sprintf("writing %s: %v", opts.Output, err))
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ Compiled %d block(s) from %d entry point(s)\n\n",
		result.Stats.BlocksEmitted, result.Stats.EntryCount)
	fmt.Fprintln(formatter.Writer, result.Code)
	for _, w := range result.Warnings {
		fmt.Fprintf(formatter.Writer, "warning: %s\n", w)
	}
	if opts.Output != "" {
		fmt.Fprintf(formatter.Writer, "Wrote program to %s\n", opts.Output)
	}
	return nil
}

// eventEntries returns the ids of every EVENT block, in stable order.
func eventEntries(loaded *LoadedGraph) []string {
	var entries []string
	for _, inst := range loaded.Graph.Instances() {
		if schema, ok := loaded.Registry.Get(inst.BlockType); ok && schema.Category == ir.CategoryEvent {
			entries = append(entries, inst.ID)
		}
	}
	return entries
}

func outputLoadError(formatter *OutputFormatter, err error) error {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return outputCommandError(formatter, loadErr.Code, loadErr.Message)
	}
	return outputCommandError(formatter, ErrCodeGeneric, err.Error())
}

func outputCommandError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return WrapExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message), nil)
}
