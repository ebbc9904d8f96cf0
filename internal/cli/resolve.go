package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chatforge/blockflow/internal/engine"
	"github.com/chatforge/blockflow/internal/ir"
)

// ResolveOptions holds flags for the resolve command.
type ResolveOptions struct {
	*RootOptions
	Schemas  string
	Entry    string
	Text     string
	Vars     []string // name=value pairs
	MaxDepth int
	Path     bool // walk the full execution path instead of one step
}

// ResolveResult is the payload for resolve output.
type ResolveResult struct {
	Entry     string   `json:"entry"`
	NextBlocks []string `json:"next_blocks,omitempty"`
	Path      []string `json:"path,omitempty"`
}

// NewResolveCommand creates the resolve command.
func NewResolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ResolveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "resolve <graph-file>",
		Short: "Resolve which blocks execute for an incoming message",
		Long: `Resolve execution against a runtime context built from --text and
--var flags. By default prints the immediate next blocks from --entry;
with --path, walks the whole execution path.

Condition edges whose predicate does not match the context are skipped;
a malformed predicate never matches.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Schemas, "schemas", "", "CUE schema table (default: builtin blocks)")
	cmd.Flags().StringVar(&opts.Entry, "entry", "", "entry block id (required)")
	cmd.Flags().StringVar(&opts.Text, "text", "", "incoming message text")
	cmd.Flags().StringArrayVar(&opts.Vars, "var", nil, "conversation variable, name=value (repeatable)")
	cmd.Flags().IntVar(&opts.MaxDepth, "max-depth", engine.DefaultMaxDepth, "execution path depth bound")
	cmd.Flags().BoolVar(&opts.Path, "path", false, "walk the full execution path")
	_ = cmd.MarkFlagRequired("entry")

	return cmd
}

func runResolve(opts *ResolveOptions, graphPath string, cmd *cobra.Command) error {
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

	ctx := ir.RuntimeContext{IncomingText: opts.Text}
	for _, pair := range opts.Vars {
		name, value, found := strings.Cut(pair, "=")
		if !found || name == "" {
			return outputCommandError(formatter, ErrCodeGeneric,
				fmt.Sprintf("invalid --var %q: want name=value", pair))
		}
		if ctx.Variables == nil {
			ctx.Variables = make(map[string]string)
		}
		ctx.Variables[name] = value
	}

	resolver := engine.NewResolver(loaded.Graph)
	result := ResolveResult{Entry: opts.Entry}

	if opts.Path {
		path, err := resolver.ExecutionPath(opts.Entry, ctx, opts.MaxDepth)
		if err != nil {
			return outputCommandError(formatter, ErrCodeGeneric, err.Error())
		}
		result.Path = path
	} else {
		next, err := resolver.NextBlocks(opts.Entry, ctx)
		if err != nil {
			return outputCommandError(formatter, ErrCodeGeneric, err.Error())
		}
		result.NextBlocks = next
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	blocks := result.NextBlocks
	label := "Next blocks"
	if opts.Path {
		blocks = result.Path
		label = "Execution path"
	}
	if len(blocks) == 0 {
		fmt.Fprintf(formatter.Writer, "%s: (none)\n", label)
		return nil
	}
	fmt.Fprintf(formatter.Writer, "%s:\n", label)
	for _, id := range blocks {
		inst, _ := loaded.Graph.Instance(id)
		fmt.Fprintf(formatter.Writer, "  %s (%s)\n", id, inst.BlockType)
	}
	return nil
}
