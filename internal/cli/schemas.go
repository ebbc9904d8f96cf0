package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chatforge/blockflow/internal/ir"
	"github.com/chatforge/blockflow/internal/registry"
)

// SchemasOptions holds flags for the schemas command.
type SchemasOptions struct {
	*RootOptions
	Schemas  string
	Category string
	Context  string
	Search   string
}

// NewSchemasCommand creates the schemas command.
func NewSchemasCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SchemasOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "schemas",
		Short: "List registered block schemas",
		Long: `List block schemas from the builtin table or a CUE file, optionally
filtered by category, compatible context, or a name substring. Filters
combine with AND.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchemas(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Schemas, "schemas", "", "CUE schema table (default: builtin blocks)")
	cmd.Flags().StringVar(&opts.Category, "category", "", "filter by category (EVENT, REPLY, ...)")
	cmd.Flags().StringVar(&opts.Context, "context", "", "filter by compatible context")
	cmd.Flags().StringVar(&opts.Search, "search", "", "filter by block-type substring")

	return cmd
}

func runSchemas(opts *SchemasOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	reg, err := loadRegistry(opts.Schemas)
	if err != nil {
		return outputLoadError(formatter, err)
	}

	schemas, err := filterSchemas(reg, opts)
	if err != nil {
		return outputCommandError(formatter, ErrCodeGeneric, err.Error())
	}

	if formatter.Format == "json" {
		return formatter.Success(schemas)
	}

	if len(schemas) == 0 {
		fmt.Fprintln(formatter.Writer, "No schemas match")
		return nil
	}
	fmt.Fprintf(formatter.Writer, "%d schema(s):\n", len(schemas))
	for _, s := range schemas {
		fmt.Fprintf(formatter.Writer, "  %-20s %-10s contexts=%s\n",
			s.BlockType, s.Category, strings.Join(s.CompatibleContexts, ","))
	}
	return nil
}

func filterSchemas(reg *registry.Registry, opts *SchemasOptions) ([]ir.BlockSchema, error) {
	schemas := reg.All()

	if opts.Category != "" {
		c := ir.Category(strings.ToUpper(opts.Category))
		if !c.Valid() {
			return nil, fmt.Errorf("unknown category %q", opts.Category)
		}
		schemas = intersect(schemas, reg.ListByCategory(c))
	}
	if opts.Context != "" {
		schemas = intersect(schemas, reg.ListByContext(opts.Context))
	}
	if opts.Search != "" {
		schemas = intersect(schemas, reg.Search(opts.Search))
	}
	return schemas, nil
}

func intersect(a, b []ir.BlockSchema) []ir.BlockSchema {
	keep := make(map[string]bool, len(b))
	for _, s := range b {
		keep[s.BlockType] = true
	}
	out := a[:0:0]
	for _, s := range a {
		if keep[s.BlockType] {
			out = append(out, s)
		}
	}
	return out
}
