package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chatforge/blockflow/internal/store"
)

// SaveOptions holds flags for the save command.
type SaveOptions struct {
	*RootOptions
	Schemas string
	DB      string
	Name    string
}

// SaveResult is the payload for save output.
type SaveResult struct {
	DocName  string `json:"doc_name"`
	Seq      int64  `json:"seq"`
	Hash     string `json:"hash"`
	Inserted bool   `json:"inserted"`
}

// NewSaveCommand creates the save command.
func NewSaveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SaveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "save <graph-file>",
		Short: "Save a graph document revision",
		Long: `Save a graph document into the revision store. The document must load
cleanly against its schema table first; a save of unchanged content is a
no-op and reports the existing revision.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSave(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Schemas, "schemas", "", "CUE schema table (default: builtin blocks)")
	cmd.Flags().StringVar(&opts.DB, "db", "blockflow.db", "revision database path")
	cmd.Flags().StringVar(&opts.Name, "name", "", "document name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runSave(opts *SaveOptions, graphPath string, cmd *cobra.Command) error {
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

	s, err := store.Open(opts.DB)
	if err != nil {
		return outputCommandError(formatter, ErrCodeStoreFailed, fmt.Sprintf("opening %s: %v", opts.DB, err))
	}
	defer s.Close()

	rev, inserted, err := s.SaveRevision(cmd.Context(), opts.Name, loaded.Doc)
	if err != nil {
		return outputCommandError(formatter, ErrCodeStoreFailed, err.Error())
	}

	result := SaveResult{
		DocName:  rev.DocName,
		Seq:      rev.Seq,
		Hash:     rev.Hash,
		Inserted: inserted,
	}
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	if inserted {
		fmt.Fprintf(formatter.Writer, "✓ Saved %s revision %d (%s)\n", rev.DocName, rev.Seq, shortHash(rev.Hash))
	} else {
		fmt.Fprintf(formatter.Writer, "✓ Unchanged; %s is already at revision %d (%s)\n",
			rev.DocName, rev.Seq, shortHash(rev.Hash))
	}
	return nil
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
