package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chatforge/blockflow/internal/store"
)

// RevisionsOptions holds flags for the revisions command.
type RevisionsOptions struct {
	*RootOptions
	DB string
}

// NewRevisionsCommand creates the revisions command.
func NewRevisionsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RevisionsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "revisions [doc-name]",
		Short: "List stored document revisions",
		Long: `List revisions of one document, seq ascending, or with no argument the
names of every stored document.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			docName := ""
			if len(args) == 1 {
				docName = args[0]
			}
			return runRevisions(opts, docName, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "blockflow.db", "revision database path")

	return cmd
}

func runRevisions(opts *RevisionsOptions, docName string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	s, err := store.Open(opts.DB)
	if err != nil {
		return outputCommandError(formatter, ErrCodeStoreFailed, fmt.Sprintf("opening %s: %v", opts.DB, err))
	}
	defer s.Close()

	if docName == "" {
		names, err := s.ListDocuments(cmd.Context())
		if err != nil {
			return outputCommandError(formatter, ErrCodeStoreFailed, err.Error())
		}
		if formatter.Format == "json" {
			return formatter.Success(names)
		}
		if len(names) == 0 {
			fmt.Fprintln(formatter.Writer, "No documents stored")
			return nil
		}
		for _, name := range names {
			fmt.Fprintln(formatter.Writer, name)
		}
		return nil
	}

	revs, err := s.ListRevisions(cmd.Context(), docName)
	if err != nil {
		return outputCommandError(formatter, ErrCodeStoreFailed, err.Error())
	}
	if formatter.Format == "json" {
		return formatter.Success(revs)
	}
	if len(revs) == 0 {
		fmt.Fprintf(formatter.Writer, "No revisions for %s\n", docName)
		return nil
	}
	for _, rev := range revs {
		fmt.Fprintf(formatter.Writer, "%s  seq=%d  %s\n", rev.DocName, rev.Seq, shortHash(rev.Hash))
	}
	return nil
}
