package command

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/viant/dcl/analyzer"
)

func newCheckCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check PATH...",
		Short: "Report syntax, resolution, assignment and check problems",
		Long: "Analyze files or directories and print one line per problem:\n\n" +
			"  file:line:column: kind: message\n\n" +
			"Exits with status 1 when any problem is found.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := opts.analyzer(ctx)
			if err != nil {
				return err
			}
			var docs []*analyzer.Document
			for _, location := range args {
				object, err := opts.fs.Object(ctx, location)
				if err != nil {
					return fmt.Errorf("failed to locate %v: %w", location, err)
				}
				if object.IsDir() {
					found, err := a.AnalyzeDir(ctx, location)
					if err != nil {
						return err
					}
					docs = append(docs, found...)
					continue
				}
				doc, err := a.AnalyzeFile(ctx, location)
				if err != nil {
					return err
				}
				docs = append(docs, doc)
			}
			problems := 0
			out := cmd.OutOrStdout()
			for _, doc := range docs {
				for _, diagnostic := range doc.Diagnostics() {
					problems++
					fmt.Fprintf(out, "%v: %v: %v\n", diagnostic.Source, color.RedString(diagnostic.Kind), diagnostic.Message)
				}
			}
			opts.logger.Info("checked documents", "documents", len(docs), "problems", problems)
			if problems > 0 {
				fmt.Fprintf(out, "%d problem(s) in %d document(s)\n", problems, len(docs))
				return errProblems
			}
			return nil
		},
	}
}
