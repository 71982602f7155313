package command

import (
	"github.com/spf13/cobra"
	"github.com/viant/dcl/schema"
)

func newSchemaCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the normalized schema descriptor",
		Long:  "Print the schema after validation, keeping only classes reachable from the top-level receiver.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			analysisSchema, err := opts.loadSchema(cmd.Context())
			if err != nil {
				return err
			}
			data, err := schema.Describe(analysisSchema)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
