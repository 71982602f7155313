package command

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/viant/dcl/analyzer"
	"github.com/viant/dcl/objectgraph"
	"github.com/viant/dcl/resolution"
	"gopkg.in/yaml.v3"
)

type (
	documentView struct {
		Identifier  string                 `yaml:"identifier" json:"identifier"`
		Assignments []*assignmentView      `yaml:"assignments,omitempty" json:"assignments,omitempty"`
		Additions   []*additionView        `yaml:"additions,omitempty" json:"additions,omitempty"`
		Problems    []*analyzer.Diagnostic `yaml:"problems,omitempty" json:"problems,omitempty"`
	}

	assignmentView struct {
		Target     string `yaml:"target" json:"target"`
		Value      string `yaml:"value" json:"value"`
		Method     string `yaml:"method" json:"method"`
		Reassigned bool   `yaml:"reassigned,omitempty" json:"reassigned,omitempty"`
		Source     string `yaml:"source" json:"source"`
	}

	additionView struct {
		Container string `yaml:"container" json:"container"`
		Object    string `yaml:"object" json:"object"`
		Function  string `yaml:"function" json:"function"`
		Source    string `yaml:"source" json:"source"`
	}
)

func newDocumentView(doc *analyzer.Document) *documentView {
	trace := doc.Assignments
	view := &documentView{Identifier: doc.Identifier, Problems: doc.Diagnostics()}
	for _, element := range trace.Elements {
		recorded, ok := element.(*objectgraph.RecordedAssignment)
		if !ok {
			continue
		}
		record := element.Record()
		view.Assignments = append(view.Assignments, &assignmentView{
			Target:     describe(trace, recorded.LHS.Receiver) + "." + recorded.LHS.Property.Name,
			Value:      describe(trace, recorded.Value),
			Method:     string(record.Method),
			Reassigned: recorded.Reassigned,
			Source:     record.Element.Source().String(),
		})
	}
	for _, addition := range doc.Resolution.Additions {
		view.Additions = append(view.Additions, &additionView{
			Container: describe(trace, addition.Container),
			Object:    describe(trace, addition.DataObject),
			Function:  addition.DataObject.Function.String(),
			Source:    addition.DataObject.Element().Source().String(),
		})
	}
	return view
}

// describe renders constants as values and objects as their keys
func describe(trace *objectgraph.AssignmentTrace, origin resolution.ObjectOrigin) string {
	switch actual := origin.(type) {
	case *resolution.ConstantOrigin:
		if text, ok := actual.Value.(string); ok {
			return fmt.Sprintf("%q", text)
		}
		return fmt.Sprintf("%v", actual.Value)
	case *resolution.NullOrigin:
		return "null"
	}
	switch resolved := trace.Resolve(origin).(type) {
	case *objectgraph.ObjectReference:
		if resolved.Key != "" {
			return string(resolved.Key)
		}
	case *objectgraph.UnassignedValue:
		return string(resolved.Key)
	}
	return origin.Type().String()
}

func encode(w io.Writer, format string, value interface{}) error {
	switch format {
	case "yaml", "":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(value); err != nil {
			return err
		}
		return encoder.Close()
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(value)
	}
	return fmt.Errorf("unsupported output format: %v", format)
}

func newResolveCommand(opts *globalOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "resolve FILE",
		Short: "Print resolved assignments, additions and problems of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := opts.analyzer(ctx)
			if err != nil {
				return err
			}
			doc, err := a.AnalyzeFile(ctx, args[0])
			if err != nil {
				return err
			}
			return encode(cmd.OutOrStdout(), output, newDocumentView(doc))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "Output format. One of: (yaml | json)")
	return cmd
}
