// Package command implements the dcl command line
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/dcl/analyzer"
	"github.com/viant/dcl/schema"
	"github.com/viant/dcl/settings"
)

// errProblems signals that analysis succeeded but found problems
var errProblems = errors.New("problems found")

// globalOptions are flags shared by all commands
type globalOptions struct {
	debug     bool
	logFormat string
	config    string
	schema    string
	settings  bool

	fs     afs.Service
	logger *slog.Logger
}

func (o *globalOptions) loadSchema(ctx context.Context) (*schema.AnalysisSchema, error) {
	if o.settings && o.schema == "" {
		return settings.Schema(), nil
	}
	if o.schema == "" {
		return nil, errors.New("--schema is required")
	}
	data, err := o.fs.DownloadWithURL(ctx, o.schema)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema %v: %w", o.schema, err)
	}
	return schema.LoadYAML(data)
}

func (o *globalOptions) loadConfig(ctx context.Context) (*analyzer.Config, error) {
	if o.config == "" {
		return analyzer.DefaultConfig(), nil
	}
	data, err := o.fs.DownloadWithURL(ctx, o.config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %w", o.config, err)
	}
	return analyzer.LoadConfig(data)
}

func (o *globalOptions) analyzer(ctx context.Context) (*analyzer.Analyzer, error) {
	analysisSchema, err := o.loadSchema(ctx)
	if err != nil {
		return nil, err
	}
	config, err := o.loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	opts := []analyzer.Option{
		analyzer.WithConfig(config),
		analyzer.WithLogger(o.logger),
		analyzer.WithFS(o.fs),
	}
	if o.settings {
		opts = append(opts, analyzer.WithChecks(settings.BlocksCheck{}))
	}
	return analyzer.New(analysisSchema, opts...)
}

// NewRootCommand creates the dcl command tree; logs go to stderr
func NewRootCommand(stderr io.Writer) *cobra.Command {
	opts := &globalOptions{fs: afs.New()}
	cmd := &cobra.Command{
		Use:           "dcl",
		Short:         "Analyze declarative configuration scripts against a schema",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(stderr, opts.logFormat, opts.debug)
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	flags := cmd.PersistentFlags()
	flags.BoolVar(&opts.debug, "debug", false, "Set log level to debug")
	flags.StringVar(&opts.logFormat, "log-format", logFormatHuman, "Log format. One of: (human | json)")
	flags.StringVar(&opts.config, "config", "", "Analyzer config YAML")
	flags.StringVar(&opts.schema, "schema", "", "Schema descriptor YAML")
	flags.BoolVar(&opts.settings, "settings", false, "Analyze settings scripts: use the settings schema unless --schema is set and run settings checks")

	cmd.AddCommand(
		newCheckCommand(opts),
		newResolveCommand(opts),
		newSchemaCommand(opts),
	)
	return cmd
}

// Execute runs the command line and returns the process exit code
func Execute(args []string, stdout, stderr io.Writer) int {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		color.NoColor = true
	}
	cmd := NewRootCommand(stderr)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errProblems) {
			fmt.Fprintln(stderr, color.RedString("Error:"), err)
		}
		return 1
	}
	return 0
}
