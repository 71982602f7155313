package analyzer

import (
	"log/slog"

	"github.com/viant/afs"
	"github.com/viant/dcl/check"
	"github.com/viant/dcl/executor"
)

type Option func(*Analyzer)

func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// WithFS sets the file system used by AnalyzeFile and AnalyzeDir
func WithFS(fs afs.Service) Option {
	return func(a *Analyzer) {
		a.fs = fs
	}
}

// WithConfig replaces the whole config; apply it before finer grained options
func WithConfig(config *Config) Option {
	return func(a *Analyzer) {
		copied := *config
		a.config = &copied
	}
}

func WithCacheSize(size int) Option {
	return func(a *Analyzer) {
		a.config.CacheSize = size
	}
}

// WithExtensions sets file extensions matched by AnalyzeDir, e.g. ".dcl"
func WithExtensions(extensions ...string) Option {
	return func(a *Analyzer) {
		a.config.Extensions = extensions
	}
}

// WithChecks registers document checks run on every analyzed document
func WithChecks(checks ...check.DocumentCheck) Option {
	return func(a *Analyzer) {
		a.checks = append(a.checks, checks...)
	}
}

// WithExecutorOptions configures the executor used by Apply
func WithExecutorOptions(opts ...executor.Option) Option {
	return func(a *Analyzer) {
		a.executorOptions = append(a.executorOptions, opts...)
	}
}
