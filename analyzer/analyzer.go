// Package analyzer runs the parse, resolve, trace and check pipeline over documents
package analyzer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"github.com/viant/dcl/check"
	"github.com/viant/dcl/executor"
	"github.com/viant/dcl/language"
	"github.com/viant/dcl/objectgraph"
	"github.com/viant/dcl/resolution"
	"github.com/viant/dcl/schema"
	"github.com/viant/dcl/settings"
)

// Analyzer analyzes documents against one schema
type Analyzer struct {
	schema          *schema.AnalysisSchema
	config          *Config
	fs              afs.Service
	logger          *slog.Logger
	parser          *language.CachingParser
	resolver        *resolution.Resolver
	checks          []check.DocumentCheck
	executorOptions []executor.Option
}

// knownChecks are checks that can be enabled by name in Config.Checks
var knownChecks = map[string]check.DocumentCheck{
	settings.BlocksCheck{}.Name(): settings.BlocksCheck{},
}

// AnalyzeSource analyzes src; identifier is used in source locations
func (a *Analyzer) AnalyzeSource(ctx context.Context, identifier string, src []byte) (*Document, error) {
	parsed, err := a.parser.Parse(ctx, identifier, src)
	if err != nil {
		return nil, err
	}
	resolved, trace := a.resolver.Resolve(parsed)
	doc := &Document{
		Identifier:  identifier,
		Language:    parsed,
		Resolution:  resolved,
		Trace:       trace,
		Assignments: objectgraph.Trace(resolved),
		Failures:    check.Run(parsed, a.checks...),
	}
	a.logger.Debug("analyzed document",
		slog.String("identifier", identifier),
		slog.Int("syntaxFailures", len(parsed.Failures)),
		slog.Int("resolutionErrors", len(resolved.Errors)),
		slog.Int("checkFailures", len(doc.Failures)))
	return doc, nil
}

// AnalyzeFile downloads and analyzes the document at URL
func (a *Analyzer) AnalyzeFile(ctx context.Context, URL string) (*Document, error) {
	src, err := a.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load %v: %w", URL, err)
	}
	return a.AnalyzeSource(ctx, URL, src)
}

// AnalyzeDir analyzes every document under root with a matching extension, ordered by URL
func (a *Analyzer) AnalyzeDir(ctx context.Context, root string) ([]*Document, error) {
	var URLs []string
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			return !(a.config.SkipHidden && strings.HasPrefix(info.Name(), ".")), nil
		}
		if a.matches(info.Name()) {
			URLs = append(URLs, url.Join(url.Join(baseURL, parent), info.Name()))
		}
		return true, nil
	}
	if err := a.fs.Walk(ctx, root, visitor); err != nil {
		return nil, fmt.Errorf("failed to walk %v: %w", root, err)
	}
	sort.Strings(URLs)
	var result []*Document
	for _, URL := range URLs {
		doc, err := a.AnalyzeFile(ctx, URL)
		if err != nil {
			return nil, err
		}
		result = append(result, doc)
	}
	return result, nil
}

func (a *Analyzer) matches(name string) bool {
	ext := path.Ext(name)
	for _, candidate := range a.config.Extensions {
		if ext == candidate {
			return true
		}
	}
	return false
}

// Apply mutates target, the live object of the top-level receiver, with the document assignments.
// Documents with dropped statements are refused with an executor.NotEvaluatedError.
func (a *Analyzer) Apply(doc *Document, target interface{}) error {
	if doc.Language != nil && doc.Language.HasFailures() {
		var reasons []string
		for _, failure := range doc.Language.Failures {
			reasons = append(reasons, failure.Error())
		}
		return &executor.NotEvaluatedError{Reasons: reasons}
	}
	opts := append([]executor.Option{executor.WithLogger(a.logger)}, a.executorOptions...)
	return executor.New(opts...).Apply(doc.Resolution, doc.Assignments, target)
}

// Schema returns the analysis schema
func (a *Analyzer) Schema() *schema.AnalysisSchema {
	return a.schema
}

// New creates an analyzer for analysisSchema
func New(analysisSchema *schema.AnalysisSchema, opts ...Option) (*Analyzer, error) {
	a := &Analyzer{
		schema: analysisSchema,
		config: DefaultConfig(),
		fs:     afs.New(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	for _, name := range a.config.Checks {
		known, ok := knownChecks[name]
		if !ok {
			return nil, fmt.Errorf("unknown check: %v", name)
		}
		a.checks = append(a.checks, known)
	}
	var err error
	if a.parser, err = language.NewCachingParser(language.NewParser(language.WithLogger(a.logger)), a.config.CacheSize); err != nil {
		return nil, err
	}
	a.resolver = resolution.New(analysisSchema, resolution.WithLogger(a.logger))
	return a, nil
}
