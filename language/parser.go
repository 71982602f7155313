package language

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/kotlin"
)

// Parser converts declarative script text into a language tree
type Parser struct {
	logger *slog.Logger
}

// Option configures a Parser
type Option func(p *Parser)

// WithLogger sets parser logger
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// Parse parses src. Syntax problems are reported as Result.Failures,
// the returned error only signals that parsing could not run at all.
func (p *Parser) Parse(ctx context.Context, identifier string, src []byte) (*Result, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(kotlin.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %v: %w", identifier, err)
	}
	defer tree.Close()

	c := &converter{identifier: identifier, src: src}
	result := c.sourceFile(tree.RootNode())
	result.Identifier = identifier
	p.logger.Debug("parsed source",
		slog.String("identifier", identifier),
		slog.Int("statements", len(result.TopLevelBlock.Statements)),
		slog.Int("imports", len(result.Imports)),
		slog.Int("failures", len(result.Failures)))
	return result, nil
}

// NewParser creates a parser
func NewParser(opts ...Option) *Parser {
	p := &Parser{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
