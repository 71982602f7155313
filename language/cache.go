package language

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// SourceParser turns source text into a language tree
type SourceParser interface {
	Parse(ctx context.Context, identifier string, src []byte) (*Result, error)
}

// CachingParser memoizes parse results by content hash.
// Results are never mutated after parsing, so cached values are shared.
type CachingParser struct {
	parser SourceParser
	cache  *lru.Cache[uint64, *Result]
}

// Parse returns the cached result for identical input or parses it
func (p *CachingParser) Parse(ctx context.Context, identifier string, src []byte) (*Result, error) {
	key, err := Hash([]byte(identifier), src)
	if err != nil {
		return nil, fmt.Errorf("failed to hash %v: %w", identifier, err)
	}
	if result, ok := p.cache.Get(key); ok {
		return result, nil
	}
	result, err := p.parser.Parse(ctx, identifier, src)
	if err != nil {
		return nil, err
	}
	p.cache.Add(key, result)
	return result, nil
}

// Len returns number of cached results
func (p *CachingParser) Len() int {
	return p.cache.Len()
}

// NewCachingParser wraps parser with an LRU cache holding up to size results
func NewCachingParser(parser SourceParser, size int) (*CachingParser, error) {
	cache, err := lru.New[uint64, *Result](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create parse cache: %w", err)
	}
	return &CachingParser{parser: parser, cache: cache}, nil
}
