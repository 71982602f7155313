package language

import "fmt"

// SourceData locates an element in the source text.
// Lines and columns are 1-based, offsets are byte offsets.
type SourceData struct {
	Identifier  string `yaml:"identifier,omitempty"`
	StartOffset int    `yaml:"startOffset"`
	EndOffset   int    `yaml:"endOffset"`
	StartLine   int    `yaml:"startLine"`
	StartColumn int    `yaml:"startColumn"`
	EndLine     int    `yaml:"endLine"`
	EndColumn   int    `yaml:"endColumn"`
}

// Text returns the source slice covered by the element
func (s SourceData) Text(src []byte) string {
	if s.StartOffset < 0 || s.EndOffset > len(src) || s.StartOffset > s.EndOffset {
		return ""
	}
	return string(src[s.StartOffset:s.EndOffset])
}

func (s SourceData) String() string {
	if s.Identifier == "" {
		return fmt.Sprintf("%d:%d", s.StartLine, s.StartColumn)
	}
	return fmt.Sprintf("%s:%d:%d", s.Identifier, s.StartLine, s.StartColumn)
}
