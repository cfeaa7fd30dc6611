package writeback

import (
	"errors"
	"fmt"
	"go/scanner"

	"mvdan.cc/gofumpt/format"
)

// SyntaxError reports the first syntax error found in generated source.
type SyntaxError struct {
	FilePath string
	Line     int // 1-indexed
	Column   int // 1-indexed
	Message  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line, e.Column, e.Message)
}

// FormatGo formats Go source in memory using gofumpt. Unlike an editor
// save hook it never falls back to the input: source that does not parse is
// a generator bug and comes back as a *SyntaxError.
func FormatGo(content []byte, filePath string) ([]byte, error) {
	formatted, err := format.Source(content, format.Options{})
	if err == nil {
		return formatted, nil
	}
	var list scanner.ErrorList
	if errors.As(err, &list) && len(list) > 0 {
		first := list[0]
		return nil, &SyntaxError{
			FilePath: filePath,
			Line:     first.Pos.Line,
			Column:   first.Pos.Column,
			Message:  first.Msg,
		}
	}
	return nil, fmt.Errorf("format %s: %w", filePath, err)
}
