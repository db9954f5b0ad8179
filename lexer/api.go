package lexer

import (
	"fmt"
)

const (
	// EOF represents an end of file.
	EOF rune = -(iota + 1)
)

// NL is the line terminator.
const NL rune = '\n'

// Position in a source file.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) GoString() string {
	return fmt.Sprintf("Position{Filename: %q, Offset: %d, Line: %d, Column: %d}",
		p.Filename, p.Offset, p.Line, p.Column)
}

func (p Position) String() string {
	filename := p.Filename
	if filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", filename, p.Line, p.Column)
}

// IsIdentStart returns true if r may start an identifier.
func IsIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// IsIdentPart returns true if r may continue an identifier.
func IsIdentPart(r rune) bool {
	return IsIdentStart(r) || (r >= '0' && r <= '9') || r == '$'
}

// IsBlank returns true for horizontal white space.
func IsBlank(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\f' || r == '\v'
}
