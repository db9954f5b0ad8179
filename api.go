package vlogpp

import (
	"github.com/vlogpp/vlogpp/lexer"
)

// Reader is the character stream consumed by the scanners.
type Reader interface {
	// Peek ahead at the n+1 character, lexer.EOF past the end of input.
	Peek(n int) rune
	// Next consumes and returns the next character.
	Next() rune
	// Pos returns the position of the next character.
	Pos() lexer.Position
}

// Source is a Reader that supports in-place replacement of consumed text.
//
// *lexer.Reader implements this interface.
type Source interface {
	Reader
	// Offset of the cursor.
	Offset() int
	// Mark the current cursor location.
	Mark() lexer.Mark
	// Replace the span from start to the cursor with text,
	// calling onExit once the cursor has moved past the replacement.
	Replace(start lexer.Mark, text string, onExit func())
	// SetEcho turns echo of consumed characters on or off, returning the previous state.
	SetEcho(on bool) bool
}

// Registry looks up macro definitions by name.
type Registry interface {
	Lookup(name string) *Definition
}

var _ Source = &lexer.Reader{}
