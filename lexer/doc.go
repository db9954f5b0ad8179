// Package lexer defines the character stream used by the preprocessor.
//
// The primary type is Reader, a rune buffer over one source file with
// lookahead, position tracking, echo of consumed characters and in-place
// replacement of consumed text.
package lexer
