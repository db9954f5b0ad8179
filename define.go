package vlogpp

import (
	"strings"

	"github.com/vlogpp/vlogpp/lexer"
)

// FormalParameter of a macro definition.
type FormalParameter struct {
	Name string
	// Default text, nil if the parameter is required.
	Default *string
}

// Definition of a text macro.
//
// Definitions are immutable once parsed.
type Definition struct {
	Pos     lexer.Position
	Name    string
	Formals []FormalParameter
	// Body text with every formal parameter reference replaced by its Marker.
	Body string
}

// NumFormals returns the number of formal parameters.
func (d *Definition) NumFormals() int { return len(d.Formals) }

// ParseDefinition parses a "`define" directive at the cursor of r.
//
// The directive is consumed up to and including the line terminator ending
// the macro body.
func ParseDefinition(r Reader) (*Definition, error) {
	started := r.Pos()
	if r.Peek(0) != '`' {
		return nil, &Error{Code: CodeMissingIdentifier, Pos: started, Directive: "`define"}
	}
	r.Next()
	if kw := readIdent(r); kw != "define" {
		return nil, &Error{Code: CodeMissingIdentifier, Pos: started, Directive: "`define"}
	}
	skipBlanks(r)
	pos := r.Pos()
	name := readIdent(r)
	if name == "" {
		return nil, &Error{Code: CodeMissingMacroName, Pos: pos, Directive: "`define", Started: started}
	}
	var formals []FormalParameter
	// The left parenthesis must follow the macro name immediately.
	if r.Peek(0) == '(' {
		pos = r.Pos()
		r.Next()
		args, err := newScanner(r).parseArgs(true)
		if err != nil {
			return nil, decorate(err, "`define", name, started)
		}
		formals, err = parseFormals(pos, args)
		if err != nil {
			return nil, decorate(err, "`define", name, started)
		}
	}
	body, err := readBody(r)
	if err != nil {
		return nil, decorate(err, "`define", name, started)
	}
	body = escapeMarkers(strings.TrimSpace(body))
	if len(formals) > 0 {
		body = addMarkers(body, formals)
	}
	return &Definition{Pos: started, Name: name, Formals: formals, Body: body}, nil
}

// parseFormals splits "name" or "name=default" descriptors.
func parseFormals(pos lexer.Position, args []string) ([]FormalParameter, error) {
	formals := make([]FormalParameter, 0, len(args))
	seen := map[string]bool{}
	for _, arg := range args {
		name, dflt, hasDefault := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !isIdent(name) {
			return nil, &Error{Code: CodeInvalidFormalArgument, Pos: pos, Formal: name}
		}
		if seen[name] {
			return nil, &Error{Code: CodeDuplicateFormalArgument, Pos: pos, Formal: name}
		}
		seen[name] = true
		formal := FormalParameter{Name: name}
		if hasDefault {
			dflt = strings.TrimSpace(dflt)
			formal.Default = &dflt
		}
		formals = append(formals, formal)
	}
	return formals, nil
}

// readBody reads macro text up to an unescaped line terminator, which is
// consumed. A backslash before the line terminator continues the body on
// the next line.
func readBody(r Reader) (string, error) {
	var b strings.Builder
	inString := false
	for {
		pos := r.Pos()
		c := r.Next()
		switch {
		case c == lexer.EOF:
			return "", errorAt(CodeUnterminatedDefinition, pos)

		case c == lexer.NL:
			return b.String(), nil

		case c == '\\':
			switch n := r.Next(); {
			case n == lexer.EOF:
				return "", errorAt(CodeUnterminatedDefinition, pos)
			case n == lexer.NL:
				b.WriteRune(lexer.NL)
			case n == '\r' && r.Peek(0) == lexer.NL:
				r.Next()
				b.WriteRune(lexer.NL)
			default:
				b.WriteRune(c)
				b.WriteRune(n)
			}

		case c == '`' && r.Peek(0) == '\\' && r.Peek(1) == '`' && r.Peek(2) == '"':
			b.WriteRune(c)
			for i := 0; i < 3; i++ {
				b.WriteRune(r.Next())
			}

		case c == '`' && (r.Peek(0) == '`' || r.Peek(0) == '"'):
			b.WriteRune(c)
			b.WriteRune(r.Next())

		case c == '"':
			inString = !inString
			b.WriteRune(c)

		case c == '/' && r.Peek(0) == '/' && !inString:
			// One line comments are not part of the macro text.
			skipLineComment(r, &b)

		default:
			b.WriteRune(c)
		}
	}
}

// skipLineComment drops a comment up to, but not including, the line
// terminator. A continued comment line continues the body.
func skipLineComment(r Reader, b *strings.Builder) {
	for {
		switch c := r.Peek(0); {
		case c == lexer.NL || c == lexer.EOF:
			return
		case c == '\\' && r.Peek(1) == lexer.NL:
			r.Next()
			r.Next()
			b.WriteRune(lexer.NL)
			return
		default:
			r.Next()
		}
	}
}

// decorate fills in the directive context of a core error.
func decorate(err error, directive, macro string, started lexer.Position) error {
	if e, ok := err.(*Error); ok {
		if e.Directive == "" {
			e.Directive = directive
		}
		if e.Macro == "" {
			e.Macro = macro
		}
		if e.Started == (lexer.Position{}) {
			e.Started = started
		}
	}
	return err
}

func readIdent(r Reader) string {
	if !lexer.IsIdentStart(r.Peek(0)) {
		return ""
	}
	var b strings.Builder
	for lexer.IsIdentPart(r.Peek(0)) {
		b.WriteRune(r.Next())
	}
	return b.String()
}

// peekIdent returns the identifier starting n characters ahead without consuming it.
func peekIdent(r Reader, n int) string {
	if !lexer.IsIdentStart(r.Peek(n)) {
		return ""
	}
	var b strings.Builder
	for c := r.Peek(n); lexer.IsIdentPart(c); c = r.Peek(n) {
		b.WriteRune(c)
		n++
	}
	return b.String()
}

// skipBlanks consumes white space and block comments on the current line.
func skipBlanks(r Reader) {
	n := blanksAhead(r, 0)
	for i := 0; i < n; i++ {
		r.Next()
	}
}

// blanksAhead returns the number of characters of white space and block
// comments starting n characters ahead, or -1 if a block comment does not
// end on the current line.
func blanksAhead(r Reader, n int) int {
	start := n
	for {
		switch c := r.Peek(n); {
		case lexer.IsBlank(c):
			n++
		case c == '/' && r.Peek(n+1) == '*':
			m := n + 2
			for {
				c := r.Peek(m)
				if c == lexer.EOF || c == lexer.NL {
					return -1
				}
				if c == '*' && r.Peek(m+1) == '/' {
					break
				}
				m++
			}
			n = m + 2
		default:
			return n - start
		}
	}
}

func isIdent(s string) bool {
	for i, r := range s {
		if i == 0 && !lexer.IsIdentStart(r) {
			return false
		}
		if !lexer.IsIdentPart(r) {
			return false
		}
	}
	return s != ""
}
