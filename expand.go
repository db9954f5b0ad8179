package vlogpp

import (
	"strings"

	"github.com/vlogpp/vlogpp/lexer"
)

// Invocation is a macro use site that has been expanded.
type Invocation struct {
	Pos  lexer.Position
	Name string
	// Actual arguments, nil if the use had no parenthesised list.
	Args []string
	// Buffer offsets of the replaced span.
	Start int
	End   int
	// Text the span was replaced with.
	Text string
}

// Expand the macro use at the cursor of src, replacing it in place with the
// substituted macro text.
//
// The cursor must be at the "`" introducing the use. The macro is active in
// guard from the moment its name is read, so a use of the same macro in the
// actual arguments or in the replacement text fails. Uses of other macros in
// the actual arguments are expanded before they are substituted. On success
// the cursor is left at the start of the replacement so that it is
// rescanned, and the macro stays active until the cursor has moved past it.
// On failure nothing is replaced and the guard is left as it was.
func Expand(src Source, defs Registry, guard *Guard) (*Invocation, error) {
	echo := src.SetEcho(false)
	defer src.SetEcho(echo)

	start := src.Mark()
	inv := &Invocation{Pos: start.Pos, Start: start.Offset}
	src.Next()
	inv.Name = readIdent(src)
	if inv.Name == "" {
		return nil, &Error{Code: CodeMissingIdentifier, Pos: inv.Pos, Directive: "`"}
	}
	if !guard.Enter(inv.Name) {
		return nil, &Error{Code: CodeRecursiveMacro, Pos: inv.Pos, Macro: inv.Name}
	}
	text, err := expandUse(src, inv, defs, guard)
	if err != nil {
		guard.Leave(inv.Name)
		return nil, err
	}
	inv.End = src.Offset()
	inv.Text = text
	src.Replace(start, text, func() { guard.Leave(inv.Name) })
	return inv, nil
}

// expandUse reads the actual arguments of inv and returns the replacement
// text.
func expandUse(src Source, inv *Invocation, defs Registry, guard *Guard) (string, error) {
	defn := defs.Lookup(inv.Name)
	if defn == nil {
		return "", &Error{Code: CodeUndefinedMacro, Pos: inv.Pos, Macro: inv.Name}
	}
	if consumeParen(src) {
		args, err := newScanner(src).parseArgs(false)
		if err != nil {
			return "", decorate(err, "", inv.Name, inv.Pos)
		}
		inv.Args = args
	}
	text, err := expandDefinition(defn, inv, defs, guard)
	if err != nil {
		return "", err
	}
	if end := src.Pos(); end.Line != inv.Pos.Line {
		return "", &Error{Code: CodeCrossLineInvocation, Pos: end, Macro: inv.Name, Started: inv.Pos}
	}
	return text, nil
}

// consumeParen consumes white space, block comments and a "(" if the "("
// follows on the current line.
func consumeParen(r Reader) bool {
	n := blanksAhead(r, 0)
	if n < 0 || r.Peek(n) != '(' {
		return false
	}
	for i := 0; i <= n; i++ {
		r.Next()
	}
	return true
}

func expandDefinition(defn *Definition, inv *Invocation, defs Registry, guard *Guard) (string, error) {
	if inv.Args == nil {
		if defn.NumFormals() > 0 {
			// Parentheses are required even if every formal has a default.
			return "", &Error{Code: CodeParenthesesRequired, Pos: inv.Pos, Macro: inv.Name, Formals: defn.NumFormals()}
		}
		return substitute(defn.Body, nil, true), nil
	}
	if len(inv.Args) > defn.NumFormals() {
		return "", &Error{
			Code:    CodeTooManyArguments,
			Pos:     inv.Pos,
			Macro:   inv.Name,
			Formals: defn.NumFormals(),
			Actuals: len(inv.Args),
		}
	}
	values := make([]string, defn.NumFormals())
	for i, formal := range defn.Formals {
		switch {
		case i < len(inv.Args) && inv.Args[i] != "":
			value, err := expandArg(inv.Args[i], defs, guard)
			if err != nil {
				return "", relocate(err, inv.Pos)
			}
			values[i] = value
		case formal.Default != nil:
			values[i] = *formal.Default
		default:
			return "", &Error{Code: CodeMissingRequiredArgument, Pos: inv.Pos, Macro: inv.Name, Formal: formal.Name}
		}
	}
	return substitute(defn.Body, values, true), nil
}

// expandArg expands the uses of defined macros in an actual argument.
// String literals, escapes and uses of anything that is not a defined macro
// are copied as is. A use of a macro active in guard is an error.
func expandArg(arg string, defs Registry, guard *Guard) (string, error) {
	if !strings.ContainsRune(arg, '`') {
		return arg, nil
	}
	r := lexer.NewReader("", arg, nil)
	var b strings.Builder
	for {
		switch c := r.Peek(0); {
		case c == lexer.EOF:
			// Exits any replacement still pending.
			r.Next()
			return b.String(), nil

		case c == '"':
			b.WriteRune(r.Next())
			for c := r.Peek(0); c != lexer.EOF; c = r.Peek(0) {
				b.WriteRune(r.Next())
				if c == '"' {
					break
				}
				if c == '\\' && r.Peek(0) != lexer.EOF {
					b.WriteRune(r.Next())
				}
			}

		case c == '`' && defs.Lookup(peekIdent(r, 1)) != nil:
			if _, err := Expand(r, defs, guard); err != nil {
				for r.Next() != lexer.EOF {
				}
				return "", err
			}

		case c == '`':
			b.WriteRune(r.Next())
			if n := r.Peek(0); n == '`' || n == '"' {
				b.WriteRune(r.Next())
			}

		default:
			b.WriteRune(r.Next())
		}
	}
}

// relocate reports an error raised while expanding an argument at the
// position of the use the argument belongs to.
func relocate(err error, pos lexer.Position) error {
	if e, ok := err.(*Error); ok {
		e.Pos = pos
	}
	return err
}

// Guard tracks the macros currently being expanded in one pass.
//
// The zero value is ready to use.
type Guard struct {
	active map[string]bool
}

// NewGuard creates an empty Guard.
func NewGuard() *Guard {
	return &Guard{active: map[string]bool{}}
}

// Enter marks name as being expanded, returning false if it already is.
func (g *Guard) Enter(name string) bool {
	if g.active == nil {
		g.active = map[string]bool{}
	}
	if g.active[name] {
		return false
	}
	g.active[name] = true
	return true
}

// Leave marks name as no longer being expanded.
func (g *Guard) Leave(name string) {
	delete(g.active, name)
}

// Active returns true if name is being expanded.
func (g *Guard) Active(name string) bool {
	return g.active[name]
}

// Len returns the number of macros being expanded.
func (g *Guard) Len() int {
	return len(g.active)
}
