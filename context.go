package vlogpp

import (
	"bufio"

	"github.com/vlogpp/vlogpp/lexer"
)

// passContext is the state of a single pass over one source file.
type passContext struct {
	*Preprocessor
	parent *passContext
	src    *lexer.Reader
	out    *bufio.Writer
	guard  *Guard
	cond   condStack
	// Include nesting depth.
	depth int
}

func newPassContext(p *Preprocessor, filename, input string, out *bufio.Writer) *passContext {
	return &passContext{
		Preprocessor: p,
		src:          lexer.NewReader(filename, input, out),
		out:          out,
		guard:        NewGuard(),
	}
}

// child creates the context for an included file.
func (c *passContext) child(filename, input string) *passContext {
	child := newPassContext(c.Preprocessor, filename, input, c.out)
	child.parent = c
	child.depth = c.depth + 1
	return child
}

// next consumes a character of plain text. Line terminators are kept in
// the output even when text is being dropped.
func (c *passContext) next() rune {
	ch := c.src.Next()
	if ch == lexer.NL && !c.cond.Active() {
		c.src.Emit("\n")
	}
	return ch
}

// consume n characters without echo.
func (c *passContext) consume(n int) {
	echo := c.src.SetEcho(false)
	for i := 0; i < n; i++ {
		c.src.Next()
	}
	c.src.SetEcho(echo)
}

// directiveIdent reads the identifier following a directive.
func (c *passContext) directiveIdent(directive string, pos lexer.Position) (string, error) {
	echo := c.src.SetEcho(false)
	defer c.src.SetEcho(echo)
	skipBlanks(c.src)
	name := readIdent(c.src)
	if name == "" {
		return "", &Error{Code: CodeMissingIdentifier, Pos: pos, Directive: directive}
	}
	return name, nil
}

// run processes the source to end of input.
func (c *passContext) run() error {
	src := c.src
	for {
		src.SetEcho(c.cond.Active())
		switch ch := src.Peek(0); {
		case ch == lexer.EOF:
			// Release any macro still held by trailing replacement text.
			src.Next()
			return c.cond.finish(src.Pos())

		case ch == '/' && src.Peek(1) == '/':
			c.copyLineComment()

		case ch == '/' && src.Peek(1) == '*':
			c.copyBlockComment()

		case ch == '"':
			c.copyString()

		case ch == '\\':
			c.copyEscapedIdent()

		case ch == '`':
			if err := c.directive(); err != nil {
				return err
			}

		default:
			c.next()
		}
	}
}

func (c *passContext) copyLineComment() {
	for ch := c.src.Peek(0); ch != lexer.NL && ch != lexer.EOF; ch = c.src.Peek(0) {
		c.next()
	}
}

// copyBlockComment copies a comment up to and including "*/". An
// unterminated comment runs to end of input.
func (c *passContext) copyBlockComment() {
	c.next()
	c.next()
	for {
		switch ch := c.src.Peek(0); {
		case ch == lexer.EOF:
			return
		case ch == '*' && c.src.Peek(1) == '/':
			c.next()
			c.next()
			return
		default:
			c.next()
		}
	}
}

// copyString copies a string literal. Strings do not span lines.
func (c *passContext) copyString() {
	c.next()
	for {
		switch ch := c.src.Peek(0); ch {
		case lexer.EOF, lexer.NL:
			return
		case '\\':
			c.next()
			if c.src.Peek(0) != lexer.EOF {
				c.next()
			}
		case '"':
			c.next()
			return
		default:
			c.next()
		}
	}
}

// copyEscapedIdent copies "\name" up to the white space that ends it.
func (c *passContext) copyEscapedIdent() {
	c.next()
	for ch := c.src.Peek(0); ch != lexer.EOF && ch != lexer.NL && !lexer.IsBlank(ch); ch = c.src.Peek(0) {
		c.next()
	}
}
