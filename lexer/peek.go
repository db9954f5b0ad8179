package lexer

import (
	"bufio"
	"io"
	"unicode/utf8"
)

// Reader is a character stream over a single source file supporting
// arbitrary lookahead, echo of consumed characters to an output, and
// in-place replacement of text that has already been consumed.
//
// Replacement text is rescanned: after Replace the cursor is rewound to the
// start of the replaced span. The replacement forms a region which is
// exited once the cursor moves past its last character.
type Reader struct {
	filename string
	buf      []rune
	off      int
	// Position of the next character of the original file.
	fileOff int
	line    int
	col     int
	regions []region
	echo    bool
	out     *bufio.Writer
	// Last character written to out.
	last rune
	err  error
}

type region struct {
	end    int
	pos    Position
	onExit func()
}

// Mark is a saved cursor location, used as the start of a span to replace.
type Mark struct {
	Offset int
	Pos    Position
}

// NewReader creates a Reader over input. Consumed characters are echoed to
// w while echo is on. w may be nil. A *bufio.Writer is used as is, so it
// can be shared by several Readers.
func NewReader(filename string, input string, w io.Writer) *Reader {
	r := &Reader{
		filename: filename,
		buf:      []rune(input),
		line:     1,
		col:      1,
		echo:     true,
	}
	switch w := w.(type) {
	case nil:
	case *bufio.Writer:
		r.out = w
	default:
		r.out = bufio.NewWriter(w)
	}
	return r
}

// Filename of the source.
func (r *Reader) Filename() string { return r.filename }

// Peek ahead at the n+1 character. eg. Peek(0) will peek at the next character.
func (r *Reader) Peek(n int) rune {
	i := r.off + n
	if i < 0 || i >= len(r.buf) {
		return EOF
	}
	return r.buf[i]
}

// Next consumes and returns the next character.
func (r *Reader) Next() rune {
	r.exit(r.off)
	if r.off >= len(r.buf) {
		return EOF
	}
	c := r.buf[r.off]
	r.off++
	if len(r.regions) == 0 {
		r.fileOff++
		if c == NL {
			r.line++
			r.col = 1
		} else {
			r.col++
		}
	}
	if r.echo {
		r.write(c)
	}
	return c
}

// Pos returns the position of the next character.
//
// Inside replacement text this is the position of the span that was replaced.
func (r *Reader) Pos() Position {
	if len(r.regions) > 0 {
		return r.regions[0].pos
	}
	return Position{Filename: r.filename, Offset: r.fileOff, Line: r.line, Column: r.col}
}

// Offset of the cursor in the buffer.
func (r *Reader) Offset() int { return r.off }

// Mark the current cursor location.
func (r *Reader) Mark() Mark {
	return Mark{Offset: r.off, Pos: r.Pos()}
}

// Slice returns buffer text between two offsets.
func (r *Reader) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(r.buf) {
		end = len(r.buf)
	}
	if start >= end {
		return ""
	}
	return string(r.buf[start:end])
}

// InRegion returns true if the cursor is inside replacement text.
func (r *Reader) InRegion() bool {
	r.exit(r.off)
	return len(r.regions) > 0
}

// SetEcho turns echo of consumed characters on or off, returning the previous state.
func (r *Reader) SetEcho(on bool) bool {
	prev := r.echo
	r.echo = on
	return prev
}

// Emit writes s directly to the output.
func (r *Reader) Emit(s string) {
	if r.out == nil || r.err != nil || s == "" {
		return
	}
	_, r.err = r.out.WriteString(s)
	r.last, _ = utf8.DecodeLastRuneInString(s)
}

// AtLineStart returns true if nothing has been written yet or the last
// character written was a line terminator.
func (r *Reader) AtLineStart() bool {
	return r.last == 0 || r.last == NL
}

// Replace the span from start up to the cursor with text and rewind the
// cursor to the start of the span. onExit, if not nil, is called once the
// cursor has moved past the replacement.
func (r *Reader) Replace(start Mark, text string, onExit func()) {
	from, to := start.Offset, r.off
	repl := []rune(text)
	delta := len(repl) - (to - from)
	buf := make([]rune, 0, len(r.buf)+delta)
	buf = append(buf, r.buf[:from]...)
	buf = append(buf, repl...)
	buf = append(buf, r.buf[to:]...)
	r.buf = buf
	for i := range r.regions {
		switch end := r.regions[i].end; {
		case end >= to:
			r.regions[i].end += delta
		case end > from:
			r.regions[i].end = from
		}
	}
	r.off = from
	r.regions = append(r.regions, region{end: from + len(repl), pos: start.Pos, onExit: onExit})
}

// Flush buffered output, returning the first write error encountered.
func (r *Reader) Flush() error {
	if r.out == nil {
		return r.err
	}
	if err := r.out.Flush(); err != nil && r.err == nil {
		r.err = err
	}
	if r.err != nil {
		return Wrapf(r.Pos(), r.err, "write failed")
	}
	return nil
}

// exit regions whose last character is before offset i.
func (r *Reader) exit(i int) {
	if len(r.regions) == 0 {
		return
	}
	kept := r.regions[:0]
	var exited []region
	for _, reg := range r.regions {
		if reg.end <= i {
			exited = append(exited, reg)
			continue
		}
		kept = append(kept, reg)
	}
	r.regions = kept
	// Innermost first.
	for j := len(exited) - 1; j >= 0; j-- {
		if exited[j].onExit != nil {
			exited[j].onExit()
		}
	}
}

func (r *Reader) write(c rune) {
	if r.out == nil || r.err != nil {
		return
	}
	_, r.err = r.out.WriteRune(c)
	r.last = c
}
