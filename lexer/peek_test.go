package lexer_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vlogpp/vlogpp/lexer"
)

func readAll(r *lexer.Reader) string {
	out := []rune{}
	for c := r.Next(); c != lexer.EOF; c = r.Next() {
		out = append(out, c)
	}
	return string(out)
}

func TestPeekNext(t *testing.T) {
	r := lexer.NewReader("a.v", "ab\ncd", nil)
	require.Equal(t, 'a', r.Peek(0))
	require.Equal(t, 'b', r.Peek(1))
	require.Equal(t, lexer.NL, r.Peek(2))
	require.Equal(t, lexer.EOF, r.Peek(5))
	require.Equal(t, lexer.EOF, r.Peek(-1))

	require.Equal(t, lexer.Position{Filename: "a.v", Line: 1, Column: 1}, r.Pos())
	require.Equal(t, 'a', r.Next())
	require.Equal(t, 'b', r.Next())
	require.Equal(t, lexer.NL, r.Next())
	require.Equal(t, lexer.Position{Filename: "a.v", Offset: 3, Line: 2, Column: 1}, r.Pos())
	require.Equal(t, "cd", readAll(r))
	require.Equal(t, lexer.EOF, r.Next())
	require.Equal(t, "a.v:2:3", r.Pos().String())
}

func TestEcho(t *testing.T) {
	w := &bytes.Buffer{}
	r := lexer.NewReader("", "abcdef", w)
	r.Next()
	prev := r.SetEcho(false)
	require.True(t, prev)
	r.Next()
	r.SetEcho(true)
	r.Emit("<>")
	readAll(r)
	require.NoError(t, r.Flush())
	require.Equal(t, "a<>cdef", w.String())
}

func TestAtLineStart(t *testing.T) {
	w := &bytes.Buffer{}
	r := lexer.NewReader("", "a\nb", w)
	require.True(t, r.AtLineStart())
	r.Next()
	require.False(t, r.AtLineStart())
	r.Next()
	require.True(t, r.AtLineStart())
	r.Emit("x")
	require.False(t, r.AtLineStart())
}

func TestReplaceIsRescanned(t *testing.T) {
	r := lexer.NewReader("", "x `M y", nil)
	r.Next()
	r.Next()
	start := r.Mark()
	r.Next()
	r.Next()
	exited := 0
	r.Replace(start, "12", func() { exited++ })
	require.Equal(t, 2, r.Offset())
	require.True(t, r.InRegion())
	// Positions inside replacement text are those of the replaced span.
	require.Equal(t, 3, r.Pos().Column)
	require.Equal(t, '1', r.Next())
	require.Equal(t, 3, r.Pos().Column)
	require.Equal(t, '2', r.Next())
	require.Equal(t, 0, exited)
	require.Equal(t, ' ', r.Next())
	require.Equal(t, 1, exited)
	require.False(t, r.InRegion())
	require.Equal(t, 6, r.Pos().Column)
	require.Equal(t, "y", readAll(r))
	require.Equal(t, 1, exited)
}

func TestReplaceNested(t *testing.T) {
	r := lexer.NewReader("", "`A;", nil)
	var order []string
	start := r.Mark()
	r.Next()
	r.Next()
	r.Replace(start, "`B+", func() { order = append(order, "A") })
	start = r.Mark()
	r.Next()
	r.Next()
	r.Replace(start, "b", func() { order = append(order, "B") })
	require.Equal(t, 'b', r.Next())
	require.Empty(t, order)
	require.Equal(t, '+', r.Next())
	require.Equal(t, []string{"B"}, order)
	require.Equal(t, ';', r.Next())
	require.Equal(t, []string{"B", "A"}, order)
}

func TestReplaceAtEndOfInput(t *testing.T) {
	r := lexer.NewReader("", "`A", nil)
	start := r.Mark()
	r.Next()
	r.Next()
	exited := false
	r.Replace(start, "", func() { exited = true })
	require.False(t, exited)
	require.Equal(t, lexer.EOF, r.Next())
	require.True(t, exited)
}

func TestSlice(t *testing.T) {
	r := lexer.NewReader("", "hello", nil)
	require.Equal(t, "ell", r.Slice(1, 4))
	require.Equal(t, "hello", r.Slice(-3, 10))
	require.Equal(t, "", r.Slice(3, 2))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestFlushError(t *testing.T) {
	r := lexer.NewReader("out.v", "abc", failingWriter{})
	readAll(r)
	err := r.Flush()
	require.EqualError(t, err, "out.v:1:4: write failed: disk full")
}
