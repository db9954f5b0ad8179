package vlogpp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vlogpp/vlogpp/lexer"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"Simple", "a, b ,c)", []string{"a", "b", "c"}},
		{"Empty", ")", []string{""}},
		{"Blank", "a, ,c)", []string{"a", "", "c"}},
		{"Nested", "f(x, y), {a, b}, [1:0], z)", []string{"f(x, y)", "{a, b}", "[1:0]", "z"}},
		{"DeeplyNested", "((a, (b)), c))", []string{"((a, (b)), c)"}},
		{"String", `"a, b", c)`, []string{`"a, b"`, "c"}},
		{"BracketInString", `"(", ")")`, []string{`"("`, `")"`}},
		{"Backslash", `a\,b, \)c)`, []string{`a\,b`, `\)c`}},
		{"Escapes", "a``b, `\"c)", []string{"a``b", "`\"c"}},
		{"EscapedQuoteInString", "\"`\\`\"\", b)", []string{"\"`\\`\"\"", "b"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := lexer.NewReader("", test.input+"rest", nil)
			args, err := newScanner(r).parseArgs(false)
			require.NoError(t, err)
			require.Equal(t, test.expected, args)
			require.Equal(t, 'r', r.Peek(0), "the closing parenthesis should be consumed")
		})
	}
}

func TestParseArgsErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		required bool
		code     Code
		column   int
	}{
		{"EOF", "a, (b", false, CodeUnterminatedScan, 6},
		{"EOFAfterBackslash", `a\`, false, CodeUnterminatedScan, 3},
		{"Newline", "a,\nb)", false, CodeUnexpectedNewline, 3},
		{"NewlineInString", "\"a\n\")", false, CodeUnexpectedNewline, 3},
		{"RequiredBlank", "a, , b)", true, CodeEmptyFormalArgument, 5},
		{"RequiredEmpty", ")", true, CodeEmptyFormalArgument, 2},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := lexer.NewReader("", test.input, nil)
			_, err := newScanner(r).parseArgs(test.required)
			var perr *Error
			require.True(t, errors.As(err, &perr), "%v", err)
			require.Equal(t, test.code, perr.Code)
			require.Equal(t, test.column, perr.Pos.Column)
		})
	}
}

func TestScanTerminators(t *testing.T) {
	r := lexer.NewReader("", "a (;) ; b", nil)
	s := newScanner(r)
	hit, err := s.scan(';')
	require.NoError(t, err)
	require.Equal(t, ';', hit)
	require.Equal(t, "a (;) ", s.text.String())
}
