package vlogpp_test

import (
	"errors"
	"testing"

	"github.com/alecthomas/repr"
	"github.com/stretchr/testify/require"

	"github.com/vlogpp/vlogpp"
	"github.com/vlogpp/vlogpp/lexer"
)

func str(s string) *string { return &s }

func mustParseDefinition(t *testing.T, input string) *vlogpp.Definition {
	t.Helper()
	defn, err := vlogpp.ParseDefinition(lexer.NewReader("test.v", input, nil))
	require.NoError(t, err)
	return defn
}

func TestParseDefinition(t *testing.T) {
	m := vlogpp.Marker
	tests := []struct {
		name    string
		input   string
		macro   string
		formals []vlogpp.FormalParameter
		body    string
	}{
		{name: "Simple", input: "`define WIDTH 8\n", macro: "WIDTH", body: "8"},
		{name: "Empty", input: "`define EMPTY\n", macro: "EMPTY", body: ""},
		{name: "SpaceBeforeParen", input: "`define M (a) a\n", macro: "M", body: "(a) a"},
		{name: "BlanksAndComments", input: "`define /* c */ M \t 1 + /* two */ 2\n", macro: "M", body: "1 + /* two */ 2"},
		{
			name:    "Formals",
			input:   "`define M(a, b=2, c = x y ) a+b+c\n",
			macro:   "M",
			formals: []vlogpp.FormalParameter{{Name: "a"}, {Name: "b", Default: str("2")}, {Name: "c", Default: str("x y")}},
			body:    m(1) + "+" + m(2) + "+" + m(3),
		},
		{
			name:    "EmptyDefault",
			input:   "`define M(a=) [a]\n",
			macro:   "M",
			formals: []vlogpp.FormalParameter{{Name: "a", Default: str("")}},
			body:    "[" + m(1) + "]",
		},
		{
			name:    "NestedDefault",
			input:   "`define M(a=f(1,2)) a\n",
			macro:   "M",
			formals: []vlogpp.FormalParameter{{Name: "a", Default: str("f(1,2)")}},
			body:    m(1),
		},
		{
			name:    "WholeWords",
			input:   "`define M(a) a ab _a a_ a$ a1 (a)a\n",
			macro:   "M",
			formals: []vlogpp.FormalParameter{{Name: "a"}},
			body:    m(1) + " ab _a a_ a$ a1 (" + m(1) + ")" + m(1),
		},
		{
			name:    "LongestNameFirst",
			input:   "`define M(a, ab) ab a\n",
			macro:   "M",
			formals: []vlogpp.FormalParameter{{Name: "a"}, {Name: "ab"}},
			body:    m(2) + " " + m(1),
		},
		{
			name:    "Continuation",
			input:   "`define M(x) x \\\n  + 1\n",
			macro:   "M",
			formals: []vlogpp.FormalParameter{{Name: "x"}},
			body:    m(1) + " \n  + 1",
		},
		{name: "CRLFContinuation", input: "`define M 1 \\\r\n2\r\n", macro: "M", body: "1 \n2"},
		{name: "LineComment", input: "`define A 1 // one\n", macro: "A", body: "1"},
		{name: "LineCommentInString", input: "`define S \"a // b\"\n", macro: "S", body: `"a // b"`},
		{name: "Escapes", input: "`define Q `\"a``b`\"\n", macro: "Q", body: "`\"a``b`\""},
		{
			name:    "EscapedQuoteThenComment",
			input:   "`define D(x) `\"a `\\`\" x`\" // c\n",
			macro:   "D",
			formals: []vlogpp.FormalParameter{{Name: "x"}},
			body:    "`\"a `\\`\" " + m(1) + "`\"",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			defn := mustParseDefinition(t, test.input)
			require.Equal(t, test.macro, defn.Name)
			require.Equal(t, test.formals, defn.Formals, repr.String(defn))
			require.Equal(t, test.body, defn.Body)
			require.Equal(t, 1, defn.Pos.Line)
		})
	}
}

func TestParseDefinitionConsumesLine(t *testing.T) {
	r := lexer.NewReader("", "`define A 1 \\\n 2\nnext", nil)
	_, err := vlogpp.ParseDefinition(r)
	require.NoError(t, err)
	require.Equal(t, 'n', r.Peek(0))
	require.Equal(t, 3, r.Pos().Line)
}

func TestParseDefinitionErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  vlogpp.Code
		macro string
	}{
		{"MissingName", "`define\n", vlogpp.CodeMissingMacroName, ""},
		{"BadName", "`define 9x 1\n", vlogpp.CodeMissingMacroName, ""},
		{"EmptyFormal", "`define M(a,,b) x\n", vlogpp.CodeEmptyFormalArgument, "M"},
		{"NoFormals", "`define M() x\n", vlogpp.CodeEmptyFormalArgument, "M"},
		{"InvalidFormal", "`define M(a b) x\n", vlogpp.CodeInvalidFormalArgument, "M"},
		{"DigitFormal", "`define M(1a) x\n", vlogpp.CodeInvalidFormalArgument, "M"},
		{"DuplicateFormal", "`define M(a, a=1) x\n", vlogpp.CodeDuplicateFormalArgument, "M"},
		{"UnterminatedBody", "`define M x", vlogpp.CodeUnterminatedDefinition, "M"},
		{"ContinuationAtEOF", "`define M x \\", vlogpp.CodeUnterminatedDefinition, "M"},
		{"UnterminatedFormals", "`define M(a x\n", vlogpp.CodeUnexpectedNewline, "M"},
		{"FormalsAtEOF", "`define M(a", vlogpp.CodeUnterminatedScan, "M"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := vlogpp.ParseDefinition(lexer.NewReader("test.v", test.input, nil))
			var perr *vlogpp.Error
			require.True(t, errors.As(err, &perr), "%v", err)
			require.Equal(t, test.code, perr.Code, err.Error())
			require.Equal(t, test.macro, perr.Macro)
			require.Equal(t, "`define", perr.Directive)
		})
	}
}

func TestDefinitionString(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"`define A\n", "`define A"},
		{"`define A 1\n", "`define A 1"},
		{"`define M(a,b = 2)  a +  b\n", "`define M(a, b=2) a +  b"},
		{"`define M(x) x \\\n+ 1\n", "`define M(x) x \\\n+ 1"},
	}
	for _, test := range tests {
		t.Run(test.expected, func(t *testing.T) {
			defn := mustParseDefinition(t, test.input)
			require.Equal(t, test.expected, defn.String())
			// Rendering and reparsing is a fixed point.
			again := mustParseDefinition(t, defn.String()+"\n")
			require.Equal(t, defn.Formals, again.Formals)
			require.Equal(t, defn.Body, again.Body)
		})
	}
}

func TestDefinitionTextKeepsLiteralMarkers(t *testing.T) {
	body := "\uFDD01\uFDD1 a"
	defn := mustParseDefinition(t, "`define M(a) "+body+"\n")
	require.Equal(t, body, defn.Text())
}
