package vlogpp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func formals(names ...string) []FormalParameter {
	out := make([]FormalParameter, len(names))
	for i, name := range names {
		out[i] = FormalParameter{Name: name}
	}
	return out
}

func TestAddMarkersFixedPoint(t *testing.T) {
	tests := []struct {
		body    string
		formals []string
	}{
		{"a+b", []string{"a", "b"}},
		{"data_in & data & in", []string{"data", "in", "data_in"}},
		{"x x x", []string{"x"}},
		{"name ab a b abc", []string{"a", "ab", "abc", "b"}},
	}
	for _, test := range tests {
		t.Run(test.body, func(t *testing.T) {
			fs := formals(test.formals...)
			once := addMarkers(test.body, fs)
			require.Equal(t, once, addMarkers(once, fs))
			for _, name := range test.formals {
				require.Equal(t, once, replaceWord(once, name, "!"), "%q remains in %q", name, once)
			}
		})
	}
}

func TestAddMarkersLongestFirst(t *testing.T) {
	body := addMarkers("data_in & data & in", formals("data", "in", "data_in"))
	require.Equal(t, Marker(3)+" & "+Marker(1)+" & "+Marker(2), body)
}

func TestSubstituteOrderIndependent(t *testing.T) {
	body := addMarkers("(a) | (b) | (c) | a", formals("a", "b", "c"))
	values := []string{"x1", "y2", "z3"}
	forward, backward := body, body
	for i := range values {
		forward = strings.ReplaceAll(forward, Marker(i+1), values[i])
	}
	for i := len(values) - 1; i >= 0; i-- {
		backward = strings.ReplaceAll(backward, Marker(i+1), values[i])
	}
	require.Equal(t, forward, backward)
	require.Equal(t, forward, substitute(body, values, false))
	require.Equal(t, "(x1) | (y2) | (z3) | x1", forward)
}

func TestSubstituteEscapes(t *testing.T) {
	tests := []struct {
		body     string
		escapes  bool
		expected string
	}{
		{"a``b", true, "ab"},
		{"`\"s`\"", true, `"s"`},
		{"`\\`\"", true, `\"`},
		{"a``b", false, "a``b"},
		{"`x", true, "`x"},
		{"\uFDD0\uFDD1", true, "\uFDD0"},
		{"\uFDD0x", true, "\uFDD0x"},
		{Marker(7), true, ""},
	}
	for _, test := range tests {
		t.Run(test.body, func(t *testing.T) {
			require.Equal(t, test.expected, substitute(test.body, nil, test.escapes))
		})
	}
}

func TestEscapeMarkers(t *testing.T) {
	require.Equal(t, "plain", escapeMarkers("plain"))
	require.Equal(t, "\uFDD0\uFDD12", escapeMarkers("\uFDD02"))
}
