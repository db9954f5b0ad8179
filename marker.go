package vlogpp

import (
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/vlogpp/vlogpp/lexer"
)

// Marker delimiters are Unicode noncharacters, which never occur in
// legitimate source text. A literal delimiter in a macro body is escaped by
// following it immediately with markerClose.
const (
	markerOpen  = '\uFDD0'
	markerClose = '\uFDD1'
)

// Marker returns the token standing in for the formal parameter at the
// 1-origin position i of a definition body.
func Marker(i int) string {
	return string(markerOpen) + strconv.Itoa(i) + string(markerClose)
}

func escapeMarkers(s string) string {
	if !strings.ContainsRune(s, markerOpen) {
		return s
	}
	return strings.ReplaceAll(s, string(markerOpen), string(markerOpen)+string(markerClose))
}

// addMarkers replaces every whole-word occurrence of each formal parameter
// name in body with its marker, longest names first.
func addMarkers(body string, formals []FormalParameter) string {
	type namePos struct {
		name string
		pos  int
	}
	pairs := make([]namePos, len(formals))
	for i, formal := range formals {
		pairs[i] = namePos{formal.Name, i + 1}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return len(pairs[i].name) > len(pairs[j].name)
	})
	for _, pair := range pairs {
		body = replaceWord(body, pair.name, Marker(pair.pos))
	}
	return body
}

// replaceWord replaces occurrences of word in s bounded on both sides by a
// non-identifier character or the ends of s.
func replaceWord(s, word, repl string) string {
	var b strings.Builder
	last := 0
	for i := 0; i+len(word) <= len(s); {
		j := strings.Index(s[i:], word)
		if j < 0 {
			break
		}
		start := i + j
		end := start + len(word)
		if !wordBounded(s, start, end) {
			i = start + 1
			continue
		}
		b.WriteString(s[last:start])
		b.WriteString(repl)
		last = end
		i = end
	}
	if last == 0 {
		return s
	}
	b.WriteString(s[last:])
	return b.String()
}

func wordBounded(s string, start, end int) bool {
	if start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(s[:start]); lexer.IsIdentPart(r) {
			return false
		}
	}
	if end < len(s) {
		if r, _ := utf8.DecodeRuneInString(s[end:]); lexer.IsIdentPart(r) {
			return false
		}
	}
	return true
}

// substitute makes a single pass over body replacing the marker for
// position i with values[i-1]. Values are copied as is and never searched
// for markers. With escapes set the macro text escapes are resolved:
// "``" is removed, "`\"" becomes "\"" and "`\\`\"" becomes "\\\"".
func substitute(body string, values []string, escapes bool) string {
	if !strings.ContainsRune(body, markerOpen) && (!escapes || !strings.ContainsRune(body, '`')) {
		return body
	}
	var b strings.Builder
	for i := 0; i < len(body); {
		c, size := utf8.DecodeRuneInString(body[i:])
		rest := body[i+size:]
		switch {
		case c == markerOpen:
			k := 0
			for k < len(rest) && rest[k] >= '0' && rest[k] <= '9' {
				k++
			}
			closer, csize := utf8.DecodeRuneInString(rest[k:])
			switch {
			case closer != markerClose:
				b.WriteRune(c)
				i += size
				continue
			case k == 0:
				b.WriteRune(markerOpen)
			default:
				n, _ := strconv.Atoi(rest[:k])
				if n >= 1 && n <= len(values) {
					b.WriteString(values[n-1])
				}
			}
			i += size + k + csize

		case escapes && c == '`' && strings.HasPrefix(rest, "`"):
			i += 2

		case escapes && c == '`' && strings.HasPrefix(rest, `"`):
			b.WriteByte('"')
			i += 2

		case escapes && c == '`' && strings.HasPrefix(rest, "\\`\""):
			b.WriteString(`\"`)
			i += 4

		default:
			b.WriteRune(c)
			i += size
		}
	}
	return b.String()
}
