package vlogpp

import (
	"strings"

	"github.com/vlogpp/vlogpp/lexer"
)

// Balanced group openers and their closers.
var balanced = map[rune]rune{
	'(': ')',
	'{': '}',
	'[': ']',
	'"': '"',
}

// scanner accumulates text read from a Reader, descending into balanced
// groups so that separators nested inside them are copied rather than
// returned.
type scanner struct {
	r    Reader
	text strings.Builder
}

func newScanner(r Reader) *scanner {
	return &scanner{r: r}
}

// scan reads until one of terminators is seen at depth zero. The terminator
// is consumed and returned but not appended to the text.
func (s *scanner) scan(terminators ...rune) (rune, error) {
	return s.scanDepth(terminators, 0)
}

func (s *scanner) scanDepth(terminators []rune, depth int) (rune, error) {
	// Brackets inside a string literal are plain text.
	inString := depth > 0 && len(terminators) == 1 && terminators[0] == '"'
	for {
		pos := s.r.Pos()
		c := s.r.Next()
		switch c {
		case lexer.EOF:
			return c, errorAt(CodeUnterminatedScan, pos)

		case lexer.NL:
			return c, errorAt(CodeUnexpectedNewline, pos)

		case '\\':
			pos = s.r.Pos()
			n := s.r.Next()
			if n == lexer.EOF {
				return n, errorAt(CodeUnterminatedScan, pos)
			}
			s.text.WriteRune(c)
			s.text.WriteRune(n)

		case '`':
			// `` `" and `\`"
			s.text.WriteRune(c)
			switch la := s.r.Peek(0); {
			case la == '`' || la == '"':
				s.text.WriteRune(s.r.Next())
			case la == '\\' && s.r.Peek(1) == '`' && s.r.Peek(2) == '"':
				for i := 0; i < 3; i++ {
					s.text.WriteRune(s.r.Next())
				}
			}

		default:
			if containsRune(terminators, c) {
				return c, nil
			}
			s.text.WriteRune(c)
			closer, ok := balanced[c]
			if !ok || inString {
				continue
			}
			hit, err := s.scanDepth([]rune{closer}, depth+1)
			if err != nil {
				return hit, err
			}
			s.text.WriteRune(hit)
		}
	}
}

// parseArgs splits a parenthesised list, whose "(" has already been
// consumed, at top-level commas.
func (s *scanner) parseArgs(requireNonEmpty bool) ([]string, error) {
	var args []string
	for {
		s.text.Reset()
		hit, err := s.scan(',', ')')
		if err != nil {
			return nil, err
		}
		arg := strings.TrimSpace(s.text.String())
		if requireNonEmpty && arg == "" {
			return nil, errorAt(CodeEmptyFormalArgument, s.r.Pos())
		}
		args = append(args, arg)
		if hit == ')' {
			return args, nil
		}
	}
}

func containsRune(runes []rune, c rune) bool {
	for _, r := range runes {
		if r == c {
			return true
		}
	}
	return false
}
