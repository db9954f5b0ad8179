package vlogpp

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vlogpp/vlogpp/lexer"
)

// include processes "`include "file"" or "`include <file>" at the cursor.
func (c *passContext) include() error {
	src := c.src
	pos := src.Pos()
	c.consume(len("`include"))
	echo := src.SetEcho(false)
	defer src.SetEcho(echo)
	skipBlanks(src)
	var closer rune
	switch src.Peek(0) {
	case '"':
		closer = '"'
	case '<':
		closer = '>'
	default:
		return &Error{Code: CodeBadInclude, Pos: pos, Directive: "`include"}
	}
	src.Next()
	var b strings.Builder
	for {
		ch := src.Next()
		if ch == closer {
			break
		}
		if ch == lexer.EOF || ch == lexer.NL {
			return &Error{Code: CodeBadInclude, Pos: pos, Directive: "`include"}
		}
		b.WriteRune(ch)
	}
	path := b.String()
	if path == "" {
		return &Error{Code: CodeBadInclude, Pos: pos, Directive: "`include"}
	}

	resolved, err := c.resolveInclude(path, src.Filename())
	if err != nil {
		return &Error{Code: CodeIncludeNotFound, Pos: pos, Directive: "`include", Path: path, Err: err}
	}
	if c.including(resolved) || c.depth+1 > c.maxIncludeDepth {
		return &Error{Code: CodeIncludeCycle, Pos: pos, Directive: "`include", Path: path}
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return &Error{Code: CodeIncludeNotFound, Pos: pos, Directive: "`include", Path: path, Err: err}
	}
	c.tracef("include %q at %s", resolved, pos)

	if c.lineDirectives {
		src.Emit(fmt.Sprintf("`line 1 %q 1\n", resolved))
	}
	child := c.child(resolved, string(data))
	if err := child.run(); err != nil {
		return err
	}
	if err := child.src.Flush(); err != nil {
		return err
	}
	if c.lineDirectives {
		if !child.src.AtLineStart() {
			src.Emit("\n")
		}
		src.Emit(fmt.Sprintf("`line %d %q 2", pos.Line+1, src.Filename()))
	}
	return nil
}

// including returns true if filename is already being processed.
func (c *passContext) including(filename string) bool {
	filename = absPath(filename)
	for f := c; f != nil; f = f.parent {
		if absPath(f.src.Filename()) == filename {
			return true
		}
	}
	return false
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

// resolveInclude finds path relative to the including file, then in each
// include directory, then relative to the working directory.
func (c *passContext) resolveInclude(path, includingFile string) (string, error) {
	if filepath.IsAbs(path) {
		if fileExists(path) {
			return filepath.Clean(path), nil
		}
		return "", os.ErrNotExist
	}
	var candidates []string
	if includingFile != "" && includingFile != "<stdin>" {
		candidates = append(candidates, filepath.Join(filepath.Dir(includingFile), path))
	}
	for _, dir := range c.includeDirs {
		candidates = append(candidates, filepath.Join(dir, path))
	}
	candidates = append(candidates, path)
	for _, candidate := range candidates {
		if fileExists(candidate) {
			return filepath.Clean(candidate), nil
		}
	}
	return "", fmt.Errorf("cannot resolve include %q", path)
}

func fileExists(p string) bool {
	st, err := os.Stat(p)
	return err == nil && !st.IsDir()
}
