package vlogpp

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/vlogpp/vlogpp/lexer"
)

// Preprocessor expands text macros and compiler directives in Verilog source.
//
// Definitions persist across calls to Process, as they do across the files
// of a single compilation unit. A Preprocessor must not be used
// concurrently.
type Preprocessor struct {
	includeDirs     []string
	predefined      [][2]string
	defns           *Defns
	redefine        RedefineFunc
	trace           io.Writer
	lineDirectives  bool
	maxIncludeDepth int
}

// New creates a Preprocessor.
func New(options ...Option) (*Preprocessor, error) {
	p := &Preprocessor{maxIncludeDepth: 64}
	for _, option := range options {
		if err := option(p); err != nil {
			return nil, err
		}
	}
	p.defns = NewDefns(p.redefine)
	for _, def := range p.predefined {
		if err := p.predefine(def[0], def[1]); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// MustNew creates a Preprocessor or panics.
func MustNew(options ...Option) *Preprocessor {
	p, err := New(options...)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Preprocessor) predefine(name, body string) error {
	text := "`define " + name + " " + strings.ReplaceAll(body, "\n", "\\\n") + "\n"
	defn, err := ParseDefinition(lexer.NewReader("<command-line>", text, nil))
	if err != nil {
		return err
	}
	return p.defns.Define(defn)
}

// Definitions returns the macros currently defined.
func (p *Preprocessor) Definitions() *Defns { return p.defns }

// Process preprocesses the source read from r and writes the result to w.
//
// Nothing is written to w if an error occurs.
func (p *Preprocessor) Process(filename string, r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	buf := &bytes.Buffer{}
	if err := p.process(filename, string(data), buf); err != nil {
		return err
	}
	_, err = w.Write(buf.Bytes())
	return err
}

// ProcessString preprocesses input.
func (p *Preprocessor) ProcessString(filename, input string) (string, error) {
	buf := &bytes.Buffer{}
	if err := p.process(filename, input, buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (p *Preprocessor) process(filename, input string, buf *bytes.Buffer) error {
	c := newPassContext(p, filename, input, bufio.NewWriter(buf))
	c.tracef("process %q", filename)
	if err := c.run(); err != nil {
		return err
	}
	return c.src.Flush()
}
