package vlogpp

import (
	"fmt"
	"io"
	"strings"
)

// Trace definitions, expansions and includes to "w".
func Trace(w io.Writer) Option {
	return func(p *Preprocessor) error {
		p.trace = w
		return nil
	}
}

func (c *passContext) tracef(format string, args ...interface{}) {
	if c.trace == nil {
		return
	}
	fmt.Fprintf(c.trace, "%s%s\n", strings.Repeat("  ", c.depth), fmt.Sprintf(format, args...))
}
