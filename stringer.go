package vlogpp

import (
	"strings"
)

// Text returns the macro body with formal parameter names in place of markers.
func (d *Definition) Text() string {
	names := make([]string, len(d.Formals))
	for i, formal := range d.Formals {
		names[i] = formal.Name
	}
	return substitute(d.Body, names, false)
}

func (f FormalParameter) String() string {
	if f.Default == nil {
		return f.Name
	}
	return f.Name + "=" + *f.Default
}

// String renders the definition as a "`define" directive.
func (d *Definition) String() string {
	var b strings.Builder
	b.WriteString("`define ")
	b.WriteString(d.Name)
	if len(d.Formals) > 0 {
		b.WriteByte('(')
		for i, formal := range d.Formals {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(formal.String())
		}
		b.WriteByte(')')
	}
	if text := d.Text(); text != "" {
		b.WriteByte(' ')
		b.WriteString(strings.ReplaceAll(text, "\n", "\\\n"))
	}
	return b.String()
}
