package vlogpp

import (
	"fmt"
)

// An Option to modify the behaviour of the Preprocessor.
type Option func(p *Preprocessor) error

// IncludeDirs adds directories searched for "`include" files, in order,
// after the directory of the including file.
func IncludeDirs(dirs ...string) Option {
	return func(p *Preprocessor) error {
		p.includeDirs = append(p.includeDirs, dirs...)
		return nil
	}
}

// Define a macro before any source is processed, as if by
// "`define <name> <body>". name may carry a formal parameter list.
func Define(name, body string) Option {
	return func(p *Preprocessor) error {
		p.predefined = append(p.predefined, [2]string{name, body})
		return nil
	}
}

// Defines macros from command line style "NAME=VALUE" strings.
//
// See ParseDefine.
func Defines(defs ...string) Option {
	return func(p *Preprocessor) error {
		for _, def := range defs {
			name, value := ParseDefine(def)
			if name == "" {
				return fmt.Errorf("invalid macro definition %q", def)
			}
			p.predefined = append(p.predefined, [2]string{name, value})
		}
		return nil
	}
}

// Redefinition sets the policy applied when a macro is defined twice.
//
// The default is to replace the previous definition.
func Redefinition(fn RedefineFunc) Option {
	return func(p *Preprocessor) error {
		p.redefine = fn
		return nil
	}
}

// Strict rejects redefinition of a macro with different text.
func Strict() Option {
	return Redefinition(StrictRedefinition)
}

// LineDirectives emits "`line" directives around included files so that
// downstream tools report positions in the original files.
func LineDirectives() Option {
	return func(p *Preprocessor) error {
		p.lineDirectives = true
		return nil
	}
}

// MaxIncludeDepth limits the nesting of "`include" directives.
func MaxIncludeDepth(n int) Option {
	return func(p *Preprocessor) error {
		if n < 1 {
			return fmt.Errorf("include depth must be at least 1, not %d", n)
		}
		p.maxIncludeDepth = n
		return nil
	}
}
