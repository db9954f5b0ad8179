package vlogpp

import (
	"sort"
)

// RedefineFunc decides what happens when a macro is defined twice.
//
// Returning an error rejects the new definition.
type RedefineFunc func(prev, next *Definition) error

// Defns is the set of macro definitions active in a preprocessing pass.
type Defns struct {
	defns    map[string]*Definition
	redefine RedefineFunc
}

var _ Registry = &Defns{}

// NewDefns creates an empty set of definitions.
//
// A nil redefine overwrites the previous definition.
func NewDefns(redefine RedefineFunc) *Defns {
	return &Defns{defns: map[string]*Definition{}, redefine: redefine}
}

// Lookup a definition by name, nil if the macro is not defined.
func (d *Defns) Lookup(name string) *Definition {
	return d.defns[name]
}

// Define adds or replaces a definition.
func (d *Defns) Define(defn *Definition) error {
	if prev, ok := d.defns[defn.Name]; ok && d.redefine != nil {
		if err := d.redefine(prev, defn); err != nil {
			return err
		}
	}
	d.defns[defn.Name] = defn
	return nil
}

// Undefine removes a definition, returning false if it did not exist.
func (d *Defns) Undefine(name string) bool {
	_, ok := d.defns[name]
	delete(d.defns, name)
	return ok
}

// UndefineAll removes every definition.
func (d *Defns) UndefineAll() {
	d.defns = map[string]*Definition{}
}

// Names of all defined macros, sorted.
func (d *Defns) Names() []string {
	names := make([]string, 0, len(d.defns))
	for name := range d.defns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of definitions.
func (d *Defns) Len() int { return len(d.defns) }

// StrictRedefinition rejects a redefinition unless it is identical to the
// previous definition.
func StrictRedefinition(prev, next *Definition) error {
	if sameDefinition(prev, next) {
		return nil
	}
	return &Error{Code: CodeRedefinedMacro, Pos: next.Pos, Macro: next.Name, Started: prev.Pos, Directive: "`define"}
}

func sameDefinition(a, b *Definition) bool {
	if a.Body != b.Body || len(a.Formals) != len(b.Formals) {
		return false
	}
	for i := range a.Formals {
		if a.Formals[i].String() != b.Formals[i].String() {
			return false
		}
	}
	return true
}

// ParseDefine splits a command line style "NAME=VALUE" or "NAME(a,b)=VALUE"
// definition. A definition without "=" has the value "1".
func ParseDefine(s string) (name, value string) {
	depth := 0
	for i, c := range s {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		case '=':
			if depth == 0 {
				return s[:i], s[i+1:]
			}
		}
	}
	return s, "1"
}
