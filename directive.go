package vlogpp

import (
	"strconv"
	"strings"

	"github.com/vlogpp/vlogpp/lexer"
)

// Compiler directives that are not interpreted and are copied to the output.
var passThrough = map[string]bool{
	"begin_keywords":          true,
	"celldefine":              true,
	"default_decay_time":      true,
	"default_nettype":         true,
	"default_trireg_strength": true,
	"delay_mode_distributed":  true,
	"delay_mode_path":         true,
	"delay_mode_unit":         true,
	"delay_mode_zero":         true,
	"end_keywords":            true,
	"endcelldefine":           true,
	"endprotect":              true,
	"line":                    true,
	"nounconnected_drive":     true,
	"pragma":                  true,
	"protect":                 true,
	"resetall":                true,
	"timescale":               true,
	"unconnected_drive":       true,
}

// directive handles the "`" at the cursor.
func (c *passContext) directive() error {
	src := c.src
	pos := src.Pos()
	name := peekIdent(src, 1)
	active := c.cond.Active()
	switch name {
	case "":
		c.next()
		return nil

	case "define":
		if !active {
			c.skipDefinition()
			return nil
		}
		return c.define()

	case "undef":
		c.consume(1 + len(name))
		if !active {
			return nil
		}
		id, err := c.directiveIdent("`undef", pos)
		if err != nil {
			return err
		}
		c.defns.Undefine(id)
		c.tracef("undef %s at %s", id, pos)
		return nil

	case "undefineall":
		c.consume(1 + len(name))
		if active {
			c.defns.UndefineAll()
			c.tracef("undefineall at %s", pos)
		}
		return nil

	case "ifdef", "ifndef":
		c.consume(1 + len(name))
		id, err := c.directiveIdent("`"+name, pos)
		if err != nil {
			return err
		}
		defined := c.defns.Lookup(id) != nil
		c.cond.push(defined == (name == "ifdef"), pos)
		return nil

	case "elsif":
		c.consume(1 + len(name))
		id, err := c.directiveIdent("`elsif", pos)
		if err != nil {
			return err
		}
		return c.cond.elsif(c.defns.Lookup(id) != nil, pos)

	case "else":
		c.consume(1 + len(name))
		return c.cond.els(pos)

	case "endif":
		c.consume(1 + len(name))
		return c.cond.pop(pos)

	case "include":
		if !active {
			c.consume(1 + len(name))
			return nil
		}
		return c.include()
	}

	if !active {
		c.consume(1 + len(name))
		return nil
	}
	if c.defns.Lookup(name) == nil {
		switch {
		case name == "__FILE__":
			c.consume(1 + len(name))
			src.Emit(strconv.Quote(pos.Filename))
			return nil
		case name == "__LINE__":
			c.consume(1 + len(name))
			src.Emit(strconv.Itoa(pos.Line))
			return nil
		case passThrough[name]:
			for i := 0; i < 1+len(name); i++ {
				c.next()
			}
			return nil
		}
	}
	inv, err := Expand(src, c.defns, c.guard)
	if err != nil {
		return err
	}
	c.tracef("expand %s at %s: %q", inv.Name, inv.Pos, inv.Text)
	return nil
}

// define parses and registers a definition. The line terminators consumed
// by the directive are written out so output lines stay in step with the
// input.
func (c *passContext) define() error {
	src := c.src
	echo := src.SetEcho(false)
	defer src.SetEcho(echo)
	line := src.Pos().Line
	defn, err := ParseDefinition(src)
	if err != nil {
		return err
	}
	if err := c.defns.Define(defn); err != nil {
		return err
	}
	c.tracef("define %s at %s", defn.Name, defn.Pos)
	if n := src.Pos().Line - line; n > 0 {
		src.Emit(strings.Repeat("\n", n))
	}
	return nil
}

// skipDefinition drops a "`define" in inactive text, honouring line
// continuations.
func (c *passContext) skipDefinition() {
	for {
		switch ch := c.next(); {
		case ch == lexer.EOF || ch == lexer.NL:
			return
		case ch == '\\' && c.src.Peek(0) == lexer.NL:
			c.next()
		}
	}
}
