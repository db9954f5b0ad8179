package vlogpp

import (
	"github.com/vlogpp/vlogpp/lexer"
)

// condStack tracks nested "`ifdef" / "`ifndef" groups.
type condStack struct {
	stack []condFrame
}

type condFrame struct {
	parentActive bool
	// A branch of this group has been taken.
	taken  bool
	active bool
	inElse bool
	pos    lexer.Position
}

// Active returns true if text at the current nesting is being kept.
func (c *condStack) Active() bool {
	if len(c.stack) == 0 {
		return true
	}
	return c.stack[len(c.stack)-1].active
}

func (c *condStack) push(cond bool, pos lexer.Position) {
	parent := c.Active()
	active := parent && cond
	c.stack = append(c.stack, condFrame{
		parentActive: parent,
		taken:        active,
		active:       active,
		pos:          pos,
	})
}

func (c *condStack) top(directive string, pos lexer.Position) (*condFrame, error) {
	if len(c.stack) == 0 {
		return nil, &Error{Code: CodeUnmatchedConditional, Pos: pos, Directive: directive}
	}
	return &c.stack[len(c.stack)-1], nil
}

func (c *condStack) elsif(cond bool, pos lexer.Position) error {
	top, err := c.top("`elsif", pos)
	if err != nil {
		return err
	}
	if top.inElse {
		return &Error{Code: CodeConditionalAfterElse, Pos: pos, Directive: "`elsif", Started: top.pos}
	}
	top.active = top.parentActive && !top.taken && cond
	top.taken = top.taken || top.active
	return nil
}

func (c *condStack) els(pos lexer.Position) error {
	top, err := c.top("`else", pos)
	if err != nil {
		return err
	}
	if top.inElse {
		return &Error{Code: CodeConditionalAfterElse, Pos: pos, Directive: "`else", Started: top.pos}
	}
	top.inElse = true
	top.active = top.parentActive && !top.taken
	top.taken = true
	return nil
}

func (c *condStack) pop(pos lexer.Position) error {
	if _, err := c.top("`endif", pos); err != nil {
		return err
	}
	c.stack = c.stack[:len(c.stack)-1]
	return nil
}

// finish checks that every group was closed at end of input.
func (c *condStack) finish(pos lexer.Position) error {
	if len(c.stack) == 0 {
		return nil
	}
	return &Error{Code: CodeUnterminatedConditional, Pos: pos, Started: c.stack[len(c.stack)-1].pos}
}
