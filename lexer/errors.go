package lexer

import "fmt"

// Error represents an error raised by the character stream.
type Error struct {
	Message string
	Pos     Position
	Err     error
}

// Wrapf wraps err with a message at the given position.
func Wrapf(pos Position, err error, format string, args ...interface{}) *Error {
	return &Error{
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
		Err:     err,
	}
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return FormatError(e.Pos, msg)
}

func (e *Error) Unwrap() error { return e.Err }

// FormatError formats an error in the form "[<filename>:][<line>:<col>:] <message>"
func FormatError(pos Position, message string) string {
	msg := ""
	if pos.Filename != "" {
		msg += pos.Filename + ":"
	}
	if pos.Line != 0 || pos.Column != 0 {
		msg += fmt.Sprintf("%d:%d:", pos.Line, pos.Column)
	}
	if len(msg) > 0 {
		msg += " " + message
	} else {
		msg = message
	}
	return msg
}
