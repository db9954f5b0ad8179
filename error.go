package vlogpp

import (
	"fmt"
	"strings"

	"github.com/vlogpp/vlogpp/lexer"
)

// Code is a stable short identifier for an error kind.
//
// Callers map codes to human readable messages, see internal/messages.
type Code string

// Error codes.
const (
	CodeRecursiveMacro           Code = "VPP-RECURSE-1"
	CodeUndefinedMacro           Code = "VPP-NODEFN"
	CodeParenthesesRequired      Code = "VPP-ARGS-1"
	CodeTooManyArguments         Code = "VPP-ARGS-2"
	CodeMissingRequiredArgument  Code = "VPP-DFLT-1"
	CodeUnterminatedDefinition   Code = "VPP-EOF-2"
	CodeUnterminatedScan         Code = "VPP-EOF-3"
	CodeUnexpectedNewline        Code = "VPP-EOLN-1"
	CodeCrossLineInvocation      Code = "VPP-EOLN-2"
	CodeEmptyFormalArgument      Code = "VPP-FARG-1"
	CodeInvalidFormalArgument    Code = "VPP-FARG-2"
	CodeDuplicateFormalArgument  Code = "VPP-FARG-3"
	CodeMissingMacroName         Code = "VPP-DEFN-1"
	CodeRedefinedMacro           Code = "VPP-REDEF-1"
	CodeUnmatchedConditional     Code = "VPP-COND-1"
	CodeUnterminatedConditional  Code = "VPP-COND-2"
	CodeConditionalAfterElse     Code = "VPP-COND-3"
	CodeMissingIdentifier        Code = "VPP-IDENT-1"
	CodeBadInclude               Code = "VPP-INCL-1"
	CodeIncludeNotFound          Code = "VPP-INCL-2"
	CodeIncludeCycle             Code = "VPP-INCL-3"
)

// Codes returns every error code.
func Codes() []Code {
	return []Code{
		CodeRecursiveMacro, CodeUndefinedMacro, CodeParenthesesRequired,
		CodeTooManyArguments, CodeMissingRequiredArgument, CodeUnterminatedDefinition,
		CodeUnterminatedScan, CodeUnexpectedNewline, CodeCrossLineInvocation,
		CodeEmptyFormalArgument, CodeInvalidFormalArgument, CodeDuplicateFormalArgument,
		CodeMissingMacroName, CodeRedefinedMacro, CodeUnmatchedConditional,
		CodeUnterminatedConditional, CodeConditionalAfterElse, CodeMissingIdentifier,
		CodeBadInclude, CodeIncludeNotFound, CodeIncludeCycle,
	}
}

// Sentinel errors for use with errors.Is.
var (
	ErrRecursiveMacro          = &Error{Code: CodeRecursiveMacro}
	ErrUndefinedMacro          = &Error{Code: CodeUndefinedMacro}
	ErrParenthesesRequired     = &Error{Code: CodeParenthesesRequired}
	ErrTooManyArguments        = &Error{Code: CodeTooManyArguments}
	ErrMissingRequiredArgument = &Error{Code: CodeMissingRequiredArgument}
	ErrUnterminatedDefinition  = &Error{Code: CodeUnterminatedDefinition}
	ErrUnterminatedScan        = &Error{Code: CodeUnterminatedScan}
	ErrUnexpectedNewline       = &Error{Code: CodeUnexpectedNewline}
	ErrEmptyFormalArgument     = &Error{Code: CodeEmptyFormalArgument}
)

// Error is returned by every failed define or macro use.
//
// It carries the failing location and the context needed to format a
// message, but no message text of its own.
type Error struct {
	Code Code
	Pos  lexer.Position
	// Macro name, if known.
	Macro string
	// Formal parameter the error is about.
	Formal string
	// Number of formal and actual arguments.
	Formals int
	Actuals int
	// Directive being processed (eg. "`define") and where it started.
	Directive string
	Started   lexer.Position
	// Include path.
	Path string
	// Underlying cause.
	Err error
}

func (e *Error) Error() string {
	var detail []string
	if e.Directive != "" {
		detail = append(detail, e.Directive)
	}
	if e.Macro != "" {
		detail = append(detail, e.Macro)
	}
	if e.Formal != "" {
		detail = append(detail, e.Formal)
	}
	if e.Code == CodeTooManyArguments {
		detail = append(detail, fmt.Sprintf("%d>%d", e.Actuals, e.Formals))
	}
	if e.Path != "" {
		detail = append(detail, fmt.Sprintf("%q", e.Path))
	}
	if e.Err != nil {
		detail = append(detail, e.Err.Error())
	}
	msg := string(e.Code)
	if len(detail) > 0 {
		msg += ": " + strings.Join(detail, " ")
	}
	return lexer.FormatError(e.Pos, msg)
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func (e *Error) Unwrap() error { return e.Err }

// Data returns the fields of the error keyed by name, for message templates.
func (e *Error) Data() map[string]interface{} {
	return map[string]interface{}{
		"Code":      string(e.Code),
		"Pos":       e.Pos,
		"Macro":     e.Macro,
		"Formal":    e.Formal,
		"Formals":   e.Formals,
		"Actuals":   e.Actuals,
		"Directive": e.Directive,
		"Started":   e.Started,
		"Path":      e.Path,
		"Err":       e.Err,
	}
}

func errorAt(code Code, pos lexer.Position) *Error {
	return &Error{Code: code, Pos: pos}
}
