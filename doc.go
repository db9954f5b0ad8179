// Package vlogpp is a Verilog text macro preprocessor.
//
// It implements the "`define" directive and macro use, with formal
// parameters, default arguments and nested macro uses:
//
//     `define MAX(a, b=0) ((a) > (b) ? (a) : (b))
//     assign y = `MAX(x, `LIMIT);
//
// along with "`undef", "`undefineall", "`ifdef"/"`ifndef"/"`elsif"/"`else"/
// "`endif" conditional compilation, "`include" and the "`__FILE__" and
// "`__LINE__" builtins. Other compiler directives are copied through.
//
// A macro use is replaced in place by the macro text and the replacement is
// rescanned, so macros in the text and in arguments are expanded in turn.
// A macro used within its own expansion or its own arguments is an error.
//
// The core operations are usable without the Preprocessor: ParseDefinition
// parses a definition from a Reader and Expand expands one macro use in a
// Source, given a Registry of definitions and a Guard against recursion.
//
// Errors are *Error values carrying a stable Code. Human readable messages
// are left to the caller.
package vlogpp
