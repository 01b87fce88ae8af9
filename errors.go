// errors.go — error taxonomy and caret-snippet rendering.
//
// Every layer of the pipeline returns typed errors instead of terminating the
// process: the lexer produces *LexError, the parser *ParseError, and the
// interpreter *RuntimeError with a Kind from the taxonomy below. Only the
// top-level driver (cmd/mar) converts an error into process termination.
//
// WrapErrorWithSource recognizes lex/parse errors and renders a caret snippet
// pointing at the offending column:
//
//	PARSE ERROR at 3:12: expected ';', found '}'
//
//	   2 | let x = 1
//	   3 | let y = }
//	     |         ^
//	   4 | println(y)
//
// Runtime errors carry no stable source position and render as a single line.
package mar

import (
	"fmt"
	"strings"
)

// LexError reports an unrecognized character. Line and Col are 1-based.
type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEXICAL ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// ParseError reports a grammar mismatch (expected vs. found token).
// Line and Col are 1-based.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// ErrKind classifies runtime failures.
type ErrKind int

const (
	// NameError: undefined variable or function.
	NameError ErrKind = iota
	// ArityError: wrong argument count on a function call.
	ArityError
	// TypeError: operator applied to an unsupported operand-type pairing.
	TypeError
	// ArithmeticError: e.g. integer division by zero.
	ArithmeticError
	// UnsupportedOperationError: grammar-level constructs with no defined
	// evaluation (comparisons, '%'/'^', logical '&'/'|', unimplemented
	// statement forms, unary '-' on non-literal operands).
	UnsupportedOperationError
)

func (k ErrKind) String() string {
	switch k {
	case NameError:
		return "NameError"
	case ArityError:
		return "ArityError"
	case TypeError:
		return "TypeError"
	case ArithmeticError:
		return "ArithmeticError"
	case UnsupportedOperationError:
		return "UnsupportedOperationError"
	default:
		return "RuntimeError"
	}
}

// RuntimeError is any execution-time failure. The interpreter never
// terminates the process; it returns one of these.
type RuntimeError struct {
	Kind ErrKind
	Msg  string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func nameErrorf(format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: NameError, Msg: fmt.Sprintf(format, args...)}
}

func arityErrorf(format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: ArityError, Msg: fmt.Sprintf(format, args...)}
}

func typeErrorf(format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: TypeError, Msg: fmt.Sprintf(format, args...)}
}

func arithErrorf(format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: ArithmeticError, Msg: fmt.Sprintf(format, args...)}
}

func unsupportedf(format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: UnsupportedOperationError, Msg: fmt.Sprintf(format, args...)}
}

// WrapErrorWithSource returns an error augmented with a caret-annotated
// snippet of the provided source. Lex and parse errors gain the snippet;
// runtime errors gain a "RUNTIME ERROR" header; anything else is returned
// unchanged.
func WrapErrorWithSource(err error, src string) error {
	switch e := err.(type) {
	case *LexError:
		return fmt.Errorf("%s", prettyErrorString(src, "LEXICAL ERROR", e.Line, e.Col, e.Msg))
	case *ParseError:
		return fmt.Errorf("%s", prettyErrorString(src, "PARSE ERROR", e.Line, e.Col, e.Msg))
	case *RuntimeError:
		return fmt.Errorf("RUNTIME ERROR: %s", e.Error())
	default:
		return err
	}
}

// prettyErrorString builds a Python-like snippet with a header and a caret.
// It shows at most one previous and one next line when available.
// Coordinates are 1-based and clamped to the source bounds.
func prettyErrorString(src, header string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
