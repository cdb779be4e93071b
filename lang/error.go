package lang

import (
	"fmt"
	"log/slog"
	"strings"
)

// Class categorizes an [Error] by the stage or rule that produced it.
type Class int

const (
	ClassNone     Class = iota
	ClassLex            // unrecognized character or malformed literal
	ClassSyntax         // unexpected token, unbalanced parentheses, empty statement
	ClassName           // read of an unset variable
	ClassType           // operator applied to incompatible kinds or families
	ClassRange          // prefix length or arithmetic out of bounds
	ClassDivision       // division or modulo attempted
)

// String returns the class name as it appears in result lines.
func (c Class) String() string {
	switch c {
	case ClassLex:
		return "LexError"
	case ClassSyntax:
		return "SyntaxError"
	case ClassName:
		return "NameError"
	case ClassType:
		return "TypeError"
	case ClassRange:
		return "RangeError"
	case ClassDivision:
		return "DivisionUnsupported"
	default:
		return "Error"
	}
}

// Predefined errors (sentinel values).
var (
	ErrIllegalChar      = NewError(ClassLex, "unexpected character")
	ErrMalformedInteger = NewError(ClassLex, "malformed integer literal")
	ErrMalformedAddress = NewError(ClassLex, "malformed address literal")
	ErrMalformedNetwork = NewError(ClassLex, "malformed network literal")

	ErrUnexpectedToken = NewError(ClassSyntax, "unexpected token")
	ErrExpectedExpr    = NewError(ClassSyntax, "expected expression")
	ErrUnbalanced      = NewError(ClassSyntax, "unbalanced parentheses")
	ErrAssignTarget    = NewError(ClassSyntax, "invalid assignment target")
	ErrNestingDepth    = NewError(ClassSyntax, "expression nested too deeply")

	ErrUndefined = NewError(ClassName, "undefined variable")

	ErrOperandType = NewError(ClassType, "unsupported operand types")
	ErrMixedFamily = NewError(ClassType, "mixed address families")

	ErrPrefixRange  = NewError(ClassRange, "prefix length out of range")
	ErrOverflow     = NewError(ClassRange, "arithmetic overflow")
	ErrNoOverlap    = NewError(ClassRange, "networks do not overlap")
	ErrIntegerRange = NewError(ClassRange, "integer out of 128-bit range")

	ErrDivision = NewError(ClassDivision, "division and modulo are not supported")
)

// Error is a classified evaluation failure with optional structured logging
// attributes. It implements both error and slog.LogValuer interfaces.
//
// Errors are immutable: [Error.Wrap], [Error.Wrapf], [Error.With], and
// [Error.At] return modified copies, so sentinels can be shared freely.
type Error struct {
	class Class
	msg   string
	err   error // Wrapped error (for errors.Unwrap)
	pos   *Pos
	attrs []slog.Attr
}

// NewError creates a new Error with a class and message.
func NewError(class Class, msg string) *Error {
	return &Error{class: class, msg: msg}
}

// Class returns the error's class.
func (e *Error) Class() Class { return e.class }

// Pos returns the input position the error refers to, if any.
func (e *Error) Pos() (Pos, bool) {
	if e.pos == nil {
		return Pos{}, false
	}

	return *e.pos, true
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Line formats the error as a single result line:
// "<Class>: <message>[ at <position>]".
func (e *Error) Line() string {
	var sb strings.Builder

	sb.WriteString(e.class.String())
	sb.WriteString(": ")
	sb.WriteString(e.Error())

	if e.pos != nil {
		sb.WriteString(" at ")
		sb.WriteString(e.pos.String())
	}

	return flatten(sb.String())
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an *Error derived from the same sentinel,
// i.e. with the same class and base message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.class == t.class && e.msg == t.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+4)

	attrs = append(attrs, slog.String("class", e.class.String()))

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	if e.pos != nil {
		attrs = append(attrs,
			slog.Int("line", e.pos.Line),
			slog.Int("column", e.pos.Column),
		)
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	c := *e
	c.err = err

	return &c
}

// Wrapf creates a new Error wrapping a formatted detail message.
func (e *Error) Wrapf(format string, args ...any) *Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// At returns a copy of the error anchored at the given input position.
func (e *Error) At(pos Pos) *Error {
	c := *e
	c.pos = &pos

	return &c
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	c := *e
	c.attrs = newAttrs

	return &c
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// flatten replaces line breaks so that s occupies exactly one output line.
func flatten(s string) string {
	return lineBreaks.Replace(s)
}
