package lang

import (
	"math/big"
	"strings"
)

// Eval evaluates expr against env and returns its value. Failures are
// returned as Error values; Eval never panics on a well-formed tree.
//
// An Assign node binds its value in env unless that value is an Error.
func Eval(expr Expr, env *Env) Value {
	switch n := expr.(type) {
	case *Literal:
		return located(literal(n.Token), n.Token.Pos)

	case *Ident:
		v, ok := env.Get(n.Name)
		if !ok {
			return errorValue(ErrUndefined.Wrapf("%q", n.Name).At(n.At))
		}

		return v

	case *Unary:
		operand := Eval(n.Operand, env)
		if operand.IsError() {
			return operand
		}

		v, err := unary(n.Op, operand)
		if err != nil {
			return errorValue(err.At(n.At))
		}

		return v

	case *Binary:
		left := Eval(n.Left, env)
		if left.IsError() {
			return left
		}

		right := Eval(n.Right, env)
		if right.IsError() {
			return right
		}

		v, err := binary(n.Op, left, right)
		if err != nil {
			return errorValue(err.At(n.At))
		}

		return v

	case *Assign:
		v := Eval(n.Value, env)
		if !v.IsError() {
			env.Set(n.Name, v)
		}

		return v

	case nil:
		return errorValue(ErrExpectedExpr)

	default:
		return errorValue(ErrExpectedExpr.Wrapf("unknown node %T", expr))
	}
}

// EvalStatement evaluates a parsed statement, turning a recorded parse error
// into an Error value. Assignments made while evaluating reach env only if
// the statement as a whole does not evaluate to an Error.
func EvalStatement(stmt Statement, env *Env) Value {
	if stmt.Err != nil {
		return errorValue(stmt.Err)
	}

	scratch := env.overlay()

	v := Eval(stmt.Expr, scratch)
	if !v.IsError() {
		scratch.commit()
	}

	return v
}

// literal converts a literal token to its value. Address and network
// literals are validated here rather than in the lexer.
func literal(tok Token) Value {
	switch tok.Kind {
	case TokenInteger:
		return parseInteger(tok.Text)

	case TokenAddress:
		return parseAddress(tok.Text)

	case TokenNetwork:
		return parseNetwork(tok.Text)

	case TokenKeyword:
		switch tok.Text {
		case keywordTrue:
			return Boolean(true)
		case keywordFalse:
			return Boolean(false)
		}
	}

	return errorValue(ErrExpectedExpr.Wrapf("found %s", tok.describe()))
}

// parseInteger converts a decimal or 0x-prefixed hexadecimal literal.
// Leading zeros in decimal literals are not an octal marker.
func parseInteger(text string) Value {
	digits, base := text, 10

	if len(text) > 2 && text[0] == '0' && (text[1] == 'x' || text[1] == 'X') {
		digits, base = text[2:], 16
	}

	if strings.HasPrefix(digits, "+") || strings.HasPrefix(digits, "-") {
		return errorValue(ErrMalformedInteger.Wrapf("%q", text))
	}

	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return errorValue(ErrMalformedInteger.Wrapf("%q", text))
	}

	return Integer(n)
}

// located anchors an unpositioned Error value at pos.
func located(v Value, pos Pos) Value {
	if !v.IsError() || v.err == nil {
		return v
	}

	if _, ok := v.err.Pos(); ok {
		return v
	}

	return errorValue(v.err.At(pos))
}
