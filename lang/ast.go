package lang

import (
	"strings"
)

// Op identifies a unary or binary operator.
type Op int

const (
	OpInvalid Op = iota

	// Arithmetic.
	OpAdd // +
	OpSub // -
	OpDiv // /
	OpMod // %

	// Bitwise on integers, set operations on networks.
	OpAnd // &
	OpOr  // |
	OpXor // ^

	// Comparison and containment.
	OpEQ // ==
	OpNE // !=
	OpLT // <
	OpLE // <=
	OpGT // >
	OpGE // >=
	OpIn // in

	// Unary.
	OpNeg // -
	OpNot // !
)

var opSymbol = [...]string{
	OpInvalid: "?",
	OpAdd:     "+",
	OpSub:     "-",
	OpDiv:     "/",
	OpMod:     "%",
	OpAnd:     "&",
	OpOr:      "|",
	OpXor:     "^",
	OpEQ:      "==",
	OpNE:      "!=",
	OpLT:      "<",
	OpLE:      "<=",
	OpGT:      ">",
	OpGE:      ">=",
	OpIn:      "in",
	OpNeg:     "-",
	OpNot:     "!",
}

// String returns the operator's source symbol.
func (op Op) String() string {
	if op < 0 || int(op) >= len(opSymbol) {
		return opSymbol[OpInvalid]
	}

	return opSymbol[op]
}

// Expr is a node in an expression tree. The set of implementations is closed:
// [*Literal], [*Ident], [*Unary], [*Binary], and [*Assign].
type Expr interface {
	// Pos returns the position of the node's first token.
	Pos() Pos

	// String returns the node in fully parenthesized source form.
	String() string

	exprNode()
}

// Literal is an integer, address, network, or boolean literal. Its token
// text is converted to a [Value] during evaluation.
type Literal struct {
	Token Token
}

// Ident is a variable reference.
type Ident struct {
	Name string
	At   Pos
}

// Unary applies a prefix operator to an operand.
type Unary struct {
	Op      Op
	Operand Expr
	At      Pos
}

// Binary applies an infix operator to two operands.
type Binary struct {
	Op    Op
	Left  Expr
	Right Expr
	At    Pos
}

// Assign binds the value of an expression to a variable name and yields that
// value.
type Assign struct {
	Name  string
	Value Expr
	At    Pos
}

func (n *Literal) Pos() Pos { return n.Token.Pos }
func (n *Ident) Pos() Pos   { return n.At }
func (n *Unary) Pos() Pos   { return n.At }
func (n *Binary) Pos() Pos  { return n.At }
func (n *Assign) Pos() Pos  { return n.At }

func (n *Literal) String() string { return n.Token.Text }
func (n *Ident) String() string   { return n.Name }

func (n *Unary) String() string {
	return "(" + n.Op.String() + n.Operand.String() + ")"
}

func (n *Binary) String() string {
	var sb strings.Builder

	sb.WriteByte('(')
	sb.WriteString(n.Left.String())
	sb.WriteByte(' ')
	sb.WriteString(n.Op.String())
	sb.WriteByte(' ')
	sb.WriteString(n.Right.String())
	sb.WriteByte(')')

	return sb.String()
}

func (n *Assign) String() string {
	return n.Name + " = " + n.Value.String()
}

func (*Literal) exprNode() {}
func (*Ident) exprNode()   {}
func (*Unary) exprNode()   {}
func (*Binary) exprNode()  {}
func (*Assign) exprNode()  {}

// Statement is one evaluable unit of input. Exactly one of Expr and Err is
// set: Err holds the lexical or syntax error that prevented parsing.
type Statement struct {
	Expr Expr
	Err  *Error

	// Pos is the position of the statement's first token and End is the
	// byte offset just past its last token.
	Pos Pos
	End int
}

// Source returns the statement's text within the input it was parsed from.
func (s Statement) Source(input string) string {
	if s.Pos.Offset < 0 || s.End > len(input) || s.Pos.Offset > s.End {
		return ""
	}

	return input[s.Pos.Offset:s.End]
}
