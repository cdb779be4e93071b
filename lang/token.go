package lang

import "strconv"

// Pos identifies a location in evaluated input.
// Line and Column are 1-based; Column counts runes.
type Pos struct {
	Offset int
	Line   int
	Column int
}

// String returns a human-readable description of the position.
// The line is omitted for positions on the first line.
func (p Pos) String() string {
	if p.Line > 1 {
		return "line " + strconv.Itoa(p.Line) + ", column " + strconv.Itoa(p.Column)
	}

	return "column " + strconv.Itoa(p.Column)
}

// TokenKind identifies the lexical class of a [Token].
type TokenKind int

const (
	// TokenEOF marks the end of input. It is always the final token.
	TokenEOF TokenKind = iota

	// TokenIllegal carries a lexical error in place of a real token.
	TokenIllegal

	// TokenSeparator ends a statement: ';' or a newline.
	TokenSeparator

	// TokenIdent is a variable name.
	TokenIdent

	// TokenKeyword is one of the reserved words in, true, false.
	TokenKeyword

	// TokenInteger is a decimal or 0x-prefixed hexadecimal integer.
	TokenInteger

	// TokenAddress is a dotted-quad or colon-hex address literal.
	TokenAddress

	// TokenNetwork is a CIDR literal: address '/' prefix.
	TokenNetwork

	// TokenOp is an operator symbol.
	TokenOp

	// TokenAssign is the assignment symbol '='.
	TokenAssign

	// TokenLParen and TokenRParen group subexpressions.
	TokenLParen
	TokenRParen
)

// String returns a string representation of the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "EOF"
	case TokenIllegal:
		return "Illegal"
	case TokenSeparator:
		return "Separator"
	case TokenIdent:
		return "Ident"
	case TokenKeyword:
		return "Keyword"
	case TokenInteger:
		return "Integer"
	case TokenAddress:
		return "Address"
	case TokenNetwork:
		return "Network"
	case TokenOp:
		return "Op"
	case TokenAssign:
		return "Assign"
	case TokenLParen:
		return "LParen"
	case TokenRParen:
		return "RParen"
	default:
		return "Unknown"
	}
}

// Token is a single lexical unit of input.
type Token struct {
	Kind TokenKind
	Text string
	Pos  Pos
	Err  *Error // set only for TokenIllegal
}

// End returns the byte offset just past the token's text.
func (t Token) End() int { return t.Pos.Offset + len(t.Text) }

// describe returns the token as it should be quoted in a syntax error.
func (t Token) describe() string {
	switch t.Kind {
	case TokenEOF:
		return "end of input"
	case TokenSeparator:
		return "end of statement"
	default:
		return strconv.Quote(t.Text)
	}
}

// Keywords.
const (
	keywordIn    = "in"
	keywordTrue  = "true"
	keywordFalse = "false"
)

func isKeyword(s string) bool {
	switch s {
	case keywordIn, keywordTrue, keywordFalse:
		return true
	}

	return false
}

// Keywords returns the reserved words of the language.
func Keywords() []string {
	return []string{keywordIn, keywordTrue, keywordFalse}
}
