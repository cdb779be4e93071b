// Package lang implements the cidrcalc expression language: a lexer, a
// parser, a tagged-union value model over integers, IP addresses, CIDR
// networks, and booleans, and a tree-walking evaluator.
//
// # Sessions
//
// A [State] holds the variables of one session. Each call to [State.Eval]
// returns exactly one line per statement in its input, in order:
//
//	s := lang.CreateState()
//	s.Eval(ctx, "net = 10.0.0.0/24; net + 1") // ["10.0.0.0/24", "10.0.1.0/24"]
//	s.Scope()                                 // ["net = 10.0.0.0/24"]
//
// Statements are separated by ';' or a newline, and '#' starts a comment that
// runs to the end of the line.
//
// # Errors
//
// A statement that fails evaluates to an Error value, formatted as a single
// line "<Class>: <message>". Errors never abort the remaining statements of
// an input and never change the session's variables. Any operator applied to
// an Error operand yields that same error. A statement nested more than
// 1000 levels deep, or holding more than 10000 binary operators, is rejected
// with a SyntaxError.
//
// # Operators
//
// From lowest to highest precedence:
//
//	=                          assignment (right-associative)
//	== != < <= > >= in         comparison and containment
//	& | ^                      bitwise, or network intersection and cover
//	+ -                        arithmetic and address offsets
//	/ %                        reserved; always DivisionUnsupported
//	- !                        unary negation and logical not
//
// Adding an integer n to a network moves it by n blocks of its own size, so
// 10.0.0.0/24 + 1 is 10.0.1.0/24. Operands of different address families are
// never combined.
package lang
