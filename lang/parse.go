package lang

// Parse groups tokens into statements and parses each one.
//
// Statements are delimited by [TokenSeparator]. Separators with nothing
// between them produce no statement. A lexical or syntax error is recorded
// in the failing statement and parsing resumes after the next separator, so
// every non-empty segment of input yields exactly one [Statement].
func Parse(tokens []Token) []Statement {
	p := &parser{tokens: tokens}

	stmts := make([]Statement, 0)

	for !p.at(TokenEOF) {
		if p.at(TokenSeparator) {
			p.next()

			continue
		}

		stmts = append(stmts, p.parseStatement())
	}

	return stmts
}

// ParseString tokenizes and parses text.
func ParseString(text string) []Statement {
	return Parse(Tokenize(text))
}

// parser holds the parser state.
type parser struct {
	tokens []Token
	pos    int

	// depth counts the nested parentheses, unary operators and assignments
	// open at the current token; ops counts the binary operators of the
	// current statement. Together they bound the height of the tree.
	depth int
	ops   int
}

// Limits on a single statement. Parsing and evaluation recurse once per
// level of the tree, so these keep both within a small, fixed stack.
const (
	maxDepth     = 1000
	maxOperators = 10000
)

// enter records one more level of nesting at tok, failing past maxDepth.
// Each successful enter is paired with a leave.
func (p *parser) enter(tok Token) *Error {
	if p.depth >= maxDepth {
		return ErrNestingDepth.Wrapf("more than %d levels", maxDepth).At(tok.Pos)
	}

	p.depth++

	return nil
}

func (p *parser) leave() { p.depth-- }

// precedence levels of binary operators, lowest first.
var (
	comparisonOps = map[string]Op{
		"==": OpEQ, "!=": OpNE,
		"<": OpLT, "<=": OpLE,
		">": OpGT, ">=": OpGE,
		keywordIn: OpIn,
	}
	bitwiseOps = map[string]Op{
		"&": OpAnd, "|": OpOr, "^": OpXor,
	}
	additiveOps = map[string]Op{
		"+": OpAdd, "-": OpSub,
	}
	multiplicativeOps = map[string]Op{
		"/": OpDiv, "%": OpMod,
	}
	unaryOps = map[string]Op{
		"-": OpNeg, "!": OpNot,
	}
)

// parseStatement parses the tokens up to the next separator.
func (p *parser) parseStatement() Statement {
	first := p.peek()
	last := p.statementEnd()

	stmt := Statement{
		Pos: first.Pos,
		End: p.tokens[last-1].End(),
	}

	p.depth, p.ops = 0, 0

	// A lexical error anywhere in the statement takes precedence, since the
	// token stream around it cannot be trusted.
	for i := p.pos; i < last; i++ {
		if tok := p.tokens[i]; tok.Kind == TokenIllegal {
			stmt.Err = tok.Err
			p.pos = last

			return stmt
		}
	}

	expr, err := p.parseAssignment()
	if err == nil && p.pos < last {
		err = p.unexpected(p.peek())
	}

	p.pos = last

	if err != nil {
		stmt.Err = err

		return stmt
	}

	stmt.Expr = expr

	return stmt
}

// statementEnd returns the index just past the current statement's last
// token.
func (p *parser) statementEnd() int {
	i := p.pos
	for i < len(p.tokens) &&
		p.tokens[i].Kind != TokenSeparator &&
		p.tokens[i].Kind != TokenEOF {
		i++
	}

	return i
}

// assignment := IDENT '=' assignment | comparison.
func (p *parser) parseAssignment() (Expr, *Error) {
	tok := p.peek()

	if tok.Kind == TokenIdent && p.peekAt(1).Kind == TokenAssign {
		if err := p.enter(tok); err != nil {
			return nil, err
		}
		defer p.leave()

		p.next() // identifier
		p.next() // '='

		value, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}

		return &Assign{Name: tok.Text, Value: value, At: tok.Pos}, nil
	}

	expr, err := p.parseBinary(0)
	if err != nil {
		return nil, err
	}

	if eq := p.peek(); eq.Kind == TokenAssign {
		return nil, ErrAssignTarget.Wrapf("cannot assign to %s", expr).At(eq.Pos)
	}

	return expr, nil
}

// binaryLevels lists the binary operator tables from lowest to highest
// precedence. All binary operators are left-associative.
var binaryLevels = []map[string]Op{
	comparisonOps,
	bitwiseOps,
	additiveOps,
	multiplicativeOps,
}

// parseBinary parses a left-associative chain of operators at the given
// precedence level.
func (p *parser) parseBinary(level int) (Expr, *Error) {
	if level >= len(binaryLevels) {
		return p.parseUnary()
	}

	left, err := p.parseBinary(level + 1)
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()

		op, ok := binaryOp(tok, binaryLevels[level])
		if !ok {
			return left, nil
		}

		p.ops++
		if p.ops > maxOperators {
			return nil, ErrNestingDepth.
				Wrapf("more than %d operators", maxOperators).
				At(tok.Pos)
		}

		p.next()

		right, err := p.parseBinary(level + 1)
		if err != nil {
			return nil, err
		}

		left = &Binary{Op: op, Left: left, Right: right, At: tok.Pos}
	}
}

func binaryOp(tok Token, ops map[string]Op) (Op, bool) {
	if tok.Kind != TokenOp && !(tok.Kind == TokenKeyword && tok.Text == keywordIn) {
		return OpInvalid, false
	}

	op, ok := ops[tok.Text]

	return op, ok
}

// unary := ('-' | '!') unary | primary.
func (p *parser) parseUnary() (Expr, *Error) {
	tok := p.peek()

	if tok.Kind == TokenOp {
		if op, ok := unaryOps[tok.Text]; ok {
			if err := p.enter(tok); err != nil {
				return nil, err
			}
			defer p.leave()

			p.next()

			operand, err := p.parseUnary()
			if err != nil {
				return nil, err
			}

			return &Unary{Op: op, Operand: operand, At: tok.Pos}, nil
		}
	}

	return p.parsePrimary()
}

// primary := INTEGER | ADDRESS | NETWORK | IDENT | true | false
//
//	| '(' assignment ')'.
func (p *parser) parsePrimary() (Expr, *Error) {
	tok := p.peek()

	switch tok.Kind {
	case TokenInteger, TokenAddress, TokenNetwork:
		p.next()

		return &Literal{Token: tok}, nil

	case TokenKeyword:
		if tok.Text == keywordTrue || tok.Text == keywordFalse {
			p.next()

			return &Literal{Token: tok}, nil
		}

		return nil, ErrExpectedExpr.Wrapf("found %s", tok.describe()).At(tok.Pos)

	case TokenIdent:
		p.next()

		return &Ident{Name: tok.Text, At: tok.Pos}, nil

	case TokenLParen:
		if err := p.enter(tok); err != nil {
			return nil, err
		}
		defer p.leave()

		p.next()

		expr, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}

		if closing := p.peek(); closing.Kind != TokenRParen {
			return nil, ErrUnbalanced.
				Wrapf("missing ')' before %s", closing.describe()).
				At(tok.Pos)
		}

		p.next()

		return expr, nil

	case TokenRParen:
		return nil, ErrUnbalanced.Wrapf("unexpected ')'").At(tok.Pos)

	default:
		return nil, ErrExpectedExpr.Wrapf("found %s", tok.describe()).At(tok.Pos)
	}
}

func (p *parser) unexpected(tok Token) *Error {
	if tok.Kind == TokenRParen {
		return ErrUnbalanced.Wrapf("unexpected ')'").At(tok.Pos)
	}

	return ErrUnexpectedToken.Wrapf("%s", tok.describe()).At(tok.Pos)
}

// Helper methods

func (p *parser) peek() Token {
	return p.peekAt(0)
}

func (p *parser) peekAt(n int) Token {
	if i := p.pos + n; i < len(p.tokens) {
		return p.tokens[i]
	}

	// Tokenize always terminates the stream with EOF; synthesize one for
	// hand-built token slices that do not.
	var eof Token
	if len(p.tokens) > 0 {
		last := p.tokens[len(p.tokens)-1]
		eof.Pos = last.Pos
		eof.Pos.Offset = last.End()
	}

	return eof
}

func (p *parser) next() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

func (p *parser) at(kind TokenKind) bool {
	return p.peek().Kind == kind
}
