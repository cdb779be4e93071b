package lang

import (
	"strings"
	"unicode/utf8"
)

// Tokenize splits text into tokens. It never fails: unrecognized characters
// and malformed numerals become [TokenIllegal] tokens and scanning continues
// with the next character. The result always ends with a [TokenEOF] token.
//
// Address and network literals are classified by shape only; whether they
// denote a valid address or prefix length is decided at evaluation time.
func Tokenize(text string) []Token {
	l := &lexer{
		input: []byte(text),
		pos:   0,
		line:  1,
		col:   1,
	}

	for l.scan() {
	}

	return l.tokens
}

// lexer holds the lexer state.
type lexer struct {
	input  []byte
	pos    int
	line   int
	col    int
	tokens []Token
}

// scan emits the next token and reports whether scanning should continue.
func (l *lexer) scan() bool {
	l.skipBlanks()

	start := l.position()

	if l.eof() {
		l.emit(TokenEOF, "", start)

		return false
	}

	ch := l.peek()

	switch {
	case ch == '\n' || ch == ';':
		l.advance()
		l.emit(TokenSeparator, string(ch), start)

	case ch == '#':
		for !l.eof() && l.peek() != '\n' {
			l.advance()
		}

	case ch == '(':
		l.advance()
		l.emit(TokenLParen, "(", start)

	case ch == ')':
		l.advance()
		l.emit(TokenRParen, ")", start)

	case isLetter(ch) || isDigit(ch) || ch == ':':
		l.scanWord(start)

	default:
		l.scanOperator(start)
	}

	return true
}

// scanWord scans an identifier, keyword, integer, or address literal.
//
// The maximal run of word characters decides the class: a run containing ':'
// is an IPv6 address, a digit-led run containing '.' is an IPv4 address,
// other letter-led runs are identifiers, other digit-led runs are integers.
func (l *lexer) scanWord(start Pos) {
	n := l.span(isWordChar)
	word := string(l.input[l.pos : l.pos+n])

	switch {
	case strings.ContainsRune(word, ':'),
		isDigit(rune(word[0])) && strings.ContainsRune(word, '.'):
		l.advanceN(n)
		l.scanAddress(word, start)

	case isLetter(rune(word[0])):
		// Identifiers never contain '.', which is left for the next scan.
		n = l.span(isIdentChar)
		word = word[:n]
		l.advanceN(n)

		if isKeyword(word) {
			l.emit(TokenKeyword, word, start)
		} else {
			l.emit(TokenIdent, word, start)
		}

	default:
		l.advanceN(n)

		if !isIntegerLiteral(word) {
			l.illegal(word, start, ErrMalformedInteger.Wrapf("%q", word))

			return
		}

		l.emit(TokenInteger, word, start)
	}
}

// scanAddress emits an address literal, or a network literal when the
// address is immediately followed by '/' and a decimal prefix length.
func (l *lexer) scanAddress(addr string, start Pos) {
	if l.peek() != '/' || l.pos+1 >= len(l.input) ||
		!isDigit(rune(l.input[l.pos+1])) {
		l.emit(TokenAddress, addr, start)

		return
	}

	l.advance() // skip '/'

	n := l.span(isDigitChar)
	bits := string(l.input[l.pos : l.pos+n])
	l.advanceN(n)

	l.emit(TokenNetwork, addr+"/"+bits, start)
}

// scanOperator scans an operator, the assignment symbol, or an illegal
// character.
func (l *lexer) scanOperator(start Pos) {
	ch := l.peek()

	switch ch {
	case '<', '>', '=', '!':
		l.advance()

		if l.peek() == '=' {
			l.advance()
			l.emit(TokenOp, string(ch)+"=", start)

			return
		}

		if ch == '=' {
			l.emit(TokenAssign, "=", start)
		} else {
			l.emit(TokenOp, string(ch), start)
		}

	case '+', '-', '&', '|', '^', '/', '%':
		l.advance()
		l.emit(TokenOp, string(ch), start)

	default:
		l.advance()

		text := string(l.input[start.Offset:l.pos])
		l.illegal(text, start, ErrIllegalChar.Wrapf("%q", text))
	}
}

func (l *lexer) emit(kind TokenKind, text string, pos Pos) {
	l.tokens = append(l.tokens, Token{Kind: kind, Text: text, Pos: pos})
}

func (l *lexer) illegal(text string, pos Pos, err *Error) {
	l.tokens = append(l.tokens, Token{
		Kind: TokenIllegal,
		Text: text,
		Pos:  pos,
		Err:  err.At(pos),
	})
}

// Helper methods

func (l *lexer) peek() rune {
	if l.eof() {
		return 0
	}

	r, _ := utf8.DecodeRune(l.input[l.pos:])

	return r
}

func (l *lexer) advance() {
	if l.eof() {
		return
	}

	r, size := utf8.DecodeRune(l.input[l.pos:])

	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

// advanceN advances over n bytes of single-byte (ASCII) characters.
func (l *lexer) advanceN(n int) {
	l.pos += n
	l.col += n
}

// span returns the length of the run of ASCII bytes starting at the current
// position that satisfy pred, without advancing.
func (l *lexer) span(pred func(byte) bool) int {
	n := 0
	for l.pos+n < len(l.input) && pred(l.input[l.pos+n]) {
		n++
	}

	return n
}

func (l *lexer) eof() bool {
	return l.pos >= len(l.input)
}

func (l *lexer) position() Pos {
	return Pos{
		Offset: l.pos,
		Line:   l.line,
		Column: l.col,
	}
}

func (l *lexer) skipBlanks() {
	for !l.eof() {
		switch l.peek() {
		case ' ', '\t', '\r', '\v', '\f':
			l.advance()
		default:
			return
		}
	}
}

// Character classification

func isLetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isDigitChar(b byte) bool { return isDigit(rune(b)) }

func isIdentChar(b byte) bool {
	r := rune(b)

	return isLetter(r) || isDigit(r) || r == '_'
}

func isWordChar(b byte) bool {
	return isIdentChar(b) || b == '.' || b == ':'
}

func isHexDigit(b byte) bool {
	return isDigit(rune(b)) || ('a' <= b && b <= 'f') || ('A' <= b && b <= 'F')
}

// isIntegerLiteral reports whether s is a decimal or 0x-prefixed hexadecimal
// integer literal.
func isIntegerLiteral(s string) bool {
	digits, pred := s, isDigitChar

	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		digits, pred = s[2:], isHexDigit
	}

	if digits == "" {
		return false
	}

	for i := range len(digits) {
		if !pred(digits[i]) {
			return false
		}
	}

	return true
}
