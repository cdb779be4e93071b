package lang

import (
	"strings"
	"testing"
)

// FuzzEval checks that evaluation never panics and always yields exactly one
// single-line result per parsed statement.
func FuzzEval(f *testing.F) {
	f.Add("x = 10.0.0.0/24")
	f.Add("a = 1; a + 1")
	f.Add("10.0.0.0/24 in ::1/64")
	f.Add("fe80::/10 + 1")
	f.Add("(1 + 2")
	f.Add("1 @ 2\n3")
	f.Add("0xffffffffffffffffffffffffffffffffff")
	f.Add("255.255.255.255/33")
	f.Add("# only a comment")
	f.Add("::ffff:1.2.3.4 - 1")
	f.Add("a = b = c = 1 | 2 & 3 ^ 4")

	f.Fuzz(func(t *testing.T, input string) {
		stmts := ParseString(input)

		lines := CreateState().Eval(t.Context(), input)
		if len(lines) != len(stmts) {
			t.Fatalf("%q: got %d lines for %d statements", input, len(lines), len(stmts))
		}

		for _, line := range lines {
			if line == "" || strings.ContainsAny(line, "\r\n") {
				t.Errorf("%q: bad line %q", input, line)
			}
		}

		for _, stmt := range stmts {
			if (stmt.Expr == nil) == (stmt.Err == nil) {
				t.Errorf("%q: statement must hold exactly one of Expr and Err", input)
			}
		}
	})
}

// FuzzTokenize checks that tokenizing never panics and always ends in EOF.
func FuzzTokenize(f *testing.F) {
	f.Add("10.0.0.0/24 + 1")
	f.Add("\xff\xfe")
	f.Add("é = 1")

	f.Fuzz(func(t *testing.T, input string) {
		tokens := Tokenize(input)
		if len(tokens) == 0 || tokens[len(tokens)-1].Kind != TokenEOF {
			t.Fatalf("%q: token stream does not end in EOF", input)
		}

		for _, tok := range tokens {
			if tok.Pos.Offset < 0 || tok.Pos.Offset > len(input) {
				t.Errorf("%q: token %q offset %d out of range", input, tok.Text, tok.Pos.Offset)
			}
		}
	})
}
