package lang

import (
	"errors"
	"testing"
)

func TestParse_Precedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 + 3", "((1 + 2) + 3)"},
		{"1 - 2 - 3", "((1 - 2) - 3)"},
		{"a = b = 1", "a = b = 1"},
		{"1 + 2 == 3", "((1 + 2) == 3)"},
		{"1 | 2 + 3", "(1 | (2 + 3))"},
		{"-1 + 2", "((-1) + 2)"},
		{"!!true", "(!(!true))"},
		{"(1 + 2) & 3", "((1 + 2) & 3)"},
		{"a in b", "(a in b)"},
		{"10.0.0.0/24 + 1 in 10.0.0.0/16", "((10.0.0.0/24 + 1) in 10.0.0.0/16)"},
		{"1 / 2 + 3", "((1 / 2) + 3)"},
		{"x = (y = 2) + 1", "x = (y = 2 + 1)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			stmts := ParseString(tt.input)
			if len(stmts) != 1 {
				t.Fatalf("got %d statements, want 1", len(stmts))
			}

			if stmts[0].Err != nil {
				t.Fatalf("unexpected error: %v", stmts[0].Err)
			}

			if got := stmts[0].Expr.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		input string
		want  *Error
	}{
		{"(1 + 2", ErrUnbalanced},
		{"1 + 2)", ErrUnbalanced},
		{")", ErrUnbalanced},
		{"1 +", ErrExpectedExpr},
		{"in", ErrExpectedExpr},
		{"1 = 2", ErrAssignTarget},
		{"a + b = 2", ErrAssignTarget},
		{"1 2", ErrUnexpectedToken},
		{"1 @ 2", ErrIllegalChar},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			stmts := ParseString(tt.input)
			if len(stmts) != 1 {
				t.Fatalf("got %d statements, want 1", len(stmts))
			}

			if stmts[0].Expr != nil {
				t.Errorf("expression = %v, want nil", stmts[0].Expr)
			}

			if !errors.Is(stmts[0].Err, tt.want) {
				t.Errorf("error = %v, want %v", stmts[0].Err, tt.want)
			}
		})
	}
}

func TestParse_Statements(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"empty", "", 0},
		{"blank", "   \t ", 0},
		{"separators only", ";;\n;", 0},
		{"comment only", "# nothing here", 0},
		{"one", "1", 1},
		{"trailing separator", "1;", 1},
		{"two on one line", "a = 1; a + 1", 2},
		{"newlines", "1\n2\n\n3\n", 3},
		{"error in the middle", "1; @; 3", 3},
		{"syntax error in the middle", "1; 2 +; 3", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(ParseString(tt.input)); got != tt.want {
				t.Errorf("got %d statements, want %d", got, tt.want)
			}
		})
	}
}

func TestStatement_Source(t *testing.T) {
	input := "a = 1;  b = a + 1  # two\nc"

	stmts := ParseString(input)
	want := []string{"a = 1", "b = a + 1", "c"}

	if len(stmts) != len(want) {
		t.Fatalf("got %d statements, want %d", len(stmts), len(want))
	}

	for i, w := range want {
		if got := stmts[i].Source(input); got != w {
			t.Errorf("statement[%d] = %q, want %q", i, got, w)
		}
	}
}

func TestParse_HandBuiltTokens(t *testing.T) {
	// No trailing EOF token.
	stmts := Parse([]Token{{Kind: TokenInteger, Text: "1"}, {Kind: TokenOp, Text: "+"}})
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}

	if !errors.Is(stmts[0].Err, ErrExpectedExpr) {
		t.Errorf("error = %v, want %v", stmts[0].Err, ErrExpectedExpr)
	}
}
