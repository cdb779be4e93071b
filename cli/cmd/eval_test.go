package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/cidrcalc/pkg"
)

func TestEval_Text(t *testing.T) {
	tests := []struct {
		name  string
		exprs []string
		want  string
	}{
		{
			name:  "single",
			exprs: []string{"10.0.0.0/24 + 1"},
			want:  "10.0.1.0/24\n",
		},
		{
			name:  "several statements",
			exprs: []string{"a = 10.0.0.255; a + 1"},
			want:  "10.0.0.255\n10.0.1.0\n",
		},
		{
			name:  "arguments share one session",
			exprs: []string{"lan = 192.168.1.0/24", "192.168.1.7 in lan"},
			want:  "192.168.1.0/24\ntrue\n",
		},
		{
			name:  "error keeps going",
			exprs: []string{"1 / 2; 3"},
			want: "DivisionUnsupported: division and modulo are not supported: " +
				"Integer / Integer at column 3\n3\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			e := Eval{Exprs: tt.exprs, Output: FormatText, Indent: 2}
			if err := e.Run(WithOutput(t.Context(), &buf)); err != nil {
				t.Fatalf("Run() = %v", err)
			}

			if got := buf.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEval_BlankArgument(t *testing.T) {
	var buf bytes.Buffer

	e := Eval{Exprs: []string{"   ", "# comment only"}, Output: FormatText}
	if err := e.Run(WithOutput(t.Context(), &buf)); err != nil {
		t.Fatalf("Run() = %v", err)
	}

	if buf.Len() != 0 {
		t.Errorf("output = %q, want none", buf.String())
	}
}

func TestEval_NoExpression(t *testing.T) {
	e := Eval{Output: FormatText}
	if err := e.Run(t.Context()); !errors.Is(err, ErrNoExpression) {
		t.Errorf("Run() = %v, want %v", err, ErrNoExpression)
	}
}

func TestEval_Strict(t *testing.T) {
	var buf bytes.Buffer

	e := Eval{Exprs: []string{"1 + 1", "missing"}, Output: FormatText, Strict: true}

	err := e.Run(WithOutput(t.Context(), &buf))
	if !errors.Is(err, pkg.ErrEvaluation) {
		t.Fatalf("Run() = %v, want %v", err, pkg.ErrEvaluation)
	}

	if !strings.Contains(buf.String(), "NameError") {
		t.Errorf("results not written before failing: %q", buf.String())
	}

	buf.Reset()

	e.Exprs = []string{"1 + 1"}
	if err := e.Run(WithOutput(t.Context(), &buf)); err != nil {
		t.Errorf("Run() = %v, want nil", err)
	}
}

func TestEval_JSON(t *testing.T) {
	var buf bytes.Buffer

	e := Eval{Exprs: []string{"n = 10.0.0.0/30"}, Output: FormatJSON, Indent: 0}
	if err := e.Run(WithOutput(t.Context(), &buf)); err != nil {
		t.Fatalf("Run() = %v", err)
	}

	var got struct {
		Results []struct {
			Input  string `json:"input"`
			Kind   string `json:"kind"`
			Value  string `json:"value"`
			Family string `json:"family"`
			Prefix int    `json:"prefix"`
			Size   string `json:"size"`
		} `json:"results"`
	}

	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}

	if len(got.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(got.Results))
	}

	r := got.Results[0]
	if r.Input != "n = 10.0.0.0/30" || r.Kind != "Network" ||
		r.Value != "10.0.0.0/30" || r.Prefix != 30 || r.Size != "4" {
		t.Errorf("unexpected result %+v", r)
	}
}

func TestEval_Preload(t *testing.T) {
	file := writeScript(t, t.TempDir(), "prelude.cidr", "lan = 10.1.0.0/16\nbad = 1 / 2\n")

	ctx := WithSourceFiles(t.Context(), []string{file})

	var buf bytes.Buffer

	e := Eval{Exprs: []string{"10.1.2.3 in lan"}, Output: FormatText}
	if err := e.Run(WithOutput(ctx, &buf)); err != nil {
		t.Fatalf("Run() = %v", err)
	}

	if got := buf.String(); got != "true\n" {
		t.Errorf("output = %q, want %q", got, "true\n")
	}
}
