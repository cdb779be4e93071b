package lang

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ardnew/cidrcalc/log"
)

func TestState_WithLogger_TracesStatements(t *testing.T) {
	var buf bytes.Buffer

	logger := log.Make(&buf,
		log.WithLevel(log.LevelTrace),
		log.WithFormat(log.FormatJSON),
		log.WithPretty(false),
	)

	s := CreateState(WithLogger(logger), WithName("test"))

	lines := s.Eval(t.Context(), "a = 10.0.0.0/24; a in ::/0")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	output := buf.String()
	for _, want := range []string{
		`"msg":"eval input"`,
		`"statements":2`,
		`"session":"test"`,
		`"msg":"statement failed"`,
		`"class":"TypeError"`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("log output missing %s:\n%s", want, output)
		}
	}
}

func TestState_DefaultLoggerIsSilent(t *testing.T) {
	var buf bytes.Buffer

	logger := log.Make(&buf, log.WithLevel(log.LevelInfo))

	CreateState(WithLogger(logger)).Eval(t.Context(), "1 / 0")

	if buf.Len() != 0 {
		t.Errorf("trace records written at info level: %s", buf.String())
	}
}
