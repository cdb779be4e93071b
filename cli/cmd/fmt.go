package cmd

import (
	"context"
	"strings"

	"github.com/ardnew/cidrcalc/lang"
)

// Fmt parses scripts without evaluating them and prints each statement with
// its grouping made explicit, which shows how precedence was applied.
type Fmt struct {
	Files  []string `arg:""         help:"Script file(s) or '-' for stdin (default: stdin)." name:"file" optional:"" type:"existingfile"`
	Output Format   `default:"text" enum:"${formatEnum}" help:"Output format (${enum})."      placeholder:"FORMAT" short:"o"`
	Indent int      `default:"2"                         help:"Indent width for JSON and YAML output."          short:"i"`
}

// Run executes the fmt command.
func (f *Fmt) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	srcs, done := scripts(f.Files, true)
	defer done()

	var lines []string

	entries := make([]map[string]any, 0)

	for _, src := range srcs {
		text, err := readSource(src)
		if err != nil {
			return err
		}

		for _, stmt := range lang.ParseString(text) {
			lines = append(lines, formatStatement(stmt))
			entries = append(entries, statementMap(src.Name, text, stmt))
		}
	}

	w := outputFrom(ctx)

	switch f.Output {
	case FormatJSON:
		return writeJSON(w, f.Indent, entries)

	case FormatYAML:
		return writeYAML(ctx, w, f.Indent, entries)

	default:
		if len(lines) == 0 {
			return nil
		}

		return writeString(w, strings.Join(lines, "\n")+"\n")
	}
}

// formatStatement renders a parsed statement, or its error line.
func formatStatement(stmt lang.Statement) string {
	if stmt.Err != nil {
		return stmt.Err.Line()
	}

	return stmt.Expr.String()
}

func statementMap(source, text string, stmt lang.Statement) map[string]any {
	m := map[string]any{
		"source": source,
		"input":  stmt.Source(text),
		"line":   stmt.Pos.Line,
		"column": stmt.Pos.Column,
	}

	if stmt.Err != nil {
		m["class"] = stmt.Err.Class().String()
		m["error"] = stmt.Err.Error()
	} else {
		m["tree"] = stmt.Expr.String()
	}

	return m
}
