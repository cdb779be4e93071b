package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/cidrcalc/lang"
	"github.com/ardnew/cidrcalc/log"
	"github.com/ardnew/cidrcalc/pkg"
)

// Eval evaluates expressions given as arguments in a single session.
type Eval struct {
	Exprs  []string `arg:""         help:"Input to evaluate; each argument may hold several statements" name:"expr"`
	Output Format   `default:"text" enum:"${formatEnum}" help:"Output format (${enum})."                placeholder:"FORMAT" short:"o"`
	Indent int      `default:"2"                         help:"Indent width for JSON and YAML output."                       short:"i"`
	Strict bool     `                                    help:"Fail if any statement evaluates to an error."`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if len(e.Exprs) == 0 {
		return ErrNoExpression
	}

	state := lang.CreateState(sessionOptions("eval")...)
	defer state.Release()

	if err := preload(ctx, state); err != nil {
		return err
	}

	r := report{results: make([]lang.Result, 0, len(e.Exprs))}

	for _, text := range e.Exprs {
		r.results = append(r.results, state.Results(ctx, text)...)
	}

	log.DebugContext(ctx, "eval complete",
		slog.Int("arguments", len(e.Exprs)),
		slog.Int("statements", len(r.results)),
	)

	if err := writeReports(ctx, outputFrom(ctx), e.Output, e.Indent, []report{r}); err != nil {
		return err
	}

	if e.Strict && r.failed() {
		return pkg.ErrEvaluation
	}

	return nil
}
