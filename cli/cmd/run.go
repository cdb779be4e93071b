package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/cidrcalc/filter"
	"github.com/ardnew/cidrcalc/lang"
	"github.com/ardnew/cidrcalc/log"
	"github.com/ardnew/cidrcalc/pkg"
)

// Run evaluates script files, or standard input, and prints one line per
// statement.
type Run struct {
	Files   []string `                                    help:"Script file(s) or '-' for stdin (default: stdin)."         name:"file" short:"f" type:"existingfile"`
	Isolate bool     `                                    help:"Evaluate each file in its own session."`
	Output  Format   `default:"text" enum:"${formatEnum}" help:"Output format (${enum})."           placeholder:"FORMAT"             short:"o"`
	Indent  int      `default:"2"                         help:"Indent width for JSON and YAML output."                              short:"i"`
	Scope   bool     `                                    help:"Also print the resulting scope."`
	Filter  string   `                                    help:"Print only scope bindings matching this expr-lang expression." placeholder:"EXPR"`
	Strict  bool     `                                    help:"Fail if any statement evaluates to an error."`
}

// Run executes the run command.
func (c *Run) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	flt, err := filter.Compile(c.Filter)
	if err != nil {
		return err
	}

	srcs, done := scripts(c.Files, true)
	defer done()

	sessions := lang.NewSessions(lang.WithLogger(log.Default()))

	var reports []report

	if c.Isolate {
		for _, src := range srcs {
			r, err := c.evaluate(ctx, sessions, src.Name, flt, src)
			if err != nil {
				return err
			}

			reports = append(reports, r)
		}
	} else {
		r, err := c.evaluate(ctx, sessions, "run", flt, srcs...)
		if err != nil {
			return err
		}

		reports = append(reports, r)
	}

	if err := writeReports(ctx, outputFrom(ctx), c.Output, c.Indent, reports); err != nil {
		return err
	}

	for _, r := range reports {
		if c.Strict && r.failed() {
			return pkg.ErrEvaluation
		}
	}

	return nil
}

// evaluate runs srcs in one new session of sessions and releases it.
func (c *Run) evaluate(
	ctx context.Context,
	sessions *lang.Sessions,
	name string,
	flt *filter.Filter,
	srcs ...Source,
) (report, error) {
	h := sessions.Create(lang.WithName(name))

	defer func() {
		if err := sessions.Release(h); err != nil {
			log.WarnContext(ctx, "release session", slog.Any("error", err))
		}
	}()

	state, err := sessions.State(h)
	if err != nil {
		return report{}, err
	}

	if err := preload(ctx, state); err != nil {
		return report{}, err
	}

	r := report{
		results:   make([]lang.Result, 0),
		showScope: c.Scope || flt != nil,
	}

	if c.Isolate {
		r.source = name
	}

	for _, src := range srcs {
		text, err := readSource(src)
		if err != nil {
			return report{}, err
		}

		r.results = append(r.results, state.Results(ctx, text)...)
	}

	if r.showScope {
		if r.scope, err = flt.Apply(state.Entries()); err != nil {
			return report{}, err
		}
	}

	log.DebugContext(ctx, "script evaluated",
		slog.String("session", name),
		slog.Int("statements", len(r.results)),
		slog.Bool("failed", r.failed()),
	)

	return r, nil
}
