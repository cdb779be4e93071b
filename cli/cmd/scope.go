package cmd

import (
	"context"

	"github.com/ardnew/cidrcalc/filter"
	"github.com/ardnew/cidrcalc/lang"
)

// Scope evaluates script files and prints only the resulting variable
// bindings, optionally filtered.
type Scope struct {
	Filter string   `arg:""         help:"expr-lang expression selecting bindings, e.g. 'prefix >= 24'." name:"filter" optional:""`
	Files  []string `                                    help:"Script file(s) or '-' for stdin."   name:"file"         short:"f" type:"existingfile"`
	Output Format   `default:"text" enum:"${formatEnum}" help:"Output format (${enum})."           placeholder:"FORMAT" short:"o"`
	Indent int      `default:"2"                         help:"Indent width for JSON and YAML output."              short:"i"`
}

// Run executes the scope command.
//
// Standard input is read only when neither script files nor global source
// files are given.
func (c *Scope) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	flt, err := filter.Compile(c.Filter)
	if err != nil {
		return err
	}

	srcs, done := scripts(c.Files, SourceFilesFrom(ctx) == nil)
	defer done()

	state := lang.CreateState(sessionOptions("scope")...)
	defer state.Release()

	if err := preload(ctx, state); err != nil {
		return err
	}

	for _, src := range srcs {
		text, err := readSource(src)
		if err != nil {
			return err
		}

		state.Results(ctx, text)
	}

	r := report{showScope: true}

	if r.scope, err = flt.Apply(state.Entries()); err != nil {
		return err
	}

	return writeReports(ctx, outputFrom(ctx), c.Output, c.Indent, []report{r})
}
