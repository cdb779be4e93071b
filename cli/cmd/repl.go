package cmd

import (
	"context"

	"github.com/ardnew/cidrcalc/cli/cmd/repl"
	"github.com/ardnew/cidrcalc/lang"
	"github.com/ardnew/cidrcalc/log"
)

// Repl starts the interactive calculator.
type Repl struct {
	History string `default:"${history}" help:"REPL history file." type:"path"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	opts := sessionOptions("repl")

	state := lang.CreateState(opts...)
	defer state.Release()

	if err := preload(ctx, state); err != nil {
		return err
	}

	return repl.Run(ctx, state, r.History, log.Default(), opts...)
}
