package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/cidrcalc/lang"
	"github.com/ardnew/cidrcalc/log"
)

// sessionOptions returns the options shared by every session a command
// creates.
func sessionOptions(name string) []lang.Option {
	return []lang.Option{lang.WithLogger(log.Default()), lang.WithName(name)}
}

// preload evaluates the global source files into state. Result lines are
// discarded; failing statements are logged as warnings.
func preload(ctx context.Context, state *lang.State) error {
	srcs := SourceFilesFrom(ctx)
	if srcs == nil {
		return nil
	}

	texts, err := srcs.Texts()
	if err != nil {
		return err
	}

	for _, src := range texts {
		results := state.Results(ctx, src.Text)

		for _, res := range results {
			if res.Value.IsError() {
				log.WarnContext(ctx, "source statement failed",
					slog.String("source", src.Name),
					slog.Any("error", res.Value.Err()),
				)
			}
		}

		log.DebugContext(ctx, "source loaded",
			slog.String("source", src.Name),
			slog.Int("statements", len(results)),
		)
	}

	return nil
}

// scripts returns the sources named by files, or standard input when files
// is empty and stdinDefault is set. The returned func closes opened files.
func scripts(files []string, stdinDefault bool) ([]Source, func()) {
	if srcs := buildSourceFiles(files); srcs != nil {
		return srcs.Sources(), func() { _ = srcs.Close() }
	}

	if stdinDefault {
		return []Source{{Name: stdinSource, Reader: stdin}}, func() {}
	}

	return nil, func() {}
}
