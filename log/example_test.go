package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/cidrcalc/log"
)

func Example_basic() {
	logger := log.Make(os.Stderr)
	logger.Info("session started", slog.String("mode", "repl"))
}

func Example_configuration() {
	logger := log.Make(os.Stderr,
		log.WithLevel(log.LevelTrace),
		log.WithTimeLayout("ms"),
		log.WithCaller(true))

	logger.Trace("eval input", slog.Int("statements", 2))
}

func Example_jsonFormat() {
	logger := log.Make(os.Stderr, log.WithFormat(log.FormatJSON), log.WithPretty(false))
	logger.Warn("history not saved", slog.String("path", "/tmp/history"))
}

func Example_withAttributes() {
	logger := log.Make(os.Stderr).With(slog.String("session", "script.cidr"))

	logger.Info("evaluating")
	logger.Debug("statement", slog.String("input", "10.0.0.0/24 + 1"))
}

func Example_withContext() {
	ctx := context.Background()

	log.Config(log.WithLevel(log.LevelDebug))
	log.DebugContext(ctx, "configuration loaded")
}
