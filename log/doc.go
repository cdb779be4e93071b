// Package log provides leveled structured logging built on [log/slog], with
// a trace level below debug and colorized pretty handlers.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("session started", slog.String("mode", "repl"))
//
// # Configuration
//
// Loggers are configured at creation time with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// [Logger.Wrap] derives a logger with further options applied.
//
// # Package-level Logger
//
// The package keeps a default logger writing to standard error. [Config]
// reconfigures it, and the package-level functions such as [Info] and
// [DebugContext] write through it.
//
// # Zero Value
//
// The zero [Logger] discards all messages. Components that accept an
// optional logger can hold one by value without checking for nil.
//
// # Levels
//
// Five levels are defined: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn], and [LevelError]. Messages below the configured level are
// discarded.
//
// # Output Formats
//
// Two output formats are supported: [FormatText] (default) and
// [FormatJSON]. With pretty printing enabled, text output is colorized and
// JSON output is indented; attributes implementing [slog.LogValuer] are
// resolved and groups are flattened into dotted keys in text output.
package log
