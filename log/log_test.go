package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf)

	if logger.Level() != DefaultLevel {
		t.Errorf("level = %v, want %v", logger.Level(), DefaultLevel)
	}

	if logger.Format() != DefaultFormat {
		t.Errorf("format = %v, want %v", logger.Format(), DefaultFormat)
	}

	if logger.caller {
		t.Error("caller enabled by default")
	}

	if !logger.pretty {
		t.Error("pretty disabled by default")
	}
}

func TestLogger_Make_WithLevel_FiltersMessages(t *testing.T) {
	tests := []struct {
		name     string
		logFunc  func(Logger, string, ...slog.Attr)
		minLevel Level
		logged   bool
	}{
		{"trace at trace", Logger.Trace, LevelTrace, true},
		{"trace at debug", Logger.Trace, LevelDebug, false},
		{"debug at debug", Logger.Debug, LevelDebug, true},
		{"debug at info", Logger.Debug, LevelInfo, false},
		{"info at info", Logger.Info, LevelInfo, true},
		{"info at warn", Logger.Info, LevelWarn, false},
		{"warn at warn", Logger.Warn, LevelWarn, true},
		{"warn at error", Logger.Warn, LevelError, false},
		{"error at error", Logger.Error, LevelError, true},
		{"error at trace", Logger.Error, LevelTrace, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := Make(&buf, WithLevel(tt.minLevel))
			tt.logFunc(logger, "test message")

			if logged := buf.Len() > 0; logged != tt.logged {
				t.Errorf("logged = %v, want %v", logged, tt.logged)
			}
		})
	}
}

func TestLogger_Make_WithFormat_SetsOutputFormat(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger := Make(&buf, WithFormat(FormatJSON), WithPretty(false))
		logger.Info("test message", slog.String("key", "value"))

		var result map[string]any
		if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
			t.Fatalf("failed to parse JSON output: %v", err)
		}

		if result["msg"] != "test message" {
			t.Errorf("msg = %v, want %q", result["msg"], "test message")
		}

		if result["key"] != "value" {
			t.Errorf("key = %v, want %q", result["key"], "value")
		}
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		logger := Make(&buf, WithFormat(FormatText), WithPretty(false))
		logger.Info("test message", slog.String("key", "value"))

		output := buf.String()
		if !strings.Contains(output, "test message") {
			t.Error("message not found in text output")
		}

		if !strings.Contains(output, "key=value") {
			t.Error("key=value not found in text output")
		}
	})
}

func TestLogger_TraceLevelName(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		var buf bytes.Buffer
		logger := Make(&buf, WithLevel(LevelTrace), WithFormat(FormatText), WithPretty(pretty))
		logger.Trace("trace message")

		output := buf.String()
		if !strings.Contains(output, "TRACE") {
			t.Errorf("pretty=%v: output does not name TRACE: %s", pretty, output)
		}

		if strings.Contains(output, "DEBUG-4") {
			t.Errorf("pretty=%v: output contains raw slog level: %s", pretty, output)
		}
	}
}

func TestLogger_WithCaller_IncludesSource(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithCaller(true), WithPretty(false), WithFormat(FormatJSON))
	logger.Info("test message")

	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("source does not name the calling file: %s", buf.String())
	}

	buf.Reset()

	logger = Make(&buf, WithCaller(false), WithPretty(false), WithFormat(FormatJSON))
	logger.Info("test message")

	if strings.Contains(buf.String(), "source") {
		t.Error("source included when disabled")
	}
}

func TestLogger_With_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithFormat(FormatJSON), WithPretty(false))

	logger.With(slog.String("session", "repl")).Info("test message")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to unmarshal log entry: %v", err)
	}

	if entry["session"] != "repl" {
		t.Errorf("session = %v, want %q", entry["session"], "repl")
	}
}

func TestLogger_Pretty_KeepsAttributesAndGroups(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		logger := Make(&buf, WithFormat(FormatText), WithTimeLayout("none"))

		logger.
			With(slog.String("session", "a")).
			WithGroup("eval").
			Info("statement", slog.Group("error", slog.String("class", "TypeError")))

		output := buf.String()
		for _, want := range []string{"session", "eval.error.class", "TypeError"} {
			if !strings.Contains(output, want) {
				t.Errorf("output missing %q: %s", want, output)
			}
		}
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger := Make(&buf, WithFormat(FormatJSON), WithTimeLayout("none"))

		logger.
			With(slog.String("session", "a")).
			Info("statement", slog.Int("count", 3))

		output := buf.String()
		for _, want := range []string{"session", "count", "3", "statement"} {
			if !strings.Contains(output, want) {
				t.Errorf("output missing %q: %s", want, output)
			}
		}

		if strings.Contains(output, "time") {
			t.Errorf("timestamp present with layout none: %s", output)
		}
	})
}

type logValuer struct{}

func (logValuer) LogValue() slog.Value {
	return slog.GroupValue(slog.String("class", "RangeError"))
}

func TestLogger_Pretty_ResolvesLogValuer(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithFormat(FormatText))

	logger.Info("failed", slog.Any("error", logValuer{}))

	if !strings.Contains(buf.String(), "RangeError") {
		t.Errorf("LogValuer not resolved: %s", buf.String())
	}
}

func TestLogger_Wrap_OverridesOptions(t *testing.T) {
	var first, second bytes.Buffer

	logger := Make(&first, WithLevel(LevelError))
	wrapped := logger.Wrap(WithOutput(&second), WithLevel(LevelDebug))

	wrapped.Debug("to second")
	logger.Debug("dropped")

	if first.Len() != 0 {
		t.Errorf("original logger wrote: %s", first.String())
	}

	if !strings.Contains(second.String(), "to second") {
		t.Errorf("wrapped logger did not write: %s", second.String())
	}
}

func TestLogger_ZeroValue_Safety(t *testing.T) {
	var l Logger

	l.Trace("test")
	l.Debug("test")
	l.Info("test")
	l.Warn("test")
	l.Error("test")

	if l.With(slog.String("key", "value")).Logger != nil {
		t.Error("With on the zero Logger allocated a logger")
	}

	if l.Enabled(t.Context(), LevelError) {
		t.Error("zero Logger reports enabled")
	}

	if Discard().Logger != nil {
		t.Error("Discard returned a live logger")
	}
}

func TestLogger_ConcurrentCalls_ThreadSafe(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		var buf bytes.Buffer
		logger := Make(&buf, WithPretty(pretty), WithFormat(FormatText))

		var wg sync.WaitGroup
		for i := range 100 {
			wg.Add(1)

			go func(id int) {
				defer wg.Done()
				logger.Info("concurrent message", slog.Int("id", id))
			}(i)
		}

		wg.Wait()

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 100 {
			t.Errorf("pretty=%v: got %d log lines, want 100", pretty, len(lines))
		}
	}
}

func BenchmarkLogger_Info(b *testing.B) {
	var buf bytes.Buffer
	logger := Make(&buf)

	for i := 0; b.Loop(); i++ {
		logger.Info("benchmark message", slog.Int("iteration", i))
	}
}

func BenchmarkLogger_Trace_Disabled(b *testing.B) {
	var buf bytes.Buffer
	logger := Make(&buf, WithLevel(LevelInfo))

	for b.Loop() {
		logger.Trace("dropped", slog.String("input", "10.0.0.0/24 + 1"))
	}
}
