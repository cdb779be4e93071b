package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

// ANSI color codes for pretty printing.
const (
	colorReset   = "\033[0m"
	colorGray    = "\033[90m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

// levelColor returns the color used for a level name.
func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return colorRed
	case level >= slog.LevelWarn:
		return colorYellow
	case level >= slog.LevelInfo:
		return colorGreen
	case level >= slog.LevelDebug:
		return colorBlue
	default:
		return colorMagenta
	}
}

// prettyState is the part of a pretty handler shared by every handler derived
// from it with WithAttrs or WithGroup.
type prettyState struct {
	opts       slog.HandlerOptions
	formatTime FormatTime
	mu         *sync.Mutex
	w          io.Writer
}

func (s prettyState) enabled(level slog.Level) bool {
	floor := slog.LevelInfo
	if s.opts.Level != nil {
		floor = s.opts.Level.Level()
	}

	return level >= floor
}

func (s prettyState) write(buf *bytes.Buffer) error {
	buf.WriteByte('\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.w.Write(buf.Bytes())

	return err
}

func (s prettyState) source(r slog.Record) string {
	if !s.opts.AddSource {
		return ""
	}

	src := r.Source()
	if src == nil || src.File == "" {
		return ""
	}

	return src.File + ":" + strconv.Itoa(src.Line)
}

// prettyTextHandler implements a colorized key=value handler.
type prettyTextHandler struct {
	prettyState

	// prefix qualifies keys with the open groups, e.g. "group.".
	prefix string

	// attrs holds attributes added with WithAttrs, already rendered and
	// without a leading separator.
	attrs []byte
}

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	formatTime FormatTime,
) *prettyTextHandler {
	return &prettyTextHandler{
		prettyState: prettyState{
			opts:       *opts,
			formatTime: formatTime,
			mu:         &sync.Mutex{},
			w:          w,
		},
	}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled(level)
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() && h.formatTime != nil {
		if ts := h.formatTime(r.Time); ts != "" {
			writeKey(buf, slog.TimeKey)
			buf.WriteString(colorBlue + ts + colorReset)
		}
	}

	writeKey(buf, slog.LevelKey)
	buf.WriteString(levelColor(r.Level))
	buf.WriteString(strings.ToUpper(Level(r.Level).String()))
	buf.WriteString(colorReset)

	if src := h.source(r); src != "" {
		writeKey(buf, slog.SourceKey)
		buf.WriteString(colorGray + src + colorReset)
	}

	writeKey(buf, slog.MessageKey)
	buf.WriteString(colorCyan + r.Message + colorReset)

	if len(h.attrs) > 0 {
		buf.WriteByte(' ')
		buf.Write(h.attrs)
	}

	r.Attrs(func(a slog.Attr) bool {
		writeTextAttr(buf, h.prefix, a)

		return true
	})

	return h.write(buf)
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	buf := bytes.NewBuffer(append([]byte(nil), h.attrs...))

	for _, a := range attrs {
		writeTextAttr(buf, h.prefix, a)
	}

	c := *h
	c.attrs = buf.Bytes()

	return &c
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

func writeKey(buf *bytes.Buffer, key string) {
	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(colorGray)
	buf.WriteString(key)
	buf.WriteString(colorReset)
	buf.WriteByte('=')
}

// writeTextAttr writes a as key=value, flattening groups into dotted keys.
func writeTextAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		sub := prefix
		if a.Key != "" {
			sub = prefix + a.Key + "."
		}

		for _, g := range a.Value.Group() {
			writeTextAttr(buf, sub, g)
		}

		return
	}

	writeKey(buf, prefix+a.Key)
	writeTextValue(buf, a.Value)
}

func writeTextValue(buf *bytes.Buffer, v slog.Value) {
	switch v.Kind() {
	case slog.KindInt64:
		buf.WriteString(colorYellow)
		buf.WriteString(strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		buf.WriteString(colorYellow)
		buf.WriteString(strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		buf.WriteString(colorYellow)
		buf.WriteString(strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			buf.WriteString(colorGreen + "true")
		} else {
			buf.WriteString(colorRed + "false")
		}

	case slog.KindDuration:
		buf.WriteString(colorMagenta)
		buf.WriteString(v.Duration().String())

	case slog.KindTime:
		buf.WriteString(colorBlue)
		buf.WriteString(v.Time().String())

	default:
		buf.WriteString(colorCyan)
		buf.WriteString(v.String())
	}

	buf.WriteString(colorReset)
}

// prettyJSONHandler implements an indented, colorized JSON-like handler.
type prettyJSONHandler struct {
	prettyState

	// attrs holds attributes added with WithAttrs, nested under groups.
	attrs []slog.Attr

	// groups lists the open groups that record attributes are nested under.
	groups []string
}

func newPrettyJSONHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	formatTime FormatTime,
) *prettyJSONHandler {
	return &prettyJSONHandler{
		prettyState: prettyState{
			opts:       *opts,
			formatTime: formatTime,
			mu:         &sync.Mutex{},
			w:          w,
		},
	}
}

func (h *prettyJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled(level)
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]slog.Attr, 0, 4+len(h.attrs)+r.NumAttrs())

	if !r.Time.IsZero() && h.formatTime != nil {
		if ts := h.formatTime(r.Time); ts != "" {
			fields = append(fields, slog.String(slog.TimeKey, ts))
		}
	}

	fields = append(fields,
		slog.String(slog.LevelKey, strings.ToUpper(Level(r.Level).String())))

	if src := h.source(r); src != "" {
		fields = append(fields, slog.String(slog.SourceKey, src))
	}

	fields = append(fields, slog.String(slog.MessageKey, r.Message))
	fields = append(fields, h.attrs...)

	record := make([]slog.Attr, 0, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		record = append(record, a)

		return true
	})

	fields = append(fields, nest(h.groups, record)...)

	buf := new(bytes.Buffer)
	writeJSONObject(buf, fields, 0)

	return h.write(buf)
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], nest(h.groups, attrs)...)

	return &c
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(h.groups[:len(h.groups):len(h.groups)], name)

	return &c
}

// nest wraps attrs in the given groups, outermost first.
func nest(groups []string, attrs []slog.Attr) []slog.Attr {
	if len(attrs) == 0 {
		return nil
	}

	for i := len(groups) - 1; i >= 0; i-- {
		attrs = []slog.Attr{{Key: groups[i], Value: slog.GroupValue(attrs...)}}
	}

	return attrs
}

func writeJSONObject(buf *bytes.Buffer, attrs []slog.Attr, depth int) {
	indent := strings.Repeat("  ", depth+1)

	buf.WriteString("{\n")

	first := true

	for _, a := range attrs {
		a.Value = a.Value.Resolve()
		if a.Equal(slog.Attr{}) {
			continue
		}

		if !first {
			buf.WriteString(",\n")
		}

		first = false

		buf.WriteString(indent)
		buf.WriteString(colorGray)
		buf.WriteString(a.Key)
		buf.WriteString(colorReset)
		buf.WriteString(": ")

		if a.Value.Kind() == slog.KindGroup {
			writeJSONObject(buf, a.Value.Group(), depth+1)

			continue
		}

		writeJSONValue(buf, a.Value)
	}

	buf.WriteString("\n")
	buf.WriteString(strings.Repeat("  ", depth))
	buf.WriteString("}")
}

func writeJSONValue(buf *bytes.Buffer, v slog.Value) {
	switch v.Kind() {
	case slog.KindString:
		buf.WriteString(colorCyan)
		buf.WriteString(v.String())

	case slog.KindAny:
		if v.Any() == nil {
			buf.WriteString(colorGray + "null")
		} else {
			buf.WriteString(colorCyan)
			fmt.Fprint(buf, v.Any())
		}

	default:
		writeTextValue(buf, v)

		return
	}

	buf.WriteString(colorReset)
}
