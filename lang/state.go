package lang

import (
	"context"
	"log/slog"

	"github.com/ardnew/cidrcalc/log"
)

// State is an evaluation session. It owns one [Env] that persists across
// calls to [State.Eval], so variables assigned by one input are visible to
// the next.
//
// A State must not be used by more than one goroutine at a time.
type State struct {
	env     *Env
	logger  log.Logger
	name    string
	evalSeq int
}

// Option configures a [State].
type Option func(options) options

type options struct {
	logger log.Logger
	name   string
}

// WithLogger attaches a logger to the state. Each input and statement is
// traced at [log.LevelTrace]. The zero Logger discards everything.
func WithLogger(logger log.Logger) Option {
	return func(o options) options {
		o.logger = logger

		return o
	}
}

// WithName labels the state in log records.
func WithName(name string) Option {
	return func(o options) options {
		o.name = name

		return o
	}
}

// CreateState returns a new session with an empty environment.
func CreateState(opts ...Option) *State {
	var o options
	for _, opt := range opts {
		o = opt(o)
	}

	s := &State{
		env:    NewEnv(),
		logger: o.logger,
		name:   o.name,
	}

	if o.name != "" {
		s.logger = s.logger.With(slog.String("session", o.name))
	}

	return s
}

// Result is the outcome of one statement.
type Result struct {
	// Input is the statement's source text.
	Input string

	// Value is the statement's value, possibly an Error value.
	Value Value

	// Pos is the position of the statement's first token.
	Pos Pos
}

// Line formats the result as a single output line.
func (r Result) Line() string { return r.Value.String() }

// ToMap returns a native map representation of the result for encoding.
func (r Result) ToMap() map[string]any {
	m := r.Value.ToMap()
	m["input"] = r.Input
	m["line"] = r.Pos.Line
	m["column"] = r.Pos.Column

	return m
}

// Results evaluates every statement in text against the session and returns
// one [Result] per statement, in input order. Empty input, and input made
// only of separators, blanks, and comments, yields no results.
//
// A failing statement yields an Error value and does not prevent later
// statements from evaluating.
func (s *State) Results(ctx context.Context, text string) []Result {
	stmts := ParseString(text)

	s.evalSeq++
	s.logger.TraceContext(ctx, "eval input",
		slog.Int("seq", s.evalSeq),
		slog.Int("statements", len(stmts)),
		slog.Int("bytes", len(text)),
	)

	results := make([]Result, 0, len(stmts))

	for _, stmt := range stmts {
		v := EvalStatement(stmt, s.env)

		res := Result{
			Input: stmt.Source(text),
			Value: v,
			Pos:   stmt.Pos,
		}

		if v.IsError() {
			s.logger.TraceContext(ctx, "statement failed",
				slog.String("input", res.Input),
				slog.Any("error", v.Err()),
			)
		} else {
			s.logger.TraceContext(ctx, "statement",
				slog.String("input", res.Input),
				slog.String("kind", v.Kind.String()),
				slog.String("value", v.String()),
			)
		}

		results = append(results, res)
	}

	return results
}

// Eval evaluates text against the session and returns exactly one output
// line per statement.
func (s *State) Eval(ctx context.Context, text string) []string {
	results := s.Results(ctx, text)

	lines := make([]string, len(results))
	for i, r := range results {
		lines[i] = r.Line()
	}

	return lines
}

// Entries returns the session's bindings in first-assignment order.
func (s *State) Entries() []Binding { return s.env.Snapshot() }

// Names returns the session's variable names in first-assignment order.
func (s *State) Names() []string { return s.env.Names() }

// Scope formats the session's bindings as "name = value" lines in
// first-assignment order.
func (s *State) Scope() []string {
	entries := s.env.Snapshot()

	lines := make([]string, len(entries))
	for i, b := range entries {
		lines[i] = b.String()
	}

	return lines
}

// Release discards the session's bindings. A released State behaves as a
// new, empty one.
func (s *State) Release() {
	s.logger.Trace("release", slog.Int("bindings", s.env.Len()))
	s.env.Clear()
}
