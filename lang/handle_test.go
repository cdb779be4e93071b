package lang

import (
	"errors"
	"testing"
)

func TestSessions(t *testing.T) {
	table := NewSessions()

	a := table.Create()
	b := table.Create()

	if _, err := table.Eval(t.Context(), a, "x = 1"); err != nil {
		t.Fatalf("eval a: %v", err)
	}

	if _, err := table.Eval(t.Context(), b, "x = 10.0.0.0/8"); err != nil {
		t.Fatalf("eval b: %v", err)
	}

	scope, err := table.Scope(a)
	if err != nil || !equalLines(scope, []string{"x = 1"}) {
		t.Errorf("scope a = %q, %v", scope, err)
	}

	scope, err = table.Scope(b)
	if err != nil || !equalLines(scope, []string{"x = 10.0.0.0/8"}) {
		t.Errorf("scope b = %q, %v", scope, err)
	}

	if got := table.Len(); got != 2 {
		t.Errorf("len = %d, want 2", got)
	}

	if err := table.Release(a); err != nil {
		t.Fatalf("release a: %v", err)
	}

	if err := table.Release(a); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("second release = %v, want %v", err, ErrStaleHandle)
	}

	if _, err := table.Eval(t.Context(), a, "x"); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("eval released = %v, want %v", err, ErrStaleHandle)
	}

	// The freed slot is reused under a new generation.
	c := table.Create()
	if c.index != a.index || c.generation == a.generation {
		t.Errorf("reused handle = %+v, released = %+v", c, a)
	}

	if scope, _ := table.Scope(c); len(scope) != 0 {
		t.Errorf("new session scope = %q, want empty", scope)
	}

	if _, err := table.Scope(a); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("stale handle after reuse = %v, want %v", err, ErrStaleHandle)
	}
}

func TestSessions_ZeroHandle(t *testing.T) {
	table := NewSessions()
	table.Create()

	if _, err := table.State(Handle{}); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("zero handle = %v, want %v", err, ErrStaleHandle)
	}

	if _, err := table.State(Handle{index: 7, generation: 1}); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("unknown handle = %v, want %v", err, ErrStaleHandle)
	}
}
