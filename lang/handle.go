package lang

import (
	"context"
	"sync"
)

// ErrStaleHandle is returned for a handle whose session was released or that
// was never issued by the table.
var ErrStaleHandle = NewError(ClassNone, "stale session handle")

// Handle identifies a session in a [Sessions] table. The zero Handle is
// never valid.
type Handle struct {
	index      uint32
	generation uint32
}

// Sessions is a table of independently owned sessions addressed by
// generational handles. Releasing a session frees its slot for reuse and
// invalidates every outstanding handle to it.
//
// The table itself is safe for concurrent use; each session is not.
type Sessions struct {
	mu    sync.Mutex
	slots []slot
	free  []uint32
	opts  []Option
}

type slot struct {
	state      *State
	generation uint32
}

// NewSessions returns an empty table. The options are applied to every
// session it creates.
func NewSessions(opts ...Option) *Sessions {
	return &Sessions{opts: opts}
}

// Create starts a new session and returns its handle.
func (t *Sessions) Create(opts ...Option) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	state := CreateState(append(t.opts[:len(t.opts):len(t.opts)], opts...)...)

	if n := len(t.free); n > 0 {
		i := t.free[n-1]
		t.free = t.free[:n-1]
		t.slots[i].state = state

		return Handle{index: i, generation: t.slots[i].generation}
	}

	t.slots = append(t.slots, slot{state: state, generation: 1})

	return Handle{index: uint32(len(t.slots) - 1), generation: 1}
}

// State returns the session identified by h.
func (t *Sessions) State(h Handle) (*State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.lookup(h)
}

// Eval evaluates text in the session identified by h.
func (t *Sessions) Eval(ctx context.Context, h Handle, text string) ([]string, error) {
	s, err := t.State(h)
	if err != nil {
		return nil, err
	}

	return s.Eval(ctx, text), nil
}

// Scope formats the bindings of the session identified by h.
func (t *Sessions) Scope(h Handle) ([]string, error) {
	s, err := t.State(h)
	if err != nil {
		return nil, err
	}

	return s.Scope(), nil
}

// Release ends the session identified by h. Releasing a handle twice
// reports [ErrStaleHandle].
func (t *Sessions) Release(h Handle) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, err := t.lookup(h)
	if err != nil {
		return err
	}

	s.Release()

	t.slots[h.index].state = nil
	t.slots[h.index].generation++
	t.free = append(t.free, h.index)

	return nil
}

// Len returns the number of live sessions.
func (t *Sessions) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.slots) - len(t.free)
}

func (t *Sessions) lookup(h Handle) (*State, error) {
	if h.generation == 0 || int(h.index) >= len(t.slots) {
		return nil, ErrStaleHandle
	}

	sl := t.slots[h.index]
	if sl.generation != h.generation || sl.state == nil {
		return nil, ErrStaleHandle.Wrapf("slot %d generation %d", h.index, h.generation)
	}

	return sl.state, nil
}
