package lang

import "iter"

// Binding is a named value in an [Env].
type Binding struct {
	Name  string
	Value Value
}

// String formats the binding as "name = value".
func (b Binding) String() string {
	return b.Name + " = " + b.Value.String()
}

// ToMap returns a native map representation of the binding, used by scope
// filters and encoders.
func (b Binding) ToMap() map[string]any {
	m := b.Value.ToMap()
	m["name"] = b.Name

	return m
}

// Env is an insertion-ordered mapping of variable names to values.
// Names are unique; re-assigning a name overwrites its value in place
// without changing its position.
//
// Env is not safe for concurrent use.
type Env struct {
	entries []Binding
	index   map[string]int

	// base is read through for names not bound here. Set never writes to it.
	base *Env
}

// NewEnv returns an empty environment.
func NewEnv() *Env {
	return &Env{index: make(map[string]int)}
}

// Get returns the value bound to name.
func (e *Env) Get(name string) (Value, bool) {
	i, ok := e.index[name]
	if !ok {
		if e.base != nil {
			return e.base.Get(name)
		}

		return Value{}, false
	}

	return e.entries[i].Value, true
}

// overlay returns an empty Env that reads through to e. Bindings made in
// the overlay reach e only through commit.
func (e *Env) overlay() *Env {
	return &Env{index: make(map[string]int), base: e}
}

// commit binds every value set in the overlay in its base, in the order the
// names were first assigned.
func (e *Env) commit() {
	if e.base == nil {
		return
	}

	for _, b := range e.entries {
		e.base.Set(b.Name, b.Value)
	}
}

// Set binds value to name, overwriting any previous binding in place.
func (e *Env) Set(name string, value Value) {
	if e.index == nil {
		e.index = make(map[string]int)
	}

	if i, ok := e.index[name]; ok {
		e.entries[i].Value = value

		return
	}

	e.index[name] = len(e.entries)
	e.entries = append(e.entries, Binding{Name: name, Value: value})
}

// Len returns the number of bindings.
func (e *Env) Len() int { return len(e.entries) }

// Snapshot returns a copy of the bindings in first-insertion order.
func (e *Env) Snapshot() []Binding {
	out := make([]Binding, len(e.entries))
	copy(out, e.entries)

	return out
}

// Names returns the bound names in first-insertion order.
func (e *Env) Names() []string {
	names := make([]string, len(e.entries))
	for i, b := range e.entries {
		names[i] = b.Name
	}

	return names
}

// All returns an iterator over all bindings in first-insertion order.
func (e *Env) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, b := range e.entries {
			if !yield(b.Name, b.Value) {
				return
			}
		}
	}
}

// Clear removes all bindings.
func (e *Env) Clear() {
	e.entries = nil
	e.index = make(map[string]int)
}
