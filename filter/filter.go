// Package filter selects scope bindings with boolean expr-lang expressions.
//
// A filter is evaluated once per binding against an environment with these
// fields:
//
//	name    string  variable name
//	kind    string  "Integer", "Address", "Network", or "Boolean"
//	value   string  the formatted value, as printed in scope listings
//	family  string  "IPv4" or "IPv6" for addresses and networks, else ""
//	prefix  int     prefix length of a network, else -1
//	size    string  decimal address count of a network, else ""
//
// and one function, within(cidr), which reports whether the binding's
// address or network lies inside the given CIDR block. For example:
//
//	kind == "Network" && prefix >= 24
//	within("10.0.0.0/8") || name startsWith "gw"
package filter

import (
	"maps"
	"net/netip"
	"slices"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/cidrcalc/lang"
	"github.com/ardnew/cidrcalc/pkg"
)

// Filter is a compiled binding predicate. The nil Filter matches every
// binding.
type Filter struct {
	source  string
	program *vm.Program
}

// exemplar declares the field types of the filter environment.
func exemplar() map[string]any {
	return map[string]any{
		"name":   "",
		"kind":   "",
		"value":  "",
		"family": "",
		"prefix": 0,
		"size":   "",
		"within": func(string) bool { return false },
	}
}

// Fields returns the sorted names available to filter expressions.
func Fields() []string {
	return slices.Sorted(maps.Keys(exemplar()))
}

// Compile compiles source into a Filter. An empty source yields the nil
// Filter.
func Compile(source string) (*Filter, error) {
	if source == "" {
		return nil, nil
	}

	program, err := expr.Compile(source, expr.Env(exemplar()), expr.AsBool())
	if err != nil {
		return nil, pkg.MakeError(err).Wrap(pkg.ErrInvalidFilter).Wrapf("%q", source)
	}

	return &Filter{source: source, program: program}, nil
}

// String returns the filter's source expression.
func (f *Filter) String() string {
	if f == nil {
		return ""
	}

	return f.source
}

// Match reports whether b satisfies the filter.
func (f *Filter) Match(b lang.Binding) (bool, error) {
	if f == nil {
		return true, nil
	}

	out, err := expr.Run(f.program, Env(b))
	if err != nil {
		return false, pkg.MakeError(err).Wrap(pkg.ErrInvalidFilter).Wrapf("%q", f.source)
	}

	ok, _ := out.(bool)

	return ok, nil
}

// Apply returns the bindings that satisfy the filter, in order.
func (f *Filter) Apply(bindings []lang.Binding) ([]lang.Binding, error) {
	if f == nil {
		return bindings, nil
	}

	kept := make([]lang.Binding, 0, len(bindings))

	for _, b := range bindings {
		ok, err := f.Match(b)
		if err != nil {
			return nil, err
		}

		if ok {
			kept = append(kept, b)
		}
	}

	return kept, nil
}

// Env returns the environment a filter expression sees for b.
func Env(b lang.Binding) map[string]any {
	env := map[string]any{
		"name":   b.Name,
		"kind":   b.Value.Kind.String(),
		"value":  b.Value.String(),
		"family": "",
		"prefix": -1,
		"size":   "",
		"within": within(b.Value),
	}

	switch b.Value.Kind {
	case lang.KindAddress:
		env["family"] = b.Value.Family().String()

	case lang.KindNetwork:
		env["family"] = b.Value.Family().String()
		env["prefix"] = b.Value.PrefixLen()
		env["size"] = b.Value.Size().String()
	}

	return env
}

func within(v lang.Value) func(string) bool {
	return func(cidr string) bool {
		outer, err := netip.ParsePrefix(cidr)
		if err != nil {
			return false
		}

		outer = outer.Masked()

		switch v.Kind {
		case lang.KindAddress:
			a, ok := v.Addr()

			return ok && outer.Contains(a)

		case lang.KindNetwork:
			p, ok := v.Prefix()

			return ok && p.Bits() >= outer.Bits() && outer.Contains(p.Addr())

		default:
			return false
		}
	}
}
