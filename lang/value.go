package lang

import (
	"math/big"
	"net/netip"
	"strconv"
)

// Kind indicates the variant held by a [Value].
type Kind int

const (
	// KindUnit is the zero Value. No expression evaluates to it.
	KindUnit Kind = iota

	// KindInteger is a signed integer within the 128-bit range.
	KindInteger

	// KindAddress is a single IPv4 or IPv6 address.
	KindAddress

	// KindNetwork is a CIDR block whose base address has no host bits set.
	KindNetwork

	// KindBoolean is true or false.
	KindBoolean

	// KindError is an evaluation failure carried as a value.
	KindError
)

// String returns a string representation of the value kind.
func (k Kind) String() string {
	switch k {
	case KindUnit:
		return "Unit"
	case KindInteger:
		return "Integer"
	case KindAddress:
		return "Address"
	case KindNetwork:
		return "Network"
	case KindBoolean:
		return "Boolean"
	case KindError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Value is the runtime value of an expression: a closed tagged union over
// the kinds enumerated by [Kind]. Which fields are meaningful depends on Kind.
//
// Values are immutable; every operation returns a new Value.
type Value struct {
	Kind Kind

	num    *big.Int // Integer value, Address value, or Network base
	family Family   // Address and Network
	prefix int      // Network
	flag   bool     // Boolean
	err    *Error   // Error
}

// Unit returns the unit value.
func Unit() Value { return Value{} }

// Integer returns n as an Integer value, or a RangeError value when n does
// not fit in a signed 128-bit integer.
func Integer(n *big.Int) Value {
	if !inIntegerRange(n) {
		return errorValue(ErrIntegerRange.Wrapf("%s", n))
	}

	return Value{Kind: KindInteger, num: new(big.Int).Set(n)}
}

// Int64 returns n as an Integer value.
func Int64(n int64) Value {
	return Value{Kind: KindInteger, num: big.NewInt(n)}
}

// Address returns the numeric address n of the family, or a RangeError value
// when n lies outside the family's address space.
func Address(f Family, n *big.Int) Value {
	if f.Bits() == 0 {
		return errorValue(ErrOperandType.Wrapf("unknown address family %d", int(f)))
	}

	if !inFamily(f, n) {
		return errorValue(ErrOverflow.Wrapf(
			"%s is outside the %s address space", n, f,
		))
	}

	return Value{Kind: KindAddress, family: f, num: new(big.Int).Set(n)}
}

// AddrValue returns a as an Address value.
func AddrValue(a netip.Addr) Value {
	if !a.IsValid() {
		return errorValue(ErrMalformedAddress.Wrapf("invalid address"))
	}

	f, n := addrToInt(a.WithZone(""))

	return Value{Kind: KindAddress, family: f, num: n}
}

// Network returns the network of the given prefix length containing the
// numeric address base. Host bits in base are cleared. An out-of-range prefix
// or base yields a RangeError value.
func Network(f Family, base *big.Int, prefix int) Value {
	if f.Bits() == 0 {
		return errorValue(ErrOperandType.Wrapf("unknown address family %d", int(f)))
	}

	if prefix < 0 || prefix > f.Bits() {
		return errorValue(ErrPrefixRange.Wrapf(
			"/%d is not within [0, %d] for %s", prefix, f.Bits(), f,
		))
	}

	if !inFamily(f, base) {
		return errorValue(ErrOverflow.Wrapf(
			"%s is outside the %s address space", base, f,
		))
	}

	return Value{
		Kind:   KindNetwork,
		family: f,
		num:    maskHost(f, base, prefix),
		prefix: prefix,
	}
}

// PrefixValue returns p as a Network value with host bits cleared.
func PrefixValue(p netip.Prefix) Value {
	if !p.IsValid() {
		return errorValue(ErrMalformedNetwork.Wrapf("invalid prefix"))
	}

	f, n := addrToInt(p.Addr().WithZone(""))

	return Network(f, n, p.Bits())
}

// Boolean returns b as a Boolean value.
func Boolean(b bool) Value {
	return Value{Kind: KindBoolean, flag: b}
}

// errorValue wraps err as an Error value.
func errorValue(err *Error) Value {
	return Value{Kind: KindError, err: err}
}

// ErrorValue returns err as an Error value.
func ErrorValue(err *Error) Value { return errorValue(err) }

// IsError reports whether v is an Error value.
func (v Value) IsError() bool { return v.Kind == KindError }

// Int returns a copy of the numeric content: the Integer value, the numeric
// Address, or the Network base. It returns nil for other kinds.
func (v Value) Int() *big.Int {
	if v.num == nil {
		return nil
	}

	return new(big.Int).Set(v.num)
}

// Family returns the address family of an Address or Network value.
func (v Value) Family() Family { return v.family }

// PrefixLen returns the prefix length of a Network value.
func (v Value) PrefixLen() int { return v.prefix }

// Bool returns the content of a Boolean value.
func (v Value) Bool() bool { return v.flag }

// Err returns the error carried by an Error value.
func (v Value) Err() *Error { return v.err }

// Addr returns the address of an Address value or the base address of a
// Network value.
func (v Value) Addr() (netip.Addr, bool) {
	if v.Kind != KindAddress && v.Kind != KindNetwork {
		return netip.Addr{}, false
	}

	return intToAddr(v.family, v.num), true
}

// Prefix returns the netip form of a Network value.
func (v Value) Prefix() (netip.Prefix, bool) {
	if v.Kind != KindNetwork {
		return netip.Prefix{}, false
	}

	return netip.PrefixFrom(intToAddr(v.family, v.num), v.prefix), true
}

// Size returns the number of addresses in a Network value.
func (v Value) Size() *big.Int {
	if v.Kind != KindNetwork {
		return nil
	}

	return blockSize(v.family, v.prefix)
}

// Last returns the numeric value of the last address in a Network value.
func (v Value) Last() *big.Int {
	if v.Kind != KindNetwork {
		return nil
	}

	return new(big.Int).Sub(new(big.Int).Add(v.num, v.Size()), one)
}

// String formats the value as it appears in a result line: integers in
// decimal, addresses in their family's canonical notation, networks as
// address/prefix, booleans as true or false, and errors as a single line.
func (v Value) String() string {
	switch v.Kind {
	case KindUnit:
		return "()"

	case KindInteger:
		return v.num.String()

	case KindAddress:
		return intToAddr(v.family, v.num).String()

	case KindNetwork:
		return intToAddr(v.family, v.num).String() + "/" + strconv.Itoa(v.prefix)

	case KindBoolean:
		return strconv.FormatBool(v.flag)

	case KindError:
		if v.err == nil {
			return ClassNone.String()
		}

		return v.err.Line()

	default:
		return "<unknown>"
	}
}

// Equal reports whether v and w are the same value. Error values are equal
// only when they carry the same error instance.
func (v Value) Equal(w Value) bool {
	if v.Kind != w.Kind {
		return false
	}

	switch v.Kind {
	case KindUnit:
		return true

	case KindInteger:
		return v.num.Cmp(w.num) == 0

	case KindAddress:
		return v.family == w.family && v.num.Cmp(w.num) == 0

	case KindNetwork:
		return v.family == w.family && v.prefix == w.prefix &&
			v.num.Cmp(w.num) == 0

	case KindBoolean:
		return v.flag == w.flag

	case KindError:
		return v.err == w.err

	default:
		return false
	}
}

// ToMap returns a native map representation of the value for encoding and
// filtering.
func (v Value) ToMap() map[string]any {
	m := map[string]any{
		"kind":  v.Kind.String(),
		"value": v.String(),
	}

	switch v.Kind {
	case KindAddress:
		m["family"] = v.family.String()

	case KindNetwork:
		m["family"] = v.family.String()
		m["prefix"] = v.prefix
		m["size"] = v.Size().String()

	case KindBoolean:
		m["value"] = v.flag

	case KindError:
		if v.err != nil {
			m["class"] = v.err.Class().String()
			m["value"] = v.err.Error()
		}
	}

	return m
}
