package lang

import "math/big"

// binary applies op to two non-Error operands.
func binary(op Op, l, r Value) (Value, *Error) {
	switch op {
	case OpDiv, OpMod:
		return Value{}, ErrDivision.Wrapf("%s %s %s", l.Kind, op, r.Kind)

	case OpAdd, OpSub:
		return additive(op, l, r)

	case OpAnd, OpOr, OpXor:
		return bitwise(op, l, r)

	case OpEQ, OpNE, OpLT, OpLE, OpGT, OpGE:
		return compare(op, l, r)

	case OpIn:
		return contains(l, r)

	default:
		return Value{}, operandError(op, l, r)
	}
}

// unary applies op to a non-Error operand.
func unary(op Op, v Value) (Value, *Error) {
	switch {
	case op == OpNeg && v.Kind == KindInteger:
		return checked(Integer(new(big.Int).Neg(v.num)))

	case op == OpNot && v.Kind == KindBoolean:
		return Boolean(!v.flag), nil

	default:
		return Value{}, ErrOperandType.Wrapf("%s%s", op, v.Kind)
	}
}

// additive implements + and -.
//
// Integers add numerically. Adding an integer to an address moves it by that
// many addresses; adding an integer to a network moves it by that many blocks
// of its own size. Subtracting two addresses yields their distance.
func additive(op Op, l, r Value) (Value, *Error) {
	if err := sameFamily(l, r); err != nil {
		return Value{}, err
	}

	switch {
	case l.Kind == KindInteger && r.Kind == KindInteger:
		return checked(Integer(combine(op, l.num, r.num)))

	case l.Kind == KindAddress && r.Kind == KindInteger:
		return shiftAddress(op, l, r.num)

	case l.Kind == KindInteger && r.Kind == KindAddress && op == OpAdd:
		return shiftAddress(op, r, l.num)

	case l.Kind == KindNetwork && r.Kind == KindInteger:
		return shiftNetwork(op, l, r.num)

	case l.Kind == KindInteger && r.Kind == KindNetwork && op == OpAdd:
		return shiftNetwork(op, r, l.num)

	case l.Kind == KindAddress && r.Kind == KindAddress && op == OpSub:
		return checked(Integer(new(big.Int).Sub(l.num, r.num)))

	default:
		return Value{}, operandError(op, l, r)
	}
}

func combine(op Op, a, b *big.Int) *big.Int {
	if op == OpSub {
		return new(big.Int).Sub(a, b)
	}

	return new(big.Int).Add(a, b)
}

func shiftAddress(op Op, a Value, n *big.Int) (Value, *Error) {
	sum := combine(op, a.num, n)
	if !inFamily(a.family, sum) {
		return Value{}, ErrOverflow.Wrapf(
			"%s %s %s leaves the %s address space", a, op, n, a.family,
		)
	}

	return Value{Kind: KindAddress, family: a.family, num: sum}, nil
}

func shiftNetwork(op Op, net Value, n *big.Int) (Value, *Error) {
	step := new(big.Int).Mul(n, blockSize(net.family, net.prefix))

	base := combine(op, net.num, step)
	if !inFamily(net.family, base) {
		return Value{}, ErrOverflow.Wrapf(
			"%s %s %s leaves the %s address space", net, op, n, net.family,
		)
	}

	return checked(Network(net.family, base, net.prefix))
}

// bitwise implements &, |, and ^.
//
// On integers these are two's complement bitwise operations. On networks,
// & is the intersection of the two address ranges and | is the smallest
// network covering both.
func bitwise(op Op, l, r Value) (Value, *Error) {
	if err := sameFamily(l, r); err != nil {
		return Value{}, err
	}

	switch {
	case l.Kind == KindInteger && r.Kind == KindInteger:
		n := new(big.Int)

		switch op {
		case OpAnd:
			n.And(l.num, r.num)
		case OpOr:
			n.Or(l.num, r.num)
		default:
			n.Xor(l.num, r.num)
		}

		return checked(Integer(n))

	case l.Kind == KindNetwork && r.Kind == KindNetwork && op == OpAnd:
		return intersect(l, r)

	case l.Kind == KindNetwork && r.Kind == KindNetwork && op == OpOr:
		return cover(l, r), nil

	default:
		return Value{}, operandError(op, l, r)
	}
}

// intersect returns the overlap of two networks. CIDR blocks either nest or
// are disjoint, so the overlap is always the smaller of the two.
func intersect(a, b Value) (Value, *Error) {
	switch {
	case subnetOf(a, b):
		return a, nil
	case subnetOf(b, a):
		return b, nil
	default:
		return Value{}, ErrNoOverlap.Wrapf("%s and %s", a, b)
	}
}

// cover returns the smallest network containing both a and b.
func cover(a, b Value) Value {
	prefix := min(a.prefix, b.prefix, commonPrefixLen(a.family, a.num, b.num))

	return Value{
		Kind:   KindNetwork,
		family: a.family,
		num:    maskHost(a.family, a.num, prefix),
		prefix: prefix,
	}
}

// subnetOf reports whether network a lies entirely within network b.
func subnetOf(a, b Value) bool {
	return a.prefix >= b.prefix &&
		maskHost(b.family, a.num, b.prefix).Cmp(b.num) == 0
}

// compare implements the equality and ordering operators. Addresses and
// networks order by base address, then networks by prefix length.
func compare(op Op, l, r Value) (Value, *Error) {
	if l.Kind != r.Kind {
		return Value{}, operandError(op, l, r)
	}

	if err := sameFamily(l, r); err != nil {
		return Value{}, err
	}

	var c int

	switch l.Kind {
	case KindInteger, KindAddress:
		c = l.num.Cmp(r.num)

	case KindNetwork:
		c = l.num.Cmp(r.num)
		if c == 0 {
			c = cmpInt(l.prefix, r.prefix)
		}

	case KindBoolean:
		if op != OpEQ && op != OpNE {
			return Value{}, operandError(op, l, r)
		}

		if l.flag != r.flag {
			c = 1
		}

	default:
		return Value{}, operandError(op, l, r)
	}

	switch op {
	case OpEQ:
		return Boolean(c == 0), nil
	case OpNE:
		return Boolean(c != 0), nil
	case OpLT:
		return Boolean(c < 0), nil
	case OpLE:
		return Boolean(c <= 0), nil
	case OpGT:
		return Boolean(c > 0), nil
	default:
		return Boolean(c >= 0), nil
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// contains implements the in operator: an address or network on the left,
// a network on the right.
func contains(l, r Value) (Value, *Error) {
	if r.Kind != KindNetwork ||
		(l.Kind != KindAddress && l.Kind != KindNetwork) {
		return Value{}, operandError(OpIn, l, r)
	}

	if err := sameFamily(l, r); err != nil {
		return Value{}, err
	}

	if l.Kind == KindNetwork {
		return Boolean(subnetOf(l, r)), nil
	}

	return Boolean(maskHost(r.family, l.num, r.prefix).Cmp(r.num) == 0), nil
}

// sameFamily reports a TypeError when both operands carry an address family
// and the families differ.
func sameFamily(l, r Value) *Error {
	if l.family == FamilyNone || r.family == FamilyNone || l.family == r.family {
		return nil
	}

	return ErrMixedFamily.Wrapf("%s and %s", l.family, r.family)
}

func operandError(op Op, l, r Value) *Error {
	return ErrOperandType.Wrapf("%s %s %s", l.Kind, op, r.Kind)
}

// checked splits a constructed value into its value and error parts.
func checked(v Value) (Value, *Error) {
	if v.Kind == KindError {
		return Value{}, v.err
	}

	return v, nil
}
