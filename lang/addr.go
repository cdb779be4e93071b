package lang

import (
	"math/big"
	"net/netip"
	"strconv"
	"strings"
)

// Family is an IP address family.
type Family int

const (
	FamilyNone Family = 0
	FamilyV4   Family = 4
	FamilyV6   Family = 6
)

// Bits returns the address width of the family.
func (f Family) Bits() int {
	switch f {
	case FamilyV4:
		return 32
	case FamilyV6:
		return 128
	default:
		return 0
	}
}

// String returns the conventional family name.
func (f Family) String() string {
	switch f {
	case FamilyV4:
		return "IPv4"
	case FamilyV6:
		return "IPv6"
	default:
		return "none"
	}
}

// Numeric limits. These are never mutated; arithmetic always allocates.
var (
	one        = big.NewInt(1)
	maxAddrV4  = new(big.Int).Sub(new(big.Int).Lsh(one, 32), one)
	maxAddrV6  = new(big.Int).Sub(new(big.Int).Lsh(one, 128), one)
	maxInteger = new(big.Int).Sub(new(big.Int).Lsh(one, 127), one)
	minInteger = new(big.Int).Neg(new(big.Int).Lsh(one, 127))
)

// maxAddr returns the largest numeric address of the family.
func maxAddr(f Family) *big.Int {
	if f == FamilyV4 {
		return maxAddrV4
	}

	return maxAddrV6
}

// inFamily reports whether n is a valid numeric address of the family.
func inFamily(f Family, n *big.Int) bool {
	return n.Sign() >= 0 && n.Cmp(maxAddr(f)) <= 0
}

// inIntegerRange reports whether n fits a signed 128-bit integer.
func inIntegerRange(n *big.Int) bool {
	return n.Cmp(minInteger) >= 0 && n.Cmp(maxInteger) <= 0
}

// hostBits returns the number of bits not covered by prefix.
func hostBits(f Family, prefix int) uint {
	return uint(f.Bits() - prefix)
}

// blockSize returns the number of addresses in a network of the given prefix.
func blockSize(f Family, prefix int) *big.Int {
	return new(big.Int).Lsh(one, hostBits(f, prefix))
}

// maskHost returns n with its host bits under prefix cleared.
func maskHost(f Family, n *big.Int, prefix int) *big.Int {
	h := hostBits(f, prefix)

	return new(big.Int).Lsh(new(big.Int).Rsh(n, h), h)
}

// commonPrefixLen returns the number of leading bits shared by a and b.
func commonPrefixLen(f Family, a, b *big.Int) int {
	diff := new(big.Int).Xor(a, b)

	return f.Bits() - diff.BitLen()
}

// addrToInt converts a parsed address to its family and numeric value.
func addrToInt(a netip.Addr) (Family, *big.Int) {
	if a.Is4() {
		b := a.As4()

		return FamilyV4, new(big.Int).SetBytes(b[:])
	}

	b := a.As16()

	return FamilyV6, new(big.Int).SetBytes(b[:])
}

// intToAddr converts a numeric address of the family to its netip form.
func intToAddr(f Family, n *big.Int) netip.Addr {
	if f == FamilyV4 {
		var b [4]byte

		n.FillBytes(b[:])

		return netip.AddrFrom4(b)
	}

	var b [16]byte

	n.FillBytes(b[:])

	return netip.AddrFrom16(b)
}

// parseAddress converts an address literal to a Value.
func parseAddress(text string) Value {
	a, err := netip.ParseAddr(text)
	if err != nil || a.Zone() != "" {
		return errorValue(ErrMalformedAddress.Wrapf("%q", text))
	}

	f, n := addrToInt(a)

	return Value{Kind: KindAddress, family: f, num: n}
}

// parseNetwork converts a CIDR literal to a Value. Host bits set in the
// literal's address are cleared.
func parseNetwork(text string) Value {
	addrText, bitsText, ok := strings.Cut(text, "/")
	if !ok {
		return errorValue(ErrMalformedNetwork.Wrapf("%q", text))
	}

	addr := parseAddress(addrText)
	if addr.Kind == KindError {
		return addr
	}

	prefix, err := strconv.Atoi(bitsText)
	if err != nil || prefix < 0 || prefix > addr.family.Bits() {
		return errorValue(ErrPrefixRange.Wrapf(
			"/%s is not within [0, %d] for %s",
			bitsText, addr.family.Bits(), addr.family,
		))
	}

	return Network(addr.family, addr.num, prefix)
}
