// SPDX-License-Identifier: MIT

package ipradix

import (
	"fmt"
	"math/bits"
	"net/netip"
	"strconv"
	"strings"
)

// Family is the address family of a prefix.
// The values are the conventional AF_INET/AF_INET6 codes.
type Family int

const (
	FamilyIPv4 Family = 2  // AF_INET
	FamilyIPv6 Family = 10 // AF_INET6
)

func (f Family) String() string {
	switch f {
	case FamilyIPv4:
		return "ipv4"
	case FamilyIPv6:
		return "ipv6"
	}
	return "invalid family"
}

// Prefix is an immutable (address, prefix length) pair.
//
// The zero value is not a valid prefix. Prefixes constructed by the
// parse functions keep the address bits as given; [Prefix.Masked]
// returns the canonical form with the host bits cleared.
//
// 4-in-6 addresses (::ffff:10.0.0.1) stay IPv6: 16 packed bytes and
// prefix lengths up to /128, as inet_pton(AF_INET6) would yield them.
type Prefix struct {
	pfx netip.Prefix
}

// ParsePrefix parses "addr/len" in CIDR notation or a bare "addr",
// which is taken as a host route with the full width of its family.
//
// Zoned addresses (fe80::1%eth0) are rejected, the store keys on
// address bytes only.
func ParsePrefix(s string) (Prefix, error) {
	addrText, bitsText, hasLen := strings.Cut(s, "/")

	addr, err := parseAddr(addrText)
	if err != nil {
		return Prefix{}, err
	}

	if !hasLen {
		return Prefix{netip.PrefixFrom(addr, addr.BitLen())}, nil
	}

	bits, err := strconv.Atoi(bitsText)
	if err != nil {
		return Prefix{}, fmt.Errorf("%w: %q", ErrInvalidPrefixLength, bitsText)
	}

	return prefixFrom(addr, bits)
}

// PrefixFromAddr returns the prefix addrText/bits. The length is
// validated against the bit width of the address family, any
// out-of-range value is an error, never a panic.
func PrefixFromAddr(addrText string, bits int) (Prefix, error) {
	addr, err := parseAddr(addrText)
	if err != nil {
		return Prefix{}, err
	}
	return prefixFrom(addr, bits)
}

// PrefixFromPacked returns the prefix for packed address bytes in
// network byte order, 4 bytes for IPv4 or 16 bytes for IPv6.
func PrefixFromPacked(packed []byte, bits int) (Prefix, error) {
	addr, ok := netip.AddrFromSlice(packed)
	if !ok {
		return Prefix{}, fmt.Errorf("%w: packed address must be 4 or 16 bytes, got %d", ErrInvalidAddress, len(packed))
	}
	return prefixFrom(addr, bits)
}

func parseAddr(s string) (netip.Addr, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	if addr.Zone() != "" {
		return netip.Addr{}, fmt.Errorf("%w: %q has a zone", ErrInvalidAddress, s)
	}
	return addr, nil
}

func prefixFrom(addr netip.Addr, bits int) (Prefix, error) {
	if bits < 0 || bits > addr.BitLen() {
		return Prefix{}, fmt.Errorf("%w: %d out of range for %s", ErrInvalidPrefixLength, bits, familyOf(addr))
	}
	return Prefix{netip.PrefixFrom(addr, bits)}, nil
}

func familyOf(addr netip.Addr) Family {
	if addr.Is4() {
		return FamilyIPv4
	}
	return FamilyIPv6
}

// IsValid reports whether p is a constructed prefix, not the zero value.
func (p Prefix) IsValid() bool { return p.pfx.IsValid() }

// Addr returns the address part.
func (p Prefix) Addr() netip.Addr { return p.pfx.Addr() }

// Bits returns the prefix length.
func (p Prefix) Bits() int { return p.pfx.Bits() }

// Family returns the address family.
func (p Prefix) Family() Family { return familyOf(p.pfx.Addr()) }

// Network returns the textual form of the address part.
func (p Prefix) Network() string { return p.pfx.Addr().String() }

// Packed returns the address as 4 (v4) or 16 (v6) bytes in network
// byte order. The slice is a copy, the prefix stays immutable.
func (p Prefix) Packed() []byte {
	if p.pfx.Addr().Is4() {
		a4 := p.pfx.Addr().As4()
		return a4[:]
	}
	a16 := p.pfx.Addr().As16()
	return a16[:]
}

// Masked returns the canonical form of p with all address bits beyond
// the prefix length cleared.
func (p Prefix) Masked() Prefix { return Prefix{p.pfx.Masked()} }

// String returns the "address/length" form of p. For a masked prefix
// this is the canonical key.
func (p Prefix) String() string { return p.pfx.String() }

// Contains reports whether p matches addr on the top p.Bits() address
// bits. A /0 prefix contains every address of its family. Addresses of
// the other family are never contained, this is not an error.
func (p Prefix) Contains(addr netip.Addr) bool { return p.pfx.Contains(addr) }

// ContainsPrefix reports whether p covers other: p is at most as
// specific as other and other's address lies inside p.
//
// ContainsPrefix is a partial order over valid prefixes: reflexive,
// antisymmetric and transitive.
func (p Prefix) ContainsPrefix(other Prefix) bool {
	return p.pfx.Bits() <= other.pfx.Bits() && p.pfx.Contains(other.pfx.Addr())
}

// Overlaps reports whether p and other share any address, that is one
// of them covers the other.
func (p Prefix) Overlaps(other Prefix) bool { return p.pfx.Overlaps(other.pfx) }

// MarshalText implements the [encoding.TextMarshaler] interface.
func (p Prefix) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return []byte(""), nil
	}
	return []byte(p.pfx.String()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// It accepts the same forms as [ParsePrefix].
func (p *Prefix) UnmarshalText(text []byte) error {
	pfx, err := ParsePrefix(string(text))
	if err != nil {
		return err
	}
	*p = pfx
	return nil
}

// truncated returns p cut down and masked to the given length.
// The caller guarantees bits <= p.Bits().
func truncated(p Prefix, bits int) Prefix {
	return Prefix{netip.PrefixFrom(p.pfx.Addr(), bits).Masked()}
}

// commonBits returns the number of leading address bits a and b share,
// capped at maxBits. Both addresses are of the same family.
func commonBits(a, b netip.Addr, maxBits int) int {
	aa, bb := a.As16(), b.As16()

	// v4 lives in the low 4 bytes of the 16-byte form
	off := 0
	if a.Is4() {
		off = 12
	}

	n := 0
	for i := off; i < 16; i++ {
		if x := aa[i] ^ bb[i]; x != 0 {
			n += bits.LeadingZeros8(x)
			break
		}
		n += 8
	}

	return min(n, maxBits)
}

// bitAt returns address bit i, counted from the most significant bit.
func bitAt(a netip.Addr, i int) int {
	if a.Is4() {
		i += 96 // offset into the 16-byte form
	}
	a16 := a.As16()
	return int(a16[i>>3]>>(7-i&7)) & 1
}

// cmpPrefix orders prefixes in natural CIDR sort order,
// all prefixes are already normalized.
func cmpPrefix(a, b Prefix) int {
	if c := a.pfx.Addr().Compare(b.pfx.Addr()); c != 0 {
		return c
	}
	return a.pfx.Bits() - b.pfx.Bits()
}
