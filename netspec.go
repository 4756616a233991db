// SPDX-License-Identifier: MIT

package ipradix

import (
	"fmt"
	"strings"
)

// NoBits marks the prefix length of a [Netspec] as not given. A bare
// address or packed bytes without an explicit length designate a host
// route with the full width of the address family.
const NoBits = -1

// Netspec designates a prefix by exactly one of three input shapes:
//
//   - Network holds CIDR text "addr/len" or a bare address, Packed nil
//   - Network holds a bare address, Bits the explicit prefix length
//   - Packed holds 4 or 16 address bytes, Bits the explicit prefix length
//
// Any other combination fails with [ErrAmbiguousArguments]. When
// building a Netspec literal by hand, set Bits to [NoBits] unless an
// explicit length is intended, the zero value 0 means a /0 prefix.
// The constructors [CIDR], [AddrBits] and [PackedBits] get this right.
type Netspec struct {
	Network string
	Bits    int
	Packed  []byte
}

// CIDR designates a prefix by "addr/len" text or a bare address.
func CIDR(s string) Netspec { return Netspec{Network: s, Bits: NoBits} }

// AddrBits designates a prefix by address text and explicit length.
func AddrBits(addr string, bits int) Netspec {
	return Netspec{Network: addr, Bits: bits}
}

// PackedBits designates a prefix by packed address bytes and explicit
// length. Pass [NoBits] for a host route.
func PackedBits(packed []byte, bits int) Netspec {
	return Netspec{Packed: packed, Bits: bits}
}

// resolve returns the designated prefix, not yet normalized.
func (q Netspec) resolve() (Prefix, error) {
	switch {
	case q.Network != "" && q.Packed != nil:
		return Prefix{}, fmt.Errorf("%w: network and packed are mutually exclusive", ErrAmbiguousArguments)
	case q.Network == "" && q.Packed == nil:
		return Prefix{}, fmt.Errorf("%w: one of network or packed is required", ErrAmbiguousArguments)
	case q.Bits < NoBits:
		return Prefix{}, fmt.Errorf("%w: %d", ErrInvalidPrefixLength, q.Bits)
	}

	if q.Packed != nil {
		bits := q.Bits
		if bits == NoBits {
			switch len(q.Packed) {
			case 4:
				bits = 32
			case 16:
				bits = 128
			default:
				return Prefix{}, fmt.Errorf("%w: packed address must be 4 or 16 bytes, got %d", ErrInvalidAddress, len(q.Packed))
			}
		}
		return PrefixFromPacked(q.Packed, bits)
	}

	if strings.Contains(q.Network, "/") {
		if q.Bits != NoBits {
			return Prefix{}, fmt.Errorf("%w: prefix length specified twice", ErrAmbiguousArguments)
		}
		return ParsePrefix(q.Network)
	}

	if q.Bits == NoBits {
		// bare address, host route
		return ParsePrefix(q.Network)
	}
	return PrefixFromAddr(q.Network, q.Bits)
}
