// SPDX-License-Identifier: MIT

package ipradix

import (
	"errors"
	"testing"
)

func TestNetspecResolve(t *testing.T) {
	t.Parallel()

	v6Packed := make([]byte, 16)
	v6Packed[0], v6Packed[1], v6Packed[2], v6Packed[3] = 0x20, 0x01, 0x0d, 0xb8

	tests := []struct {
		name    string
		spec    Netspec
		want    string
		wantErr error
	}{
		{name: "cidr", spec: CIDR("10.0.0.0/8"), want: "10.0.0.0/8"},
		{name: "bare address is host route", spec: CIDR("10.0.0.1"), want: "10.0.0.1/32"},
		{name: "bare v6 address is host route", spec: CIDR("2001:db8::1"), want: "2001:db8::1/128"},
		{name: "addr and bits", spec: AddrBits("10.0.0.0", 8), want: "10.0.0.0/8"},
		{name: "addr and zero bits", spec: AddrBits("10.0.0.0", 0), want: "10.0.0.0/0"},
		{name: "packed and bits", spec: PackedBits([]byte{10, 0, 0, 0}, 8), want: "10.0.0.0/8"},
		{name: "packed v4 default length", spec: PackedBits([]byte{10, 0, 0, 1}, NoBits), want: "10.0.0.1/32"},
		{name: "packed v6 default length", spec: PackedBits(v6Packed, NoBits), want: "2001:db8::/128"},
		{name: "packed v6 with bits", spec: PackedBits(v6Packed, 32), want: "2001:db8::/32"},

		{name: "zero value", spec: Netspec{}, wantErr: ErrAmbiguousArguments},
		{name: "neither network nor packed", spec: Netspec{Bits: 8}, wantErr: ErrAmbiguousArguments},
		{
			name:    "network and packed",
			spec:    Netspec{Network: "10.0.0.0/8", Bits: NoBits, Packed: []byte{10, 0, 0, 0}},
			wantErr: ErrAmbiguousArguments,
		},
		{
			name:    "length specified twice",
			spec:    Netspec{Network: "10.0.0.0/8", Bits: 8},
			wantErr: ErrAmbiguousArguments,
		},
		{name: "bits below the sentinel", spec: Netspec{Network: "10.0.0.0", Bits: -2}, wantErr: ErrInvalidPrefixLength},
		{name: "bits out of range", spec: AddrBits("10.0.0.0", 33), wantErr: ErrInvalidPrefixLength},
		{name: "bad address", spec: CIDR("10.0.0.256/8"), wantErr: ErrInvalidAddress},
		{name: "bad packed length", spec: PackedBits([]byte{10, 0, 0}, NoBits), wantErr: ErrInvalidAddress},
		{name: "bad packed length with bits", spec: PackedBits([]byte{10, 0, 0, 0, 0}, 8), wantErr: ErrInvalidAddress},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			pfx, err := tc.spec.resolve()

			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("resolve() error = %v, want %v", err, tc.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("resolve() unexpected error: %v", err)
			}
			if pfx.String() != tc.want {
				t.Errorf("resolve() = %s, want %s", pfx, tc.want)
			}
		})
	}
}
