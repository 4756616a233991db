// SPDX-License-Identifier: MIT

package ipradix

import "errors"

// Errors reported by prefix resolution and store operations.
// All of them signal caller mistakes, nothing is transient or retried.
// Wrapped errors carry context, test with [errors.Is].
var (
	// ErrInvalidAddress, the textual address does not parse for its
	// family, or packed bytes are not exactly 4 or 16 bytes long.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidPrefixLength, the prefix length is negative, not an
	// integer or exceeds the family bit width (32 for v4, 128 for v6).
	ErrInvalidPrefixLength = errors.New("invalid prefix length")

	// ErrAmbiguousArguments, the combination of network/bits/packed
	// inputs matches none of the three accepted shapes, see [Netspec].
	ErrAmbiguousArguments = errors.New("ambiguous arguments")

	// ErrNotFound, delete targets a canonical key absent from the store.
	ErrNotFound = errors.New("prefix not found")
)
