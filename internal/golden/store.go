// SPDX-License-Identifier: MIT

// Package golden holds a simple and slow prefix store, implemented as
// a flat slice of prefixes, as a reference the trie-backed store is
// tested against.
package golden

import (
	"cmp"
	"net/netip"
	"slices"
)

// Store is a flat slice of masked prefixes.
type Store []netip.Prefix

// Insert adds pfx, de-duplicating on the masked form.
func (g *Store) Insert(pfx netip.Prefix) {
	pfx = pfx.Masked()
	if slices.Contains(*g, pfx) {
		return
	}
	*g = append(*g, pfx)
}

// Delete removes pfx and reports whether it was present.
func (g *Store) Delete(pfx netip.Prefix) bool {
	pfx = pfx.Masked()
	for i, item := range *g {
		if item == pfx {
			*g = slices.Delete(*g, i, i+1)
			return true
		}
	}
	return false
}

// Get reports whether pfx is present.
func (g Store) Get(pfx netip.Prefix) bool {
	return slices.Contains(g, pfx.Masked())
}

// covers reports whether a covers b, same family, a at most as
// specific and containing b's address.
func covers(a, b netip.Prefix) bool {
	return a.Bits() <= b.Bits() && a.Contains(b.Addr())
}

// SearchBest returns the longest stored prefix covering pfx.
func (g Store) SearchBest(pfx netip.Prefix) (best netip.Prefix, ok bool) {
	pfx = pfx.Masked()
	bestLen := -1

	for _, item := range g {
		if covers(item, pfx) && item.Bits() > bestLen {
			best = item
			ok = true
			bestLen = item.Bits()
		}
	}
	return best, ok
}

// SearchWorst returns the shortest stored prefix covering pfx.
func (g Store) SearchWorst(pfx netip.Prefix) (worst netip.Prefix, ok bool) {
	pfx = pfx.Masked()
	worstLen := 129

	for _, item := range g {
		if covers(item, pfx) && item.Bits() < worstLen {
			worst = item
			ok = true
			worstLen = item.Bits()
		}
	}
	return worst, ok
}

// SearchCovered returns all stored prefixes covered by pfx, in
// descending prefix length, equal lengths in ascending address order.
func (g Store) SearchCovered(pfx netip.Prefix) []netip.Prefix {
	pfx = pfx.Masked()
	var result []netip.Prefix

	for _, item := range g {
		if covers(pfx, item) {
			result = append(result, item)
		}
	}
	slices.SortFunc(result, cmpCoverOrder)
	return result
}

// SearchCovering returns all stored prefixes covering pfx, in
// descending prefix length.
func (g Store) SearchCovering(pfx netip.Prefix) []netip.Prefix {
	pfx = pfx.Masked()
	var result []netip.Prefix

	for _, item := range g {
		if covers(item, pfx) {
			result = append(result, item)
		}
	}
	slices.SortFunc(result, cmpCoverOrder)
	return result
}

// AllSorted returns all stored prefixes in natural CIDR sort order.
func (g Store) AllSorted() []netip.Prefix {
	result := slices.Clone(g)
	slices.SortFunc(result, CmpPrefix)
	return result
}

// cmpCoverOrder sorts descending by prefix length, ascending by
// address within one length.
func cmpCoverOrder(a, b netip.Prefix) int {
	if c := cmp.Compare(b.Bits(), a.Bits()); c != 0 {
		return c
	}
	return a.Addr().Compare(b.Addr())
}

// CmpPrefix, compare func for prefix sort,
// all prefixes are already normalized.
func CmpPrefix(a, b netip.Prefix) int {
	if c := a.Addr().Compare(b.Addr()); c != 0 {
		return c
	}
	return cmp.Compare(a.Bits(), b.Bits())
}
