// SPDX-License-Identifier: MIT

package ipradix_test

import (
	"encoding/binary"
	"math/rand"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ipradix/ipradix"
	"github.com/ipradix/ipradix/internal/golden"
)

func randomAddr4(rng *rand.Rand) netip.Addr {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], rng.Uint32())
	return netip.AddrFrom4(b)
}

func randomAddr6(rng *rand.Rand) netip.Addr {
	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], rng.Uint64())
	binary.BigEndian.PutUint64(b[8:], rng.Uint64())
	return netip.AddrFrom16(b)
}

// randomPrefixes returns n masked prefixes, mixed v4 and v6, duplicates
// possible.
func randomPrefixes(rng *rand.Rand, n int) []netip.Prefix {
	pfxs := make([]netip.Prefix, 0, n)
	for range n {
		if rng.Intn(2) == 0 {
			pfxs = append(pfxs, netip.PrefixFrom(randomAddr4(rng), rng.Intn(33)).Masked())
		} else {
			pfxs = append(pfxs, netip.PrefixFrom(randomAddr6(rng), rng.Intn(129)).Masked())
		}
	}
	return pfxs
}

func goldenKeys(pfxs []netip.Prefix) []string {
	var keys []string
	for _, pfx := range pfxs {
		keys = append(keys, pfx.String())
	}
	return keys
}

// checkAgainstGolden probes the trie-backed store and the flat
// reference with the same targets and compares every answer.
func checkAgainstGolden(t *testing.T, st *ipradix.Store, gold golden.Store, probes []netip.Prefix) {
	t.Helper()

	for _, probe := range probes {
		q := ipradix.CIDR(probe.String())

		node, err := st.SearchExact(q)
		require.NoError(t, err)
		if want := gold.Get(probe); want != (node != nil) {
			t.Fatalf("SearchExact(%s) = %v, golden = %v", probe, node, want)
		}

		node, err = st.SearchBest(q)
		require.NoError(t, err)
		if want, ok := gold.SearchBest(probe); ok != (node != nil) {
			t.Fatalf("SearchBest(%s) = %v, golden ok = %v", probe, node, ok)
		} else if ok && node.Key() != want.String() {
			t.Fatalf("SearchBest(%s) = %s, golden = %s", probe, node.Key(), want)
		}

		node, err = st.SearchWorst(q)
		require.NoError(t, err)
		if want, ok := gold.SearchWorst(probe); ok != (node != nil) {
			t.Fatalf("SearchWorst(%s) = %v, golden ok = %v", probe, node, ok)
		} else if ok && node.Key() != want.String() {
			t.Fatalf("SearchWorst(%s) = %s, golden = %s", probe, node.Key(), want)
		}

		covered, err := st.SearchCovered(q)
		require.NoError(t, err)
		require.Equal(t, goldenKeys(gold.SearchCovered(probe)), keysOf(covered),
			"SearchCovered(%s)", probe)

		covering, err := st.SearchCovering(q)
		require.NoError(t, err)
		require.Equal(t, goldenKeys(gold.SearchCovering(probe)), keysOf(covering),
			"SearchCovering(%s)", probe)
	}
}

func TestStoreMatchesGoldenReference(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))

	st := new(ipradix.Store)
	var gold golden.Store

	pfxs := randomPrefixes(rng, 500)
	for _, pfx := range pfxs {
		gold.Insert(pfx)
		_, err := st.Add(ipradix.CIDR(pfx.String()))
		require.NoError(t, err)
	}
	require.Equal(t, len(gold), st.Size())

	// stored prefixes, their covering truncations and fresh noise
	probes := append([]netip.Prefix{}, pfxs[:200]...)
	for _, pfx := range pfxs[:100] {
		probes = append(probes, netip.PrefixFrom(pfx.Addr(), rng.Intn(pfx.Bits()+1)).Masked())
	}
	probes = append(probes, randomPrefixes(rng, 200)...)

	checkAgainstGolden(t, st, gold, probes)

	// iteration order must agree with the sorted flat reference
	require.Equal(t, goldenKeys(gold.AllSorted()), st.Keys())

	// delete half and verify again
	for _, pfx := range pfxs[:len(pfxs)/2] {
		if gold.Delete(pfx) {
			require.NoError(t, st.Delete(ipradix.CIDR(pfx.String())))
		} else {
			require.ErrorIs(t, st.Delete(ipradix.CIDR(pfx.String())), ipradix.ErrNotFound)
		}
	}
	require.Equal(t, len(gold), st.Size())

	checkAgainstGolden(t, st, gold, probes)
	require.Equal(t, goldenKeys(gold.AllSorted()), st.Keys())
}
