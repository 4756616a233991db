// SPDX-License-Identifier: MIT

package ipradix

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Store is a keyed collection of prefix [Node]s for both address
// families. The zero value is ready to use.
//
// Every operation resolves its [Netspec] argument to a prefix,
// normalizes it and uses the canonical "address/length" string as the
// node key, so at most one node exists per canonical prefix.
//
// A Store is not synchronized. Share it across goroutines only under
// external mutual exclusion.
type Store struct {
	tree4 tree
	tree6 tree
}

func (s *Store) treeOf(f Family) *tree {
	if f == FamilyIPv4 {
		return &s.tree4
	}
	return &s.tree6
}

// Add resolves q and returns the node stored at its canonical prefix,
// creating one with an empty payload if none exists. Add is
// idempotent, re-adding a prefix returns the existing node with its
// payload untouched.
func (s *Store) Add(q Netspec) (*Node, error) {
	pfx, err := q.resolve()
	if err != nil {
		return nil, err
	}
	pfx = pfx.Masked()
	return s.treeOf(pfx.Family()).insert(pfx), nil
}

// Delete removes the node stored at q's canonical prefix. It fails
// with [ErrNotFound] if no such node exists. Handles a caller already
// holds stay usable, but the node is unreachable via the store and
// its payload mutations are orphaned.
func (s *Store) Delete(q Netspec) error {
	pfx, err := q.resolve()
	if err != nil {
		return err
	}
	pfx = pfx.Masked()
	if !s.treeOf(pfx.Family()).remove(pfx) {
		return fmt.Errorf("%w: %s", ErrNotFound, pfx)
	}
	return nil
}

// SearchExact returns the node stored at q's canonical prefix, or nil
// if there is none. It never creates a node.
func (s *Store) SearchExact(q Netspec) (*Node, error) {
	pfx, err := q.resolve()
	if err != nil {
		return nil, err
	}
	pfx = pfx.Masked()
	return s.treeOf(pfx.Family()).exact(pfx), nil
}

// SearchBest returns the most specific stored node covering the
// target, the longest-prefix match, or nil if nothing covers it.
// A bare address or packed bytes without explicit length designate a
// host-width target, CIDR text a whole-prefix target.
func (s *Store) SearchBest(q Netspec) (*Node, error) {
	pfx, err := q.resolve()
	if err != nil {
		return nil, err
	}
	pfx = pfx.Masked()

	var best *Node
	s.treeOf(pfx.Family()).covering(pfx, func(n *Node) bool {
		best = n
		return true
	})
	return best, nil
}

// SearchWorst returns the least specific stored node covering the
// target, the shortest-prefix match, or nil if nothing covers it.
func (s *Store) SearchWorst(q Netspec) (*Node, error) {
	pfx, err := q.resolve()
	if err != nil {
		return nil, err
	}
	pfx = pfx.Masked()

	var worst *Node
	s.treeOf(pfx.Family()).covering(pfx, func(n *Node) bool {
		worst = n
		return false
	})
	return worst, nil
}

// SearchCovered returns every stored node whose prefix the target
// covers, the target itself included if stored. The result is ordered
// by descending prefix length, most specific first, equal lengths by
// ascending address.
func (s *Store) SearchCovered(q Netspec) ([]*Node, error) {
	pfx, err := q.resolve()
	if err != nil {
		return nil, err
	}
	pfx = pfx.Masked()

	var result []*Node
	s.treeOf(pfx.Family()).covered(pfx, func(n *Node) bool {
		result = append(result, n)
		return true
	})

	slices.SortFunc(result, func(a, b *Node) int {
		if c := b.Bits() - a.Bits(); c != 0 {
			return c
		}
		return cmpPrefix(a.prefix, b.prefix)
	})
	return result, nil
}

// SearchCovering returns every stored node whose prefix covers the
// target, the target itself included if stored. The result is ordered
// by descending prefix length, the most specific covering prefix
// first.
func (s *Store) SearchCovering(q Netspec) ([]*Node, error) {
	pfx, err := q.resolve()
	if err != nil {
		return nil, err
	}
	pfx = pfx.Masked()

	var result []*Node
	s.treeOf(pfx.Family()).covering(pfx, func(n *Node) bool {
		result = append(result, n)
		return true
	})

	// the walk yields ascending prefix lengths
	slices.Reverse(result)
	return result, nil
}

// Parent returns the most specific stored node covering n without
// being n itself, or nil. The relation is derived on demand, nothing
// is stored on the node.
func (s *Store) Parent(n *Node) *Node {
	if n == nil || n.Bits() == 0 {
		return nil
	}

	var parent *Node
	s.treeOf(n.Family()).covering(truncated(n.prefix, n.Bits()-1), func(m *Node) bool {
		parent = m
		return true
	})
	return parent
}

// Nodes returns all stored nodes, v4 before v6, each family in natural
// CIDR sort order.
func (s *Store) Nodes() []*Node {
	result := make([]*Node, 0, s.Size())
	collect := func(n *Node) bool {
		result = append(result, n)
		return true
	}
	s.tree4.all(collect)
	s.tree6.all(collect)
	return result
}

// Keys returns the canonical keys of all stored nodes, in the same
// order as [Store.Nodes].
func (s *Store) Keys() []string {
	keys := make([]string, 0, s.Size())
	collect := func(n *Node) bool {
		keys = append(keys, n.Key())
		return true
	}
	s.tree4.all(collect)
	s.tree6.all(collect)
	return keys
}

// Size returns the number of stored nodes.
func (s *Store) Size() int { return s.tree4.size + s.tree6.size }

// Size4 returns the number of stored IPv4 nodes.
func (s *Store) Size4() int { return s.tree4.size }

// Size6 returns the number of stored IPv6 nodes.
func (s *Store) Size6() int { return s.tree6.size }

// All returns an iterator over all stored nodes in ascending canonical
// key order, plain lexicographic string order for determinism.
//
// The sequence is a snapshot of the membership at the time All is
// called: nodes added or deleted afterwards do not alter it, and
// ranging over the sequence again replays the same snapshot. Payload
// mutations stay visible through the yielded handles.
func (s *Store) All() iter.Seq[*Node] {
	snapshot := s.Nodes()
	slices.SortFunc(snapshot, func(a, b *Node) int {
		return strings.Compare(a.Key(), b.Key())
	})

	return func(yield func(*Node) bool) {
		for _, n := range snapshot {
			if !yield(n) {
				return
			}
		}
	}
}
