// SPDX-License-Identifier: MIT

package ipradix

// tnode is a node of the binary path-compressed trie. Branch points
// created by path compression carry no item and are spliced out again
// as soon as they lose a child (glue nodes, as in a classic PATRICIA
// tree over CIDR prefixes).
type tnode struct {
	prefix Prefix // always masked
	item   *Node  // nil for glue nodes
	child  [2]*tnode
}

// tree is one address family of the store. The zero value is an empty
// tree. All prefixes passed in are already masked and of this tree's
// family.
type tree struct {
	root *tnode
	size int // stored items, glue nodes not counted
}

// insert returns the item stored at pfx, creating it if necessary.
// Existing items are returned unchanged.
func (t *tree) insert(pfx Prefix) *Node {
	root, item, created := insertRec(t.root, pfx)
	t.root = root
	if created {
		t.size++
	}
	return item
}

func insertRec(cur *tnode, pfx Prefix) (_ *tnode, item *Node, created bool) {
	if cur == nil {
		item = newNode(pfx)
		return &tnode{prefix: pfx, item: item}, item, true
	}

	c := commonBits(cur.prefix.Addr(), pfx.Addr(), min(cur.prefix.Bits(), pfx.Bits()))
	switch {
	case c == cur.prefix.Bits() && c == pfx.Bits():
		// same position, maybe a glue node to fill
		if cur.item == nil {
			cur.item = newNode(pfx)
			return cur, cur.item, true
		}
		return cur, cur.item, false

	case c == cur.prefix.Bits():
		// pfx lies below cur
		b := bitAt(pfx.Addr(), c)
		cur.child[b], item, created = insertRec(cur.child[b], pfx)
		return cur, item, created

	case c == pfx.Bits():
		// cur lies below pfx, pfx becomes the new inner node
		item = newNode(pfx)
		up := &tnode{prefix: pfx, item: item}
		up.child[bitAt(cur.prefix.Addr(), c)] = cur
		return up, item, true

	default:
		// paths diverge before either prefix ends, split with glue
		item = newNode(pfx)
		glue := &tnode{prefix: truncated(pfx, c)}
		glue.child[bitAt(pfx.Addr(), c)] = &tnode{prefix: pfx, item: item}
		glue.child[bitAt(cur.prefix.Addr(), c)] = cur
		return glue, item, true
	}
}

// remove deletes the item stored at pfx and prunes now useless glue
// nodes. It reports whether an item was removed.
func (t *tree) remove(pfx Prefix) bool {
	root, ok := removeRec(t.root, pfx)
	if ok {
		t.root = root
		t.size--
	}
	return ok
}

func removeRec(cur *tnode, pfx Prefix) (*tnode, bool) {
	switch {
	case cur == nil:
		return nil, false

	case cur.prefix == pfx:
		if cur.item == nil {
			return cur, false
		}
		cur.item = nil
		return pruned(cur), true

	case cur.prefix.Bits() >= pfx.Bits():
		// the walk passed pfx's position
		return cur, false

	case !cur.prefix.ContainsPrefix(pfx):
		return cur, false
	}

	b := bitAt(pfx.Addr(), cur.prefix.Bits())
	child, ok := removeRec(cur.child[b], pfx)
	if !ok {
		return cur, false
	}
	cur.child[b] = child
	return pruned(cur), true
}

// pruned splices out empty or one-armed glue nodes.
func pruned(cur *tnode) *tnode {
	if cur.item != nil {
		return cur
	}
	switch {
	case cur.child[0] == nil && cur.child[1] == nil:
		return nil
	case cur.child[0] == nil:
		return cur.child[1]
	case cur.child[1] == nil:
		return cur.child[0]
	}
	return cur
}

// exact returns the item stored at pfx, or nil.
func (t *tree) exact(pfx Prefix) *Node {
	for cur := t.root; cur != nil; {
		switch {
		case cur.prefix == pfx:
			return cur.item
		case cur.prefix.Bits() >= pfx.Bits():
			return nil
		case !cur.prefix.ContainsPrefix(pfx):
			return nil
		}
		cur = cur.child[bitAt(pfx.Addr(), cur.prefix.Bits())]
	}
	return nil
}

// covering walks the path from the root towards pfx and yields every
// stored item whose prefix covers pfx, in ascending prefix length.
// Covering prefixes of a fixed target form a chain, at most one per
// length, so there are no ties to break.
func (t *tree) covering(pfx Prefix, yield func(*Node) bool) {
	for cur := t.root; cur != nil; {
		if cur.prefix.Bits() > pfx.Bits() || !cur.prefix.ContainsPrefix(pfx) {
			return
		}
		if cur.item != nil && !yield(cur.item) {
			return
		}
		if cur.prefix.Bits() == pfx.Bits() {
			return
		}
		cur = cur.child[bitAt(pfx.Addr(), cur.prefix.Bits())]
	}
}

// covered yields every stored item whose prefix is covered by pfx, in
// no particular order.
func (t *tree) covered(pfx Prefix, yield func(*Node) bool) {
	// descend to the subtree holding everything at least as specific
	cur := t.root
	for cur != nil && cur.prefix.Bits() < pfx.Bits() {
		if !cur.prefix.ContainsPrefix(pfx) {
			return
		}
		cur = cur.child[bitAt(pfx.Addr(), cur.prefix.Bits())]
	}
	coveredRec(cur, pfx, yield)
}

func coveredRec(cur *tnode, pfx Prefix, yield func(*Node) bool) bool {
	if cur == nil {
		return true
	}
	// the subtree root can still diverge from pfx, check per item
	if cur.item != nil && pfx.ContainsPrefix(cur.prefix) {
		if !yield(cur.item) {
			return false
		}
	}
	return coveredRec(cur.child[0], pfx, yield) &&
		coveredRec(cur.child[1], pfx, yield)
}

// all yields every stored item in natural CIDR sort order: the
// pre-order walk visits covering prefixes before covered ones and the
// zero branch before the one branch.
func (t *tree) all(yield func(*Node) bool) bool {
	return allRec(t.root, yield)
}

func allRec(cur *tnode, yield func(*Node) bool) bool {
	if cur == nil {
		return true
	}
	if cur.item != nil && !yield(cur.item) {
		return false
	}
	return allRec(cur.child[0], yield) && allRec(cur.child[1], yield)
}

// directItems returns the topmost item-bearing trie nodes of the
// subtree, the roots of the coverage hierarchy below cur.
func directItems(cur *tnode) []*tnode {
	if cur == nil {
		return nil
	}
	if cur.item != nil {
		return []*tnode{cur}
	}
	return append(directItems(cur.child[0]), directItems(cur.child[1])...)
}
