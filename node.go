// SPDX-License-Identifier: MIT

package ipradix

// Node is a stored prefix with its payload. A node is created exactly
// once per canonical prefix and keeps its identity for its lifetime:
// every handle returned by the store points at the same node, payload
// mutations through any handle are visible through all others.
//
// The payload is a string-keyed map of arbitrary values, empty from
// creation. Neither the node nor its payload is synchronized, callers
// sharing handles across goroutines must lock externally.
type Node struct {
	prefix Prefix // canonical, fixed for the node's lifetime
	data   map[string]any
}

func newNode(prefix Prefix) *Node {
	return &Node{prefix: prefix, data: map[string]any{}}
}

// Prefix returns the canonical prefix the node was created for.
func (n *Node) Prefix() Prefix { return n.prefix }

// Key returns the canonical "address/length" key of the node.
func (n *Node) Key() string { return n.prefix.String() }

// String implements the [fmt.Stringer] interface, same as [Node.Key].
func (n *Node) String() string { return n.Key() }

// Network returns the textual network address.
func (n *Node) Network() string { return n.prefix.Network() }

// Bits returns the prefix length.
func (n *Node) Bits() int { return n.prefix.Bits() }

// Family returns the address family.
func (n *Node) Family() Family { return n.prefix.Family() }

// Packed returns the network address bytes in network byte order.
func (n *Node) Packed() []byte { return n.prefix.Packed() }

// Data returns the live payload map, not a copy. Entries added or
// removed on the returned map are visible to every other handle.
func (n *Node) Data() map[string]any { return n.data }

// SetData replaces the whole payload. A nil map resets the payload to
// empty, Data never returns nil.
func (n *Node) SetData(data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	n.data = data
}

// Get returns the payload entry for key and whether it is present.
func (n *Node) Get(key string) (any, bool) {
	v, ok := n.data[key]
	return v, ok
}

// Set stores a single payload entry.
func (n *Node) Set(key string, value any) { n.data[key] = value }

// Delete removes a single payload entry.
func (n *Node) Delete(key string) { delete(n.data, key) }
