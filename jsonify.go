// SPDX-License-Identifier: MIT

package ipradix

import "encoding/json"

// DumpListNode contains CIDR, payload and covered subnets,
// representing the store in a sorted, recursive form, especially
// useful for serialization.
type DumpListNode struct {
	CIDR    Prefix         `json:"cidr"`
	Data    map[string]any `json:"data,omitempty"`
	Subnets []DumpListNode `json:"subnets,omitempty"`
}

// MarshalJSON dumps the store into two lists, for ipv4 and ipv6.
// Roots and subnets are arrays, not maps keyed by cidr, because the
// order matters.
func (s *Store) MarshalJSON() ([]byte, error) {
	result := struct {
		IPv4 []DumpListNode `json:"ipv4,omitempty"`
		IPv6 []DumpListNode `json:"ipv6,omitempty"`
	}{
		IPv4: s.DumpList(FamilyIPv4),
		IPv6: s.DumpList(FamilyIPv6),
	}
	return json.Marshal(result)
}

// DumpList dumps one address family into a list of the topmost stored
// prefixes and, recursively, the prefixes they cover.
func (s *Store) DumpList(f Family) []DumpListNode {
	return dumpListRec(directItems(s.treeOf(f).root))
}

func dumpListRec(kids []*tnode) []DumpListNode {
	if len(kids) == 0 {
		return nil
	}

	elements := make([]DumpListNode, 0, len(kids))
	for _, kid := range kids {
		elements = append(elements, DumpListNode{
			CIDR:    kid.prefix,
			Data:    kid.item.data,
			Subnets: dumpListRec(append(directItems(kid.child[0]), directItems(kid.child[1])...)),
		})
	}
	return elements
}
