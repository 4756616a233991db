// SPDX-License-Identifier: MIT

package ipradix

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// MarshalText implements the [encoding.TextMarshaler] interface,
// just a wrapper for [Store.Fprint].
func (s *Store) MarshalText() ([]byte, error) {
	w := new(bytes.Buffer)
	if err := s.Fprint(w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// String returns a hierarchical tree diagram of the stored CIDRs as
// string, just a wrapper for [Store.Fprint].
// If Fprint returns an error, String panics.
func (s *Store) String() string {
	w := new(strings.Builder)
	if err := s.Fprint(w); err != nil {
		panic(err)
	}
	return w.String()
}

// Fprint writes a hierarchical tree diagram of the stored CIDRs with
// their payloads to w.
//
// The order from top to bottom is in ascending order of the prefix
// address and the subtree structure is determined by the CIDRs
// coverage.
//
//	▼
//	├─ 10.0.0.0/8 (map[name:corp])
//	│  └─ 10.1.0.0/16 (map[name:lab])
//	└─ 192.168.1.0/24 (map[name:dmz])
//	▼
//	└─ 2001:db8::/32 (map[name:v6lab])
func (s *Store) Fprint(w io.Writer) error {
	if err := fprintTree(w, &s.tree4); err != nil {
		return err
	}
	return fprintTree(w, &s.tree6)
}

func fprintTree(w io.Writer, t *tree) error {
	if t.size == 0 {
		return nil
	}
	if _, err := fmt.Fprint(w, "▼\n"); err != nil {
		return err
	}
	return fprintRec(w, directItems(t.root), "")
}

// fprintRec prints the direct kids of one coverage level and descends.
func fprintRec(w io.Writer, kids []*tnode, pad string) error {
	// symbols used in the tree
	glyphe := "├─ "
	spacer := "│  "

	for i, kid := range kids {
		// treat the last kid special
		if i == len(kids)-1 {
			glyphe = "└─ "
			spacer = "   "
		}

		if _, err := fmt.Fprintf(w, "%s%s (%v)\n", pad+glyphe, kid.prefix, kid.item.data); err != nil {
			return err
		}

		// the item's direct kids are the topmost items below it
		next := append(directItems(kid.child[0]), directItems(kid.child[1])...)
		if err := fprintRec(w, next, pad+spacer); err != nil {
			return err
		}
	}
	return nil
}
