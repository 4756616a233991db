// SPDX-License-Identifier: MIT

// Package ipradix provides a keyed store for IPv4 and IPv6 network
// prefixes with attached per-prefix payloads.
//
// Prefixes are registered by CIDR text, by address plus explicit prefix
// length, or by packed address bytes plus prefix length. The store
// answers exact-match, longest-prefix-match (best), shortest-prefix-match
// (worst) and set-containment queries (covered and covering prefixes).
//
// Internally each address family is held in a binary path-compressed
// trie keyed by address bits, so point lookups cost O(address width)
// instead of a scan over all stored prefixes.
//
// This is the class of data structure used in routing tables, IP
// allow/block lists and ACL engines.
package ipradix
