/*
Package pathtree implements a lookup tree for values owning disjoint
subtrees of a path space.

Unlike a generic routing trie, an entry here claims the whole subtree at
and below its path. Inserting an entry whose path is an ancestor,
descendant, or duplicate of an existing entry fails, so that any path is
owned by at most one entry. Lookup finds the unique owning entry for a
path, if any.

Trees are not safe for concurrent mutation; callers that need lock-free
lookups build a new tree and swap it in atomically.
*/
package pathtree

import (
	"fmt"
	"strings"
)

type node struct {
	// static children keyed by the next path segment
	children map[string]*node

	// number of values stored in this subtree, including this node
	size int

	hasValue bool
	value    any

	// the full prefix string of the stored value, for error reporting
	prefix string
}

// Tree stores values associated to disjoint path subtree roots.
// The zero value is an empty tree ready for use.
type Tree node

// ConflictError is returned by Add when a prefix overlaps an existing
// entry. Overlap means ancestor, descendant or duplicate.
type ConflictError struct {
	// Prefix is the rejected prefix.
	Prefix string

	// Existing is the prefix of the entry it overlaps.
	Existing string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("prefix %s conflicts with registered prefix %s", e.Prefix, e.Existing)
}

// segments splits a prefix or path into its non-empty segments. The root
// path has none.
func segments(path string) []string {
	if path == "/" {
		return nil
	}

	return strings.Split(path[1:], "/")
}

// findValue returns the prefix of any value stored in the subtree of n.
func (n *node) findValue() string {
	if n.hasValue {
		return n.prefix
	}

	for _, c := range n.children {
		if c.size > 0 {
			return c.findValue()
		}
	}

	return ""
}

// Add stores a value at the given subtree root. The prefix must be a
// clean absolute path without a trailing slash, or "/" for the whole
// space. It returns a *ConflictError when the prefix overlaps an
// existing entry, leaving the tree unchanged.
func (t *Tree) Add(prefix string, value any) error {
	n := (*node)(t)
	walked := []*node{n}
	for _, seg := range segments(prefix) {
		if n.hasValue {
			// an ancestor owns this subtree already
			return &ConflictError{Prefix: prefix, Existing: n.prefix}
		}

		if n.children == nil {
			n.children = make(map[string]*node)
		}

		c, ok := n.children[seg]
		if !ok {
			c = &node{}
			n.children[seg] = c
		}

		n = c
		walked = append(walked, n)
	}

	if n.hasValue {
		return &ConflictError{Prefix: prefix, Existing: n.prefix}
	}

	if n.size > 0 {
		// a descendant entry exists below the new prefix
		return &ConflictError{Prefix: prefix, Existing: n.findValue()}
	}

	n.hasValue = true
	n.value = value
	n.prefix = prefix
	for _, w := range walked {
		w.size++
	}

	return nil
}

// Lookup finds the entry owning the given path, which must be a clean
// absolute path. It returns the stored value, the byte length of the
// owning prefix within the path ("/" reports length 1), and whether an
// owning entry was found.
func (t *Tree) Lookup(path string) (value any, prefixLen int, ok bool) {
	n := (*node)(t)
	if n.hasValue {
		return n.value, 1, true
	}

	pos := 0
	for _, seg := range segments(path) {
		c, found := n.children[seg]
		if !found {
			return nil, 0, false
		}

		pos += 1 + len(seg)
		if c.hasValue {
			return c.value, pos, true
		}

		n = c
	}

	return nil, 0, false
}

// Clone returns a structural copy of the tree sharing the stored values.
func (t *Tree) Clone() *Tree {
	return (*Tree)((*node)(t).clone())
}

func (n *node) clone() *node {
	c := &node{
		size:     n.size,
		hasValue: n.hasValue,
		value:    n.value,
		prefix:   n.prefix,
	}

	if n.children != nil {
		c.children = make(map[string]*node, len(n.children))
		for seg, child := range n.children {
			c.children[seg] = child.clone()
		}
	}

	return c
}

// Size returns the number of entries in the tree.
func (t *Tree) Size() int {
	return (*node)(t).size
}
