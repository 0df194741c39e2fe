package btree

import "slices"

// node is one of *leafNode[K, V] or *innerNode[K].
// Callers dispatch on the concrete type with a type switch.
type node[K, V any] interface {
	numKeys() int
}

// leafNode holds the entries. vals[i] belongs to keys[i].
type leafNode[K, V any] struct {
	keys []K
	vals []V
}

// innerNode routes searches.
// children[i] holds keys < keys[i], children[i+1] holds keys >= keys[i].
type innerNode[K any] struct {
	keys     []K
	children []uint64
}

// Both payloads are sized for one overflowing entry so a split never reallocates.
func newLeafNode[K, V any](order int) *leafNode[K, V] {
	return &leafNode[K, V]{
		keys: make([]K, 0, order),
		vals: make([]V, 0, order),
	}
}

func newInnerNode[K any](order int) *innerNode[K] {
	return &innerNode[K]{
		keys:     make([]K, 0, order),
		children: make([]uint64, 0, order+1),
	}
}

func (n *leafNode[K, V]) numKeys() int { return len(n.keys) }
func (n *innerNode[K]) numKeys() int   { return len(n.keys) }

// search returns the index of key, or the index it would be inserted at.
func (n *leafNode[K, V]) search(key K, compare func(a, b K) int) (int, bool) {
	return slices.BinarySearchFunc(n.keys, key, compare)
}

func (n *leafNode[K, V]) insertAt(i int, key K, val V) {
	n.keys = slices.Insert(n.keys, i, key)
	n.vals = slices.Insert(n.vals, i, val)
}

func (n *leafNode[K, V]) removeAt(i int) (K, V) {
	key, val := n.keys[i], n.vals[i]
	n.keys = slices.Delete(n.keys, i, i+1)
	n.vals = slices.Delete(n.vals, i, i+1)
	return key, val
}

// split moves the upper half into a new right sibling.
// The returned separator is a copy of the sibling's first key.
func (n *leafNode[K, V]) split(order int) (K, *leafNode[K, V]) {
	mid := len(n.keys) / 2
	right := newLeafNode[K, V](order)
	right.keys = append(right.keys, n.keys[mid:]...)
	right.vals = append(right.vals, n.vals[mid:]...)

	clear(n.keys[mid:])
	clear(n.vals[mid:])
	n.keys = n.keys[:mid]
	n.vals = n.vals[:mid]
	return right.keys[0], right
}

// childIndex returns the index of the child whose range contains key.
func (n *innerNode[K]) childIndex(key K, compare func(a, b K) int) int {
	i, found := slices.BinarySearchFunc(n.keys, key, compare)
	if found {
		i++
	}
	return i
}

// insertAt adds separator key at i with child to its right.
func (n *innerNode[K]) insertAt(i int, key K, child uint64) {
	n.keys = slices.Insert(n.keys, i, key)
	n.children = slices.Insert(n.children, i+1, child)
}

// removeAt drops separator i and the child to its right.
func (n *innerNode[K]) removeAt(i int) {
	n.keys = slices.Delete(n.keys, i, i+1)
	n.children = slices.Delete(n.children, i+1, i+2)
}

// split removes the median key and returns it with a new right sibling
// holding everything above it.
func (n *innerNode[K]) split(order int) (K, *innerNode[K]) {
	mid := len(n.keys) / 2
	sep := n.keys[mid]
	right := newInnerNode[K](order)
	right.keys = append(right.keys, n.keys[mid+1:]...)
	right.children = append(right.children, n.children[mid+1:]...)

	clear(n.keys[mid:])
	clear(n.children[mid+1:])
	n.keys = n.keys[:mid]
	n.children = n.children[:mid+1]
	return sep, right
}
