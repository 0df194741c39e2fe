package btree

import "iter"

type boundKind uint8

const (
	unbounded boundKind = iota
	included
	excluded
)

// Bound is one end of a key range.
type Bound[K any] struct {
	key  K
	kind boundKind
}

// Included returns a bound that admits key.
func Included[K any](key K) Bound[K] { return Bound[K]{key: key, kind: included} }

// Excluded returns a bound that stops short of key.
func Excluded[K any](key K) Bound[K] { return Bound[K]{key: key, kind: excluded} }

// Unbounded returns an open end.
func Unbounded[K any]() Bound[K] { return Bound[K]{} }

// Iterator walks entries in ascending key order.
// It keeps the path from the root to the current leaf on an explicit stack, so it holds no
// copy of the data and is not restartable: build a new one to scan again.
//
// The tree must not be modified while an Iterator is in use.
//
//	it := tree.Range(10, 20)
//	for it.Next() {
//	    fmt.Println(it.Key(), it.Value())
//	}
type Iterator[K, V any] struct {
	tree  *Tree[K, V]
	stack []frame // internal nodes above leaf, idx is the child being visited
	leaf  *leafNode[K, V]
	pos   int
	high  Bound[K]
	key   K
	value V
	done  bool
}

// Iter returns an iterator over every entry.
func (t *Tree[K, V]) Iter() *Iterator[K, V] {
	return t.RangeBounds(Unbounded[K](), Unbounded[K]())
}

// Range returns an iterator over keys in [low, high).
func (t *Tree[K, V]) Range(low, high K) *Iterator[K, V] {
	return t.RangeBounds(Included(low), Excluded(high))
}

// RangeBounds returns an iterator over keys between low and high.
func (t *Tree[K, V]) RangeBounds(low, high Bound[K]) *Iterator[K, V] {
	it := &Iterator[K, V]{
		tree:  t,
		stack: make([]frame, 0, t.height),
		high:  high,
	}
	it.seek(low)
	return it
}

// All returns every entry as a single-use sequence.
func (t *Tree[K, V]) All() iter.Seq2[K, V] {
	return t.Iter().All()
}

// Keys returns every key as a single-use sequence.
func (t *Tree[K, V]) Keys() iter.Seq[K] {
	return t.Iter().Keys()
}

// seek positions the iterator just before the first key admitted by low.
func (it *Iterator[K, V]) seek(low Bound[K]) {
	t := it.tree
	pid := t.root
	for {
		switch n := t.nodes[pid].(type) {
		case *leafNode[K, V]:
			it.leaf = n
			if low.kind == unbounded {
				it.pos = 0
				return
			}
			i, found := n.search(low.key, t.compare)
			if found && low.kind == excluded {
				i++
			}
			it.pos = i
			return
		case *innerNode[K]:
			i := 0
			if low.kind != unbounded {
				i = n.childIndex(low.key, t.compare)
			}
			it.stack = append(it.stack, frame{pid: pid, idx: i})
			pid = n.children[i]
		default:
			panic("btree: unknown node kind")
		}
	}
}

// Next advances to the next entry and reports whether there is one.
func (it *Iterator[K, V]) Next() bool {
	if it.done {
		return false
	}
	for it.pos >= len(it.leaf.keys) {
		if !it.nextLeaf() {
			it.finish()
			return false
		}
	}

	k := it.leaf.keys[it.pos]
	if !it.admits(k) {
		it.finish()
		return false
	}
	it.key, it.value = k, it.leaf.vals[it.pos]
	it.pos++
	return true
}

// Key returns the current key. Only valid after Next returned true.
func (it *Iterator[K, V]) Key() K { return it.key }

// Value returns the current value. Only valid after Next returned true.
func (it *Iterator[K, V]) Value() V { return it.value }

// All adapts the remaining entries to a range-over-func sequence.
func (it *Iterator[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for it.Next() {
			if !yield(it.key, it.value) {
				return
			}
		}
	}
}

// Keys adapts the remaining keys to a range-over-func sequence.
func (it *Iterator[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for it.Next() {
			if !yield(it.key) {
				return
			}
		}
	}
}

// nextLeaf climbs until an ancestor has an unvisited child, then descends to that child's
// leftmost leaf.
func (it *Iterator[K, V]) nextLeaf() bool {
	t := it.tree
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		n := t.inner(top.pid)
		if top.idx+1 < len(n.children) {
			top.idx++
			it.descendLeft(n.children[top.idx])
			return true
		}
		it.stack = it.stack[:len(it.stack)-1]
	}
	return false
}

func (it *Iterator[K, V]) descendLeft(pid uint64) {
	t := it.tree
	for {
		switch n := t.nodes[pid].(type) {
		case *leafNode[K, V]:
			it.leaf = n
			it.pos = 0
			return
		case *innerNode[K]:
			it.stack = append(it.stack, frame{pid: pid, idx: 0})
			pid = n.children[0]
		default:
			panic("btree: unknown node kind")
		}
	}
}

func (it *Iterator[K, V]) admits(k K) bool {
	switch it.high.kind {
	case included:
		return it.tree.compare(k, it.high.key) <= 0
	case excluded:
		return it.tree.compare(k, it.high.key) < 0
	default:
		return true
	}
}

func (it *Iterator[K, V]) finish() {
	var (
		k K
		v V
	)
	it.done = true
	it.stack = nil
	it.leaf = nil
	it.key, it.value = k, v
}
