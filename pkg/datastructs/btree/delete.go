package btree

import (
	"slices"

	"go.uber.org/zap"
)

// Delete removes key and returns its value. An absent key returns false and leaves the tree
// untouched.
//
// Algorithm:
//  1. Remove the entry from its leaf.
//  2. While a non-root node is below the minimum, borrow from the left sibling, else from the
//     right sibling, else merge (left sibling preferred) and continue with the parent.
//  3. Collapse a root left with a single child.
//  4. Replace any separator equal to key with its in-order successor.
func (t *Tree[K, V]) Delete(key K) (V, bool) {
	path, pid := t.descend(key)
	l := t.leaf(pid)
	i, found := l.search(key, t.compare)
	if !found {
		var zero V
		return zero, false
	}

	_, old := l.removeAt(i)
	t.length--
	t.rebalance(path, pid)
	t.replaceSeparator(key)
	return old, true
}

// rebalance fixes underflow bottom-up starting at pid, whose ancestors are path.
func (t *Tree[K, V]) rebalance(path []frame, pid uint64) {
	for d := len(path) - 1; d >= 0; d-- {
		if t.nodes[pid].numKeys() >= t.minKeys() {
			return
		}
		f := path[d]
		if t.borrow(f) {
			return
		}
		t.merge(f)
		pid = f.pid
	}
	t.shrinkRoot()
}

// borrow refills child f.idx of f.pid from a sibling holding more than the minimum.
func (t *Tree[K, V]) borrow(f frame) bool {
	parent := t.inner(f.pid)
	if f.idx > 0 && t.nodes[parent.children[f.idx-1]].numKeys() > t.minKeys() {
		t.rotateRight(parent, f.idx-1)
		if ce := t.logger.Check(zap.DebugLevel, "btree: borrowed from left"); ce != nil {
			ce.Write(zap.Uint64("parent", f.pid), zap.Int("child", f.idx))
		}
		return true
	}
	if f.idx < len(parent.children)-1 && t.nodes[parent.children[f.idx+1]].numKeys() > t.minKeys() {
		t.rotateLeft(parent, f.idx)
		if ce := t.logger.Check(zap.DebugLevel, "btree: borrowed from right"); ce != nil {
			ce.Write(zap.Uint64("parent", f.pid), zap.Int("child", f.idx))
		}
		return true
	}
	return false
}

// rotateRight moves the last entry of children[i] through separator i into children[i+1].
func (t *Tree[K, V]) rotateRight(parent *innerNode[K], i int) {
	switch left := t.nodes[parent.children[i]].(type) {
	case *leafNode[K, V]:
		right := t.leaf(parent.children[i+1])
		k, v := left.removeAt(len(left.keys) - 1)
		right.insertAt(0, k, v)
		parent.keys[i] = k
	case *innerNode[K]:
		right := t.inner(parent.children[i+1])
		last := len(left.keys) - 1
		k, child := left.keys[last], left.children[last+1]
		left.keys = slices.Delete(left.keys, last, last+1)
		left.children = slices.Delete(left.children, last+1, last+2)
		right.keys = slices.Insert(right.keys, 0, parent.keys[i])
		right.children = slices.Insert(right.children, 0, child)
		parent.keys[i] = k
	default:
		panic("btree: unknown node kind")
	}
}

// rotateLeft moves the first entry of children[i+1] through separator i into children[i].
func (t *Tree[K, V]) rotateLeft(parent *innerNode[K], i int) {
	switch left := t.nodes[parent.children[i]].(type) {
	case *leafNode[K, V]:
		right := t.leaf(parent.children[i+1])
		k, v := right.removeAt(0)
		left.keys = append(left.keys, k)
		left.vals = append(left.vals, v)
		parent.keys[i] = right.keys[0]
	case *innerNode[K]:
		right := t.inner(parent.children[i+1])
		left.keys = append(left.keys, parent.keys[i])
		left.children = append(left.children, right.children[0])
		parent.keys[i] = right.keys[0]
		right.keys = slices.Delete(right.keys, 0, 1)
		right.children = slices.Delete(right.children, 0, 1)
	default:
		panic("btree: unknown node kind")
	}
}

// merge joins child f.idx with its left sibling, or with its right sibling when it is the
// first child.
func (t *Tree[K, V]) merge(f frame) {
	i := f.idx - 1
	if f.idx == 0 {
		i = 0
	}
	parent := t.inner(f.pid)
	lpid, rpid := parent.children[i], parent.children[i+1]

	switch left := t.nodes[lpid].(type) {
	case *leafNode[K, V]:
		right := t.leaf(rpid)
		left.keys = append(left.keys, right.keys...)
		left.vals = append(left.vals, right.vals...)
	case *innerNode[K]:
		right := t.inner(rpid)
		left.keys = append(left.keys, parent.keys[i])
		left.keys = append(left.keys, right.keys...)
		left.children = append(left.children, right.children...)
	default:
		panic("btree: unknown node kind")
	}

	parent.removeAt(i)
	t.release(rpid)
	if ce := t.logger.Check(zap.DebugLevel, "btree: merged"); ce != nil {
		ce.Write(zap.Uint64("parent", f.pid), zap.Uint64("into", lpid), zap.Uint64("freed", rpid))
	}
}

// shrinkRoot replaces an internal root without separators by its only child.
func (t *Tree[K, V]) shrinkRoot() {
	root, ok := t.nodes[t.root].(*innerNode[K])
	if !ok || len(root.keys) > 0 {
		return
	}
	old := t.root
	t.root = root.children[0]
	t.release(old)
	t.height--
	if ce := t.logger.Check(zap.DebugLevel, "btree: root collapsed"); ce != nil {
		ce.Write(zap.Uint64("root", t.root), zap.Int("height", t.height))
	}
}

// replaceSeparator overwrites separators equal to the deleted key with the smallest key of
// the subtree on their right.
func (t *Tree[K, V]) replaceSeparator(key K) {
	pid := t.root
	for {
		n, ok := t.nodes[pid].(*innerNode[K])
		if !ok {
			return
		}
		i := n.childIndex(key, t.compare)
		if i > 0 && t.compare(n.keys[i-1], key) == 0 {
			n.keys[i-1] = t.edgeLeaf(n.children[i], false).keys[0]
		}
		pid = n.children[i]
	}
}
