package btree

import "github.com/pkg/errors"

// validation carries state across the recursive walk.
type validation struct {
	seen      map[uint64]bool
	entries   int
	leafDepth int
}

// Validate walks the whole tree and reports the first broken invariant:
// sorted keys, separator bounds, equal leaf depth, node fill, single ownership of every
// node and agreement between the counters and the structure.
// Every error wraps ErrCorrupted.
func (t *Tree[K, V]) Validate() error {
	if t.root == nilPid || int(t.root) >= len(t.nodes) || t.nodes[t.root] == nil {
		return errors.Wrapf(ErrCorrupted, "root %d is not a live node", t.root)
	}

	v := &validation{seen: make(map[uint64]bool), leafDepth: -1}
	if err := t.validateNode(t.root, 0, nil, nil, v); err != nil {
		return err
	}

	if v.entries != t.length {
		return errors.Wrapf(ErrCorrupted, "length %d, leaves hold %d entries", t.length, v.entries)
	}
	if v.leafDepth+1 != t.height {
		return errors.Wrapf(ErrCorrupted, "height %d, leaves at depth %d", t.height, v.leafDepth)
	}
	if root, ok := t.nodes[t.root].(*leafNode[K, V]); (t.length == 0) != (ok && len(root.keys) == 0) {
		return errors.Wrapf(ErrCorrupted, "length %d disagrees with root kind", t.length)
	}

	live := 0
	for _, n := range t.nodes {
		if n != nil {
			live++
		}
	}
	if live != len(v.seen) {
		return errors.Wrapf(ErrCorrupted, "%d live nodes, %d reachable", live, len(v.seen))
	}
	for _, pid := range t.free {
		if t.nodes[pid] != nil {
			return errors.Wrapf(ErrCorrupted, "free id %d still holds a node", pid)
		}
	}
	return nil
}

// validateNode checks the subtree at pid whose keys must satisfy lo <= key < hi.
// A nil bound is open.
func (t *Tree[K, V]) validateNode(pid uint64, depth int, lo, hi *K, v *validation) error {
	if pid == nilPid || int(pid) >= len(t.nodes) {
		return errors.Wrapf(ErrCorrupted, "child id %d out of range", pid)
	}
	if v.seen[pid] {
		return errors.Wrapf(ErrCorrupted, "node %d reachable twice", pid)
	}
	v.seen[pid] = true

	var keys []K
	switch n := t.nodes[pid].(type) {
	case *leafNode[K, V]:
		keys = n.keys
		if len(n.vals) != len(n.keys) {
			return errors.Wrapf(ErrCorrupted, "leaf %d has %d keys and %d values", pid, len(n.keys), len(n.vals))
		}
		if v.leafDepth == -1 {
			v.leafDepth = depth
		} else if v.leafDepth != depth {
			return errors.Wrapf(ErrCorrupted, "leaf %d at depth %d, expected %d", pid, depth, v.leafDepth)
		}
		v.entries += len(n.keys)
	case *innerNode[K]:
		keys = n.keys
		if len(n.children) != len(n.keys)+1 {
			return errors.Wrapf(ErrCorrupted, "inner %d has %d keys and %d children", pid, len(n.keys), len(n.children))
		}
		if len(n.keys) == 0 {
			return errors.Wrapf(ErrCorrupted, "inner %d has no separators", pid)
		}
	case nil:
		return errors.Wrapf(ErrCorrupted, "node %d was released", pid)
	default:
		return errors.Wrapf(ErrCorrupted, "node %d has unknown kind %T", pid, n)
	}

	if len(keys) > t.maxKeys() {
		return errors.Wrapf(ErrCorrupted, "node %d holds %d keys, max %d", pid, len(keys), t.maxKeys())
	}
	if pid != t.root && len(keys) < t.minKeys() {
		return errors.Wrapf(ErrCorrupted, "node %d holds %d keys, min %d", pid, len(keys), t.minKeys())
	}
	for i, k := range keys {
		if i > 0 && t.compare(keys[i-1], k) >= 0 {
			return errors.Wrapf(ErrCorrupted, "node %d keys not strictly increasing at %d", pid, i)
		}
		if lo != nil && t.compare(k, *lo) < 0 {
			return errors.Wrapf(ErrCorrupted, "node %d key %d below its separator", pid, i)
		}
		if hi != nil && t.compare(k, *hi) >= 0 {
			return errors.Wrapf(ErrCorrupted, "node %d key %d not below its separator", pid, i)
		}
	}

	n, ok := t.nodes[pid].(*innerNode[K])
	if !ok {
		return nil
	}
	for i, child := range n.children {
		clo, chi := lo, hi
		if i > 0 {
			clo = &n.keys[i-1]
		}
		if i < len(n.keys) {
			chi = &n.keys[i]
		}
		if err := t.validateNode(child, depth+1, clo, chi, v); err != nil {
			return err
		}
	}
	return nil
}
