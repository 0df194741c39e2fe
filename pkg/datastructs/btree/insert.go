package btree

import "go.uber.org/zap"

// Insert stores value under key. If key was already present its value is replaced and the old
// value is returned with true; the shape of the tree does not change in that case.
func (t *Tree[K, V]) Insert(key K, value V) (V, bool) {
	path, pid := t.descend(key)
	l := t.leaf(pid)
	i, found := l.search(key, t.compare)
	if found {
		old := l.vals[i]
		l.vals[i] = value
		return old, true
	}

	l.insertAt(i, key, value)
	t.length++
	if l.numKeys() > t.maxKeys() {
		t.split(path, pid)
	}

	var zero V
	return zero, false
}

// split splits the overflowing leaf pid and walks path bottom-up, inserting each promoted
// separator into its parent and splitting parents that overflow in turn.
func (t *Tree[K, V]) split(path []frame, pid uint64) {
	sep, right := t.leaf(pid).split(t.order)
	rpid := t.alloc(right)
	if ce := t.logger.Check(zap.DebugLevel, "btree: leaf split"); ce != nil {
		ce.Write(zap.Uint64("pid", pid), zap.Uint64("sibling", rpid), zap.Any("separator", sep))
	}

	for d := len(path) - 1; d >= 0; d-- {
		f := path[d]
		parent := t.inner(f.pid)
		parent.insertAt(f.idx, sep, rpid)
		if parent.numKeys() <= t.maxKeys() {
			return
		}

		var sibling *innerNode[K]
		sep, sibling = parent.split(t.order)
		rpid = t.alloc(sibling)
		if ce := t.logger.Check(zap.DebugLevel, "btree: inner split"); ce != nil {
			ce.Write(zap.Uint64("pid", f.pid), zap.Uint64("sibling", rpid), zap.Any("separator", sep))
		}
	}

	t.growRoot(sep, rpid)
}

// growRoot puts a new root above the old one. It is the only way the tree gets taller.
func (t *Tree[K, V]) growRoot(sep K, right uint64) {
	root := newInnerNode[K](t.order)
	root.keys = append(root.keys, sep)
	root.children = append(root.children, t.root, right)
	t.root = t.alloc(root)
	t.height++
	if ce := t.logger.Check(zap.DebugLevel, "btree: root grown"); ce != nil {
		ce.Write(zap.Uint64("root", t.root), zap.Int("height", t.height))
	}
}
