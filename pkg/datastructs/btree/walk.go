package btree

import (
	"fmt"
	"io"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Walk visits every node in pre-order and executes fn on it.
// keys must not be modified. Returning false from fn stops the walk.
func (t *Tree[K, V]) Walk(fn func(depth int, leaf bool, keys []K) bool) {
	t.walk(t.root, 0, fn)
}

func (t *Tree[K, V]) walk(pid uint64, depth int, fn func(int, bool, []K) bool) bool {
	switch n := t.nodes[pid].(type) {
	case *leafNode[K, V]:
		return fn(depth, true, n.keys)
	case *innerNode[K]:
		if !fn(depth, false, n.keys) {
			return false
		}
		for _, child := range n.children {
			if !t.walk(child, depth+1, fn) {
				return false
			}
		}
		return true
	default:
		panic("btree: unknown node kind")
	}
}

// Print writes one line per node, indented by depth.
func (t *Tree[K, V]) Print(w io.Writer) error {
	var err error
	t.Walk(func(depth int, leaf bool, keys []K) bool {
		kind := "inner"
		if leaf {
			kind = "leaf"
		}
		_, err = fmt.Fprintf(w, "%s%s %v\n", strings.Repeat("  ", depth), kind, keys)
		return err == nil
	})
	return err
}

// Fingerprint hashes the shape and contents of the tree. Two trees with the same fingerprint
// have, with overwhelming probability, identical nodes holding identical entries.
// Keys and values are rendered with fmt's %v verb.
func (t *Tree[K, V]) Fingerprint() uint64 {
	d := xxhash.New()
	t.fingerprint(d, t.root)
	return d.Sum64()
}

func (t *Tree[K, V]) fingerprint(d *xxhash.Digest, pid uint64) {
	switch n := t.nodes[pid].(type) {
	case *leafNode[K, V]:
		_, _ = d.Write([]byte{kindLeaf})
		for i, k := range n.keys {
			_, _ = fmt.Fprintf(d, "%v=%v;", k, n.vals[i])
		}
	case *innerNode[K]:
		_, _ = d.Write([]byte{kindInner})
		for _, k := range n.keys {
			_, _ = fmt.Fprintf(d, "%v;", k)
		}
		for _, child := range n.children {
			t.fingerprint(d, child)
		}
	default:
		panic("btree: unknown node kind")
	}
}
