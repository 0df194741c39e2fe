package btree

import (
	"cmp"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Tree is an in-memory B+ tree mapping keys of type K to values of type V.
// Entries live in the leaves; internal nodes hold separator copies.
//
// Nodes live in an arena indexed by node id. A split allocates an id, a merge releases it to
// the free list and later splits reuse it.
//
// A Tree is NOT safe for concurrent use. Mutating it while an Iterator is live is undefined;
// callers that share a tree between goroutines must serialize access themselves (see Locked).
type Tree[K, V any] struct {
	order   int
	compare func(a, b K) int
	nodes   []node[K, V] // arena, nodes[0] is never used
	free    []uint64
	root    uint64
	length  int
	height  int
	logger  *zap.Logger
}

// frame records one step of a descent: the internal node and the child index taken.
type frame struct {
	pid uint64
	idx int
}

// New returns an empty tree of the given order for naturally ordered keys.
func New[K cmp.Ordered, V any](order int, opts ...Option) (*Tree[K, V], error) {
	return NewWithCompare[K, V](order, cmp.Compare[K], opts...)
}

// NewWithCompare returns an empty tree ordered by compare, which must define a total order and
// return a negative number, zero or a positive number like cmp.Compare.
func NewWithCompare[K, V any](order int, compare func(a, b K) int, opts ...Option) (*Tree[K, V], error) {
	if order < MinOrder {
		return nil, errors.Wrapf(ErrInvalidOrder, "order %d is below minimum %d", order, MinOrder)
	}
	if compare == nil {
		return nil, errors.WithStack(ErrNilCompare)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	t := &Tree[K, V]{
		order:   order,
		compare: compare,
		logger:  o.logger,
	}
	t.Clear()
	return t, nil
}

// Clear removes every entry. The tree keeps its order and comparator.
func (t *Tree[K, V]) Clear() {
	t.nodes = make([]node[K, V], 1, 16)
	t.free = nil
	t.length = 0
	t.height = 1
	t.root = t.alloc(newLeafNode[K, V](t.order))
}

// Close releases every node. A closed tree must not be used again.
func (t *Tree[K, V]) Close() error {
	if t == nil {
		return nil
	}
	t.nodes = nil
	t.free = nil
	t.root = nilPid
	t.length = 0
	t.height = 0
	return nil
}

func (t *Tree[K, V]) maxKeys() int { return t.order - 1 }
func (t *Tree[K, V]) minKeys() int { return (t.order+1)/2 - 1 }

// alloc stores n in the arena and returns its id, reusing a freed id when one exists.
func (t *Tree[K, V]) alloc(n node[K, V]) uint64 {
	if last := len(t.free) - 1; last >= 0 {
		pid := t.free[last]
		t.free = t.free[:last]
		t.nodes[pid] = n
		return pid
	}
	t.nodes = append(t.nodes, n)
	return uint64(len(t.nodes) - 1)
}

// release drops the node and puts its id on the free list.
func (t *Tree[K, V]) release(pid uint64) {
	t.nodes[pid] = nil
	t.free = append(t.free, pid)
}

func (t *Tree[K, V]) leaf(pid uint64) *leafNode[K, V] {
	return t.nodes[pid].(*leafNode[K, V])
}

func (t *Tree[K, V]) inner(pid uint64) *innerNode[K] {
	return t.nodes[pid].(*innerNode[K])
}

// descend walks from the root to the leaf whose range contains key.
// It returns the internal nodes visited, top-down, and the leaf id.
func (t *Tree[K, V]) descend(key K) ([]frame, uint64) {
	path := make([]frame, 0, t.height)
	pid := t.root
	for {
		switch n := t.nodes[pid].(type) {
		case *leafNode[K, V]:
			return path, pid
		case *innerNode[K]:
			i := n.childIndex(key, t.compare)
			path = append(path, frame{pid: pid, idx: i})
			pid = n.children[i]
		default:
			panic("btree: unknown node kind")
		}
	}
}

// findLeaf is descend without the path.
func (t *Tree[K, V]) findLeaf(key K) *leafNode[K, V] {
	pid := t.root
	for {
		switch n := t.nodes[pid].(type) {
		case *leafNode[K, V]:
			return n
		case *innerNode[K]:
			pid = n.children[n.childIndex(key, t.compare)]
		default:
			panic("btree: unknown node kind")
		}
	}
}

// edgeLeaf returns the leftmost (or rightmost) leaf below pid.
func (t *Tree[K, V]) edgeLeaf(pid uint64, rightmost bool) *leafNode[K, V] {
	for {
		switch n := t.nodes[pid].(type) {
		case *leafNode[K, V]:
			return n
		case *innerNode[K]:
			if rightmost {
				pid = n.children[len(n.children)-1]
			} else {
				pid = n.children[0]
			}
		default:
			panic("btree: unknown node kind")
		}
	}
}

// Search returns the value stored under key.
func (t *Tree[K, V]) Search(key K) (V, bool) {
	l := t.findLeaf(key)
	if i, found := l.search(key, t.compare); found {
		return l.vals[i], true
	}
	var zero V
	return zero, false
}

// Contains reports whether key is present.
func (t *Tree[K, V]) Contains(key K) bool {
	_, found := t.findLeaf(key).search(key, t.compare)
	return found
}

// Min returns the smallest entry.
func (t *Tree[K, V]) Min() (K, V, bool) {
	if t.length == 0 {
		var (
			k K
			v V
		)
		return k, v, false
	}
	l := t.edgeLeaf(t.root, false)
	return l.keys[0], l.vals[0], true
}

// Max returns the largest entry.
func (t *Tree[K, V]) Max() (K, V, bool) {
	if t.length == 0 {
		var (
			k K
			v V
		)
		return k, v, false
	}
	l := t.edgeLeaf(t.root, true)
	last := len(l.keys) - 1
	return l.keys[last], l.vals[last], true
}

// Len returns the number of entries.
func (t *Tree[K, V]) Len() int { return t.length }

// IsEmpty reports whether the tree holds no entries.
func (t *Tree[K, V]) IsEmpty() bool { return t.length == 0 }

// Height returns the number of node levels. An empty tree has height 1.
func (t *Tree[K, V]) Height() int { return t.height }

// Order returns the branching factor.
func (t *Tree[K, V]) Order() int { return t.order }

type TreeStats struct {
	NumKeys   int     // Entries in leaves.
	NumNodes  int     // Live nodes.
	NumLeaves int     // Calculated.
	NumInner  int     // Calculated.
	NumFree   int     // Ids waiting on the free list.
	Height    int     // Derived.
	Order     int     // Derived.
	Occupancy float64 // Leaf fill percentage.
}

// Stats returns stats about the tree.
func (t *Tree[K, V]) Stats() TreeStats {
	out := TreeStats{
		NumKeys: t.length,
		NumFree: len(t.free),
		Height:  t.height,
		Order:   t.order,
	}
	for _, n := range t.nodes {
		switch n.(type) {
		case *leafNode[K, V]:
			out.NumLeaves++
		case *innerNode[K]:
			out.NumInner++
		}
	}
	out.NumNodes = out.NumLeaves + out.NumInner
	if out.NumLeaves > 0 {
		out.Occupancy = 100.0 * float64(out.NumKeys) / float64(t.maxKeys()*out.NumLeaves)
	}
	return out
}
