package btree

import "sync"

// Locked serializes access to a Tree with a RWMutex.
// Iterators must only be used inside View or Update.
type Locked[K, V any] struct {
	mu   sync.RWMutex
	tree *Tree[K, V]
}

// NewLocked wraps tree. The caller must stop using tree directly.
func NewLocked[K, V any](tree *Tree[K, V]) *Locked[K, V] {
	return &Locked[K, V]{tree: tree}
}

// Insert adds or replaces an entry.
func (l *Locked[K, V]) Insert(key K, value V) (V, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tree.Insert(key, value)
}

// Delete removes an entry.
func (l *Locked[K, V]) Delete(key K) (V, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tree.Delete(key)
}

// Search looks up key.
func (l *Locked[K, V]) Search(key K) (V, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tree.Search(key)
}

// Contains reports whether key is present.
func (l *Locked[K, V]) Contains(key K) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tree.Contains(key)
}

// Len returns the number of entries.
func (l *Locked[K, V]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tree.Len()
}

// View runs fn under the read lock. fn must not modify the tree.
func (l *Locked[K, V]) View(fn func(t *Tree[K, V])) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	fn(l.tree)
}

// Update runs fn under the write lock.
func (l *Locked[K, V]) Update(fn func(t *Tree[K, V])) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.tree)
}
