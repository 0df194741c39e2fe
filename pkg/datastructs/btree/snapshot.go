package btree

import (
	"cmp"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
)

// snapshot is the BSON document written by MarshalBSON: the order and the entries in
// ascending key order.
type snapshot[K, V any] struct {
	Order   int           `bson:"order"`
	Entries []entry[K, V] `bson:"entries"`
}

type entry[K, V any] struct {
	Key   K `bson:"k"`
	Value V `bson:"v"`
}

// MarshalBSON implements bson.Marshaler.
func (t *Tree[K, V]) MarshalBSON() ([]byte, error) {
	s := snapshot[K, V]{
		Order:   t.order,
		Entries: make([]entry[K, V], 0, t.length),
	}
	for k, v := range t.All() {
		s.Entries = append(s.Entries, entry[K, V]{Key: k, Value: v})
	}

	data, err := bson.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, "btree: marshal snapshot")
	}
	return data, nil
}

// UnmarshalBSON implements bson.Unmarshaler. It replaces the contents of an existing tree,
// which must have the snapshot's order. On error the tree is left unchanged.
func (t *Tree[K, V]) UnmarshalBSON(data []byte) error {
	s, err := decodeSnapshot[K, V](data)
	if err != nil {
		return err
	}
	if s.Order != t.order {
		return errors.Wrapf(ErrOrderMismatch, "snapshot order %d, tree order %d", s.Order, t.order)
	}

	t.Clear()
	for _, e := range s.Entries {
		t.Insert(e.Key, e.Value)
	}
	return nil
}

// Restore builds a new tree with the order and entries recorded in a snapshot.
func Restore[K cmp.Ordered, V any](data []byte, opts ...Option) (*Tree[K, V], error) {
	s, err := decodeSnapshot[K, V](data)
	if err != nil {
		return nil, err
	}
	t, err := New[K, V](s.Order, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "btree: restore snapshot")
	}
	for _, e := range s.Entries {
		t.Insert(e.Key, e.Value)
	}
	return t, nil
}

func decodeSnapshot[K, V any](data []byte) (*snapshot[K, V], error) {
	var s snapshot[K, V]
	if err := bson.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, "btree: unmarshal snapshot")
	}
	return &s, nil
}
