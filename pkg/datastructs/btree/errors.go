package btree

import "github.com/pkg/errors"

var (
	// ErrInvalidOrder is returned when a tree is constructed with an order below MinOrder.
	ErrInvalidOrder = errors.New("btree: invalid order")
	// ErrNilCompare is returned when NewWithCompare receives a nil comparator.
	ErrNilCompare = errors.New("btree: nil compare function")
	// ErrCorrupted is wrapped by every Validate failure.
	ErrCorrupted = errors.New("btree: structural invariant violated")
	// ErrOrderMismatch is returned when a snapshot is decoded into a tree of a different order.
	ErrOrderMismatch = errors.New("btree: snapshot order mismatch")
)
