package btree

import (
	"cmp"

	"go.uber.org/zap"

	"github.com/huynhanx03/go-btree/pkg/settings"
)

// Option configures a Tree.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

func defaultOptions() options {
	return options{logger: zap.NewNop()}
}

// WithLogger sets the logger receiving structural events (split, borrow, merge) at debug level.
// A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// FromSettings builds a tree from configuration. A zero order selects DefaultOrder.
func FromSettings[K cmp.Ordered, V any](cfg settings.Tree, opts ...Option) (*Tree[K, V], error) {
	order := cfg.Order
	if order == 0 {
		order = DefaultOrder
	}
	return New[K, V](order, opts...)
}
