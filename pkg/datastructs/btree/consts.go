package btree

const (
	// MinOrder is the smallest branching factor a tree accepts.
	MinOrder = 3

	// DefaultOrder is used by FromSettings when the configured order is zero.
	DefaultOrder = 64

	// nilPid marks an absent node. Valid node ids start at 1.
	nilPid = uint64(0)
)

// Node kinds written into Fingerprint digests.
const (
	kindLeaf  = byte('L')
	kindInner = byte('I')
)
