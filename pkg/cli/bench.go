package cli

import (
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/huynhanx03/go-btree/pkg/datastructs/btree"
)

// BenchResult reports one Bench run.
type BenchResult struct {
	Inserted int
	Deleted  int
	Peak     btree.TreeStats
	Final    btree.TreeStats
	Elapsed  time.Duration
}

// Bench inserts n pseudo-random ints into a tree of the given order, deletes every other one and
// validates the result. The same seed always produces the same run.
func Bench(order, n int, seed uint64, logger *zap.Logger) (BenchResult, error) {
	var res BenchResult
	if logger == nil {
		logger = zap.NewNop()
	}
	if n < 0 {
		return res, errors.Errorf("bench: n must not be negative, got %d", n)
	}

	tree, err := btree.New[int, int](order, btree.WithLogger(logger))
	if err != nil {
		return res, err
	}
	defer tree.Close()

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	keys := make([]int, n)
	for i := range keys {
		keys[i] = rng.IntN(n*4 + 1)
	}

	start := time.Now()
	for i, k := range keys {
		if _, replaced := tree.Insert(k, i); !replaced {
			res.Inserted++
		}
	}
	res.Peak = tree.Stats()

	for i, k := range keys {
		if i%2 == 1 {
			continue
		}
		if _, ok := tree.Delete(k); ok {
			res.Deleted++
		}
	}
	res.Elapsed = time.Since(start)
	res.Final = tree.Stats()

	if err := tree.Validate(); err != nil {
		return res, errors.Wrap(err, "bench")
	}
	if tree.Len() != res.Inserted-res.Deleted {
		return res, errors.Errorf("bench: length %d, expected %d", tree.Len(), res.Inserted-res.Deleted)
	}

	logger.Info("bench finished",
		zap.Int("order", order),
		zap.Int("n", n),
		zap.Int("inserted", res.Inserted),
		zap.Int("deleted", res.Deleted),
		zap.Int("height", res.Final.Height),
		zap.Float64("occupancy", res.Final.Occupancy),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}
