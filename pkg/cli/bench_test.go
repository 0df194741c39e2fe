package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"

	"github.com/huynhanx03/go-btree/pkg/datastructs/btree"
)

func TestBench(t *testing.T) {
	res, err := Bench(5, 2000, 42, zaptest.NewLogger(t, zaptest.Level(zapcore.InfoLevel)))
	require.NoError(t, err)

	assert.Positive(t, res.Inserted)
	assert.Positive(t, res.Deleted)
	assert.Equal(t, res.Inserted, res.Peak.NumKeys)
	assert.Equal(t, res.Inserted-res.Deleted, res.Final.NumKeys)
	assert.GreaterOrEqual(t, res.Peak.Height, res.Final.Height)
}

func TestBench_Deterministic(t *testing.T) {
	a, err := Bench(4, 500, 7, nil)
	require.NoError(t, err)
	b, err := Bench(4, 500, 7, nil)
	require.NoError(t, err)

	assert.Equal(t, a.Inserted, b.Inserted)
	assert.Equal(t, a.Deleted, b.Deleted)
	assert.Equal(t, a.Final, b.Final)
}

func TestBench_Errors(t *testing.T) {
	_, err := Bench(2, 10, 1, nil)
	assert.ErrorIs(t, err, btree.ErrInvalidOrder)

	_, err = Bench(4, -1, 1, nil)
	assert.Error(t, err)
}

func TestBench_Empty(t *testing.T) {
	res, err := Bench(3, 0, 1, nil)
	require.NoError(t, err)
	assert.Zero(t, res.Final.NumKeys)
}
