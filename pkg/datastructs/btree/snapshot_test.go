package btree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// =============================================================================
// Snapshot Tests: MarshalBSON / UnmarshalBSON / Restore
// =============================================================================

func TestSnapshot_RoundTrip(t *testing.T) {
	tree := newScenarioTree(t)
	tree.Delete(6)

	data, err := bson.Marshal(tree)
	require.NoError(t, err)

	other, err := New[int, string](4)
	require.NoError(t, err)
	other.Insert(99, "stale")

	require.NoError(t, bson.Unmarshal(data, other))
	require.NoError(t, other.Validate())
	assert.Equal(t, tree.Len(), other.Len())
	assert.False(t, other.Contains(99))
	assert.Equal(t, keysOf(tree), keysOf(other))
	for k, v := range tree.All() {
		got, ok := other.Search(k)
		assert.True(t, ok)
		assert.Equal(t, v, got)
	}
}

func TestSnapshot_Document(t *testing.T) {
	tree, _ := New[string, int](3)
	tree.Insert("b", 2)
	tree.Insert("a", 1)

	data, err := tree.MarshalBSON()
	require.NoError(t, err)

	var doc struct {
		Order   int `bson:"order"`
		Entries []struct {
			K string `bson:"k"`
			V int    `bson:"v"`
		} `bson:"entries"`
	}
	require.NoError(t, bson.Unmarshal(data, &doc))
	assert.Equal(t, 3, doc.Order)
	require.Len(t, doc.Entries, 2)
	assert.Equal(t, "a", doc.Entries[0].K)
	assert.Equal(t, 1, doc.Entries[0].V)
	assert.Equal(t, "b", doc.Entries[1].K)
}

func TestSnapshot_Empty(t *testing.T) {
	tree, _ := New[int, int](5)
	data, err := tree.MarshalBSON()
	require.NoError(t, err)

	restored, err := Restore[int, int](data)
	require.NoError(t, err)
	assert.True(t, restored.IsEmpty())
	assert.Equal(t, 5, restored.Order())
	require.NoError(t, restored.Validate())
}

func TestRestore(t *testing.T) {
	tree, _ := New[int, int](7)
	for i := 0; i < 500; i++ {
		tree.Insert(i*2, i)
	}
	data, err := tree.MarshalBSON()
	require.NoError(t, err)

	restored, err := Restore[int, int](data)
	require.NoError(t, err)
	require.NoError(t, restored.Validate())
	assert.Equal(t, 7, restored.Order())
	assert.Equal(t, 500, restored.Len())
	assert.Equal(t, keysOf(tree), keysOf(restored))
}

func TestSnapshot_OrderMismatch(t *testing.T) {
	tree := newScenarioTree(t)
	data, err := tree.MarshalBSON()
	require.NoError(t, err)

	other, _ := New[int, string](5)
	other.Insert(1, "keep")
	fp := other.Fingerprint()

	err = other.UnmarshalBSON(data)
	assert.ErrorIs(t, err, ErrOrderMismatch)
	assert.Equal(t, fp, other.Fingerprint(), "tree modified by a rejected snapshot")
}

func TestSnapshot_BadData(t *testing.T) {
	tree := newScenarioTree(t)
	fp := tree.Fingerprint()

	assert.Error(t, tree.UnmarshalBSON([]byte{0x01, 0x02}))
	assert.Equal(t, fp, tree.Fingerprint())

	_, err := Restore[int, string]([]byte("not bson"))
	assert.Error(t, err)
}

func TestRestore_InvalidOrder(t *testing.T) {
	data, err := bson.Marshal(bson.M{"order": 2, "entries": bson.A{}})
	require.NoError(t, err)

	_, err = Restore[int, int](data)
	assert.ErrorIs(t, err, ErrInvalidOrder)
}
