package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/huynhanx03/go-btree/pkg/datastructs/btree"
)

func init() {
	color.NoColor = true
}

func runSession(t *testing.T, order int, input string) (string, *btree.Tree[string, string]) {
	t.Helper()
	tree, err := btree.New[string, string](order)
	require.NoError(t, err)

	var out strings.Builder
	c := NewCli(strings.NewReader(input), &out, tree, nil)
	require.NoError(t, c.Start(context.Background()))
	return out.String(), tree
}

func TestCli_SetGetDel(t *testing.T) {
	out, tree := runSession(t, 4, "SET a 1\nset b 2\nGET a\nDEL a\nGET a\nDEL zz\nEXIT\nSET c 3\n")

	assert.Contains(t, out, "1\n")
	assert.Contains(t, out, "Key not found.")
	assert.Equal(t, 1, tree.Len(), "commands after EXIT must not run")
	assert.False(t, tree.Contains("c"))
}

func TestCli_Replace(t *testing.T) {
	out, _ := runSession(t, 4, "SET a 1\nSET a 2\nGET a\n")
	assert.Contains(t, out, `Replaced "1".`)
	assert.Contains(t, out, "2\n")
}

func TestCli_RangeAndList(t *testing.T) {
	out, _ := runSession(t, 3, "SET a 1\nSET b 2\nSET c 3\nSET d 4\nRANGE b d\nLIST\n")

	assert.Contains(t, out, "b = 2\nc = 3\n(2 entries)\n")
	assert.Contains(t, out, "a = 1\nb = 2\nc = 3\nd = 4\n(4 entries)\n")
}

func TestCli_Usage(t *testing.T) {
	out, _ := runSession(t, 4, "SET a\nGET\nDEL\nRANGE a\nFROB\n\n")
	for _, want := range []string{
		"Usage: SET <key> <value>",
		"Usage: GET <key>",
		"Usage: DEL <key>",
		"Usage: RANGE <lo> <hi>",
		`Unknown command "frob"`,
	} {
		assert.Contains(t, out, want)
	}
}

func TestCli_StatsAndCheck(t *testing.T) {
	out, _ := runSession(t, 4, "SET a 1\nSET b 2\nSET c 3\nSET d 4\nSTATS\nCHECK\n")
	assert.Contains(t, out, "keys=4 nodes=3 leaves=2 inner=1 free=0 height=2 order=4")
	assert.Contains(t, out, "OK (fingerprint ")
}

func TestCli_LogsCommands(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	tree, _ := btree.New[string, string](4)

	var out strings.Builder
	c := NewCli(strings.NewReader("SET a 1\nDEL a\nDEL a\n"), &out, tree, zap.New(core))
	require.NoError(t, c.Start(context.Background()))

	assert.Equal(t, 1, logs.FilterMessage("set").Len())
	assert.Equal(t, 1, logs.FilterMessage("del").Len(), "a miss is not logged")
}

func TestCli_ContextCanceled(t *testing.T) {
	tree, _ := btree.New[string, string](4)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out strings.Builder
	err := NewCli(strings.NewReader("SET a 1\n"), &out, tree, nil).Start(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, tree.Len())
}

func TestVisualizer(t *testing.T) {
	tree, _ := btree.New[string, string](4)
	v := &Visualizer{Tree: tree}
	assert.Equal(t, "(empty)\n", v.Visualize())

	for _, k := range []string{"a", "b", "c", "d"} {
		tree.Insert(k, k)
	}
	want := "<c>\n├─ [a b]\n├─ [c d]\n"
	assert.Equal(t, want, v.Visualize())
}
