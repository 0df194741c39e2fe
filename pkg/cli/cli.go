package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/huynhanx03/go-btree/pkg/datastructs/btree"
)

type Cli struct {
	scanner    *bufio.Scanner
	out        io.Writer
	tree       *btree.Tree[string, string]
	visualizer *Visualizer
	logger     *zap.Logger
}

func NewCli(in io.Reader, out io.Writer, t *btree.Tree[string, string], logger *zap.Logger) *Cli {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cli{
		scanner:    bufio.NewScanner(in),
		out:        out,
		tree:       t,
		visualizer: &Visualizer{Tree: t},
		logger:     logger,
	}
}

// Start reads commands until EXIT, end of input or ctx is done.
func (c *Cli) Start(ctx context.Context) error {
	c.printHelp()
	c.printPrompt()
	for c.scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !c.processInput(c.scanner.Text()) {
			return nil
		}
		c.printPrompt()
	}
	return c.scanner.Err()
}

func (c *Cli) printHelp() {
	fmt.Fprintln(c.out, `
B-Tree CLI

Available Commands:
  SET <key> <val>    Insert a key-value pair into the B-Tree
  DEL <key>          Remove a key-value pair from the B-Tree
  GET <key>          Retrieve the value for key from the B-Tree
  RANGE <lo> <hi>    List entries with lo <= key < hi
  LIST               List every entry in key order
  DUMP               Draw the tree
  STATS              Show node and fill statistics
  CHECK              Verify the tree structure
  HELP               Show this message
  EXIT               Terminate this session`)
}

func (c *Cli) printPrompt() {
	fmt.Fprint(c.out, "> ")
}

// processInput runs one command line and reports whether the session continues.
func (c *Cli) processInput(line string) bool {
	fields := strings.Fields(line)
	if len(fields) < 1 {
		return true
	}
	command := strings.ToLower(fields[0])
	switch command {
	default:
		fmt.Fprintf(c.out, "Unknown command %q\n", command)
	case "set":
		c.processSetCommand(fields[1:])
	case "del":
		c.processDeleteCommand(fields[1:])
	case "get":
		c.processGetCommand(fields[1:])
	case "range":
		c.processRangeCommand(fields[1:])
	case "list":
		c.printEntries(c.tree.Iter())
	case "dump":
		fmt.Fprint(c.out, c.visualizer.Visualize())
	case "stats":
		c.processStatsCommand()
	case "check":
		c.processCheckCommand()
	case "help":
		c.printHelp()
	case "exit", "quit":
		return false
	}
	return true
}

func (c *Cli) processSetCommand(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(c.out, "Usage: SET <key> <value>")
		return
	}
	if old, ok := c.tree.Insert(args[0], args[1]); ok {
		fmt.Fprintf(c.out, "Replaced %q.\n", old)
	}
	c.logger.Debug("set", zap.String("key", args[0]), zap.Int("len", c.tree.Len()))
	fmt.Fprint(c.out, c.visualizer.Visualize())
}

func (c *Cli) processDeleteCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: DEL <key>")
		return
	}
	if _, ok := c.tree.Delete(args[0]); !ok {
		fmt.Fprintln(c.out, "Key not found.")
		return
	}
	c.logger.Debug("del", zap.String("key", args[0]), zap.Int("len", c.tree.Len()))
	fmt.Fprint(c.out, c.visualizer.Visualize())
}

func (c *Cli) processGetCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: GET <key>")
		return
	}
	val, ok := c.tree.Search(args[0])
	if !ok {
		fmt.Fprintln(c.out, "Key not found.")
		return
	}
	fmt.Fprintln(c.out, val)
}

func (c *Cli) processRangeCommand(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(c.out, "Usage: RANGE <lo> <hi>")
		return
	}
	c.printEntries(c.tree.Range(args[0], args[1]))
}

func (c *Cli) printEntries(it *btree.Iterator[string, string]) {
	n := 0
	for k, v := range it.All() {
		fmt.Fprintf(c.out, "%s = %s\n", k, v)
		n++
	}
	fmt.Fprintf(c.out, "(%d entries)\n", n)
}

func (c *Cli) processStatsCommand() {
	s := c.tree.Stats()
	fmt.Fprintf(c.out, "keys=%d nodes=%d leaves=%d inner=%d free=%d height=%d order=%d occupancy=%.1f%%\n",
		s.NumKeys, s.NumNodes, s.NumLeaves, s.NumInner, s.NumFree, s.Height, s.Order, s.Occupancy)
}

func (c *Cli) processCheckCommand() {
	if err := c.tree.Validate(); err != nil {
		c.logger.Error("tree check failed", zap.Error(err))
		fmt.Fprintf(c.out, "CORRUPT: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "OK (fingerprint %016x)\n", c.tree.Fingerprint())
}
