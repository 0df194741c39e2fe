package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/huynhanx03/go-btree/pkg/datastructs/btree"
)

var (
	innerColor = color.New(color.FgCyan, color.Bold)
	leafColor  = color.New(color.FgGreen)
	treeColor  = color.New(color.FgHiBlack)
)

// Visualizer draws a tree one node per line, children indented under their parent.
type Visualizer struct {
	Tree *btree.Tree[string, string]
}

func (v *Visualizer) Visualize() string {
	var sb strings.Builder
	if v.Tree.IsEmpty() {
		sb.WriteString(treeColor.Sprint("(empty)") + "\n")
		return sb.String()
	}
	v.Tree.Walk(func(depth int, leaf bool, keys []string) bool {
		if depth > 0 {
			sb.WriteString(treeColor.Sprint(strings.Repeat("│  ", depth-1) + "├─ "))
		}
		if leaf {
			sb.WriteString(leafColor.Sprint(fmt.Sprintf("[%s]", strings.Join(keys, " "))))
		} else {
			sb.WriteString(innerColor.Sprint(fmt.Sprintf("<%s>", strings.Join(keys, " "))))
		}
		sb.WriteByte('\n')
		return true
	})
	return sb.String()
}
