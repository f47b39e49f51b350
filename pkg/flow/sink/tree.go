package sink

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/matzehuels/flowdiagram/pkg/flow/layout"
)

var (
	treeRootStyle   = lipgloss.NewStyle().Bold(true)
	treeEnumStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	treeForkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	treeMarkerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	treeMutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// RenderTree returns a terminal outline of the layout: prefix nodes, the
// fork with one branch per column, then the suffix. Convergence points are
// marked with ⤓ and nodes carrying content with ◆.
func RenderTree(t *layout.Tree, title string) string {
	if title == "" {
		title = "flow"
	}
	root := tree.Root(treeRootStyle.Render(title)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(treeEnumStyle)

	for _, n := range t.Prefix {
		root.Child(nodeLabel(n))
	}
	if t.Fork != nil {
		root.Child(containerTree(t.Fork))
	}
	for _, n := range t.Suffix {
		root.Child(nodeLabel(n))
	}
	return root.String()
}

func containerTree(c *layout.Container) *tree.Tree {
	label := fmt.Sprintf("fork %s", c.Key)
	if c.Converges {
		label += " " + treeMutedStyle.Render("(rejoins)")
	}
	sub := tree.Root(treeForkStyle.Render(label)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(treeEnumStyle)

	if len(c.Columns) == 0 {
		sub.Child(treeMutedStyle.Render("(no columns)"))
	}
	for _, col := range c.Columns {
		branch := tree.Root(fmt.Sprintf("column %d", col.Index+1)).
			Enumerator(tree.RoundedEnumerator).
			EnumeratorStyle(treeEnumStyle)
		if len(col.Items) == 0 {
			branch.Child(treeMutedStyle.Render("(empty)"))
		}
		for _, it := range col.Items {
			if it.Node != nil {
				branch.Child(nodeLabel(it.Node))
			} else {
				branch.Child(containerTree(it.Container))
			}
		}
		sub.Child(branch)
	}
	return sub
}

func nodeLabel(n *layout.Node) string {
	label := n.Title
	if n.Title != n.ID {
		label += " " + treeMutedStyle.Render("("+n.ID+")")
	}
	if n.Content != nil {
		label += " " + treeMarkerStyle.Render("◆")
	}
	if n.Converges {
		label += " " + treeMarkerStyle.Render("⤓")
	}
	return label
}
