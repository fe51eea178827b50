package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/matzehuels/scenedoc/pkg/doc"
	"github.com/matzehuels/scenedoc/pkg/render/outline"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var depth int

	cmd := &cobra.Command{
		Use:   "inspect <document>",
		Short: "Print a document as a tree",
		Long: `Print every node of a document with its type, size, first solid fill and
text. Hidden nodes are struck through.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := readDocument(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printKeyValue(w, "Document", args[0])
			printKeyValue(w, "Version", strconv.Itoa(d.Version))
			printKeyValue(w, "Nodes", strconv.Itoa(d.Count()))
			fmt.Fprintln(w)
			renderTree(w, d, depth)
			return nil
		},
	}

	cmd.Flags().IntVarP(&depth, "depth", "d", 0, "levels below each root to show (0 = all)")
	return cmd
}

func renderTree(w io.Writer, d doc.Document, depth int) {
	for i := range d.Nodes {
		t := nodeTree(&d.Nodes[i], 0, depth).
			Enumerator(tree.RoundedEnumerator).
			EnumeratorStyle(StyleDim)
		fmt.Fprintln(w, t.String())
	}
}

func nodeTree(n *doc.Node, level, depth int) *tree.Tree {
	t := tree.Root(describeNode(n))
	if depth > 0 && level >= depth {
		if len(n.Children) > 0 {
			t.Child(StyleDim.Render(fmt.Sprintf("… %d more", n.Count()-1)))
		}
		return t
	}
	for i := range n.Children {
		c := &n.Children[i]
		if len(c.Children) == 0 {
			t.Child(describeNode(c))
			continue
		}
		t.Child(nodeTree(c, level+1, depth))
	}
	return t
}

// describeNode renders one node line: name, type, size, fill swatch and a
// text excerpt.
func describeNode(n *doc.Node) string {
	nameStyle := lipgloss.NewStyle().Bold(true)
	if !n.IsVisible() {
		nameStyle = styleHidden
	}
	typ := n.Type
	if typ == "" {
		typ = doc.DefaultType
	}

	parts := []string{nameStyle.Render(n.Name), StyleType.Render(string(typ))}
	if w, h, hasW, hasH := n.Size(); hasW || hasH {
		parts = append(parts, StyleDim.Render(sizeString(w, h, hasW, hasH)))
	}
	if c, ok := outline.FillColor(*n); ok {
		parts = append(parts, swatch(c))
	}
	if n.Typography != nil && n.Typography.Characters != "" {
		parts = append(parts, StyleValue.Render(strconv.Quote(excerpt(n.Typography.Characters, 32))))
	}
	return strings.Join(parts, " ")
}

func sizeString(w, h float64, hasW, hasH bool) string {
	f := func(v float64, ok bool) string {
		if !ok {
			return "auto"
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return f(w, hasW) + "×" + f(h, hasH)
}

func excerpt(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
