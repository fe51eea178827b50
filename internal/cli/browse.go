package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/scenedoc/pkg/doc"
	errs "github.com/matzehuels/scenedoc/pkg/errors"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "browse <document>",
		Short: "Pick a node interactively and print its subtree",
		Long: `Browse the node tree of a document. Pressing enter prints the selected
subtree as a standalone document on stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := readDocument(args[0])
			if err != nil {
				return err
			}
			f, err := doc.ParseFormat(format)
			if err != nil {
				return err
			}
			entries := flattenNodes(d)
			if len(entries) == 0 {
				return errs.New(errs.ErrCodeNothingProduced, "%s has no nodes", args[0])
			}

			p := tea.NewProgram(newNodeListModel(entries),
				tea.WithContext(cmd.Context()),
				tea.WithOutput(cmd.ErrOrStderr()))
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("browse: %w", err)
			}
			m := final.(nodeListModel)
			if m.Selected == nil {
				return nil
			}
			return doc.Write(cmd.OutOrStdout(), doc.NewDocument(*m.Selected), f)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(doc.FormatYAML), "output format: json or yaml")
	return cmd
}

// =============================================================================
// nodeListModel - Interactive node selection
// =============================================================================

// nodeEntry is one row of the flattened tree.
type nodeEntry struct {
	Path  string
	Depth int
	Node  *doc.Node
}

// flattenNodes lists every node of d in paint order.
func flattenNodes(d doc.Document) []nodeEntry {
	var out []nodeEntry
	for i := range d.Nodes {
		d.Nodes[i].Walk(func(path string, n *doc.Node) bool {
			out = append(out, nodeEntry{Path: path, Depth: strings.Count(path, "/"), Node: n})
			return true
		})
	}
	return out
}

// nodeListModel is the bubbletea model for interactive node selection.
type nodeListModel struct {
	Entries  []nodeEntry
	Cursor   int
	Offset   int
	Height   int
	Selected *doc.Node
}

func newNodeListModel(entries []nodeEntry) nodeListModel {
	return nodeListModel{Entries: entries, Height: 15}
}

func (m nodeListModel) Init() tea.Cmd {
	return nil
}

func (m nodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			m.Cursor = len(m.Entries) - 1
			m.Offset = max(0, m.Cursor-m.Height+1)
		case "enter":
			m.Selected = m.Entries[m.Cursor].Node
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
		if m.Cursor >= m.Offset+m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
	}
	return m, nil
}

func (m nodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Node"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Entries))
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := cursor + strings.Repeat("  ", e.Depth) + describeNode(e.Node)

		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case !e.Node.IsVisible():
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d] %s", m.Cursor+1, len(m.Entries), m.Entries[m.Cursor].Path)))
	return b.String()
}
