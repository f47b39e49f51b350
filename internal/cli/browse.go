package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowdiagram/pkg/errors"
	"github.com/matzehuels/flowdiagram/pkg/flow/layout"
	"github.com/matzehuels/flowdiagram/pkg/flow/sink"
	flowio "github.com/matzehuels/flowdiagram/pkg/io"
)

// browseCommand creates the browse command: an interactive list of the
// definitions in a directory with a live outline of the selected one.
func (c *CLI) browseCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "browse [dir]",
		Short: "Browse the flow definitions in a directory",
		Long: `Browse the flow definitions in a directory.

The left pane lists every definition file; the right pane shows the layout
outline of the selected one. Press enter to render the selection with the
configured defaults, next to its source file.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeDirs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return c.runBrowse(cmd, dir, noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching when rendering the selection")
	return cmd
}

func (c *CLI) runBrowse(cmd *cobra.Command, dir string, noCache bool) error {
	docs, err := flowio.ReadDir(dir)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		printInfo("No definition files in %s", dir)
		return nil
	}

	ctx := cmd.Context()
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := c.defaultOptions()
	preview := func(doc *flowio.Document) (string, layout.Stats, error) {
		p, err := runner.Parse(ctx, doc)
		if err != nil {
			return "", layout.Stats{}, err
		}
		tree, err := runner.Layout(ctx, p, opts)
		if err != nil {
			return "", layout.Stats{}, err
		}
		return sink.RenderTree(tree, doc.DisplayTitle()), tree.Stats(), nil
	}

	model := newBrowseModel(docs, preview)
	final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}

	selected := final.(browseModel).selected
	if selected == nil {
		return nil
	}
	if _, _, err := model.previewFor(selected); err != nil {
		printWarning("%s does not parse", selected.Name)
		return err
	}
	target := outputTarget{base: basePath(dir+"/", "", selected.Name)}
	return c.renderDocument(ctx, runner, selected, opts, []string{opts.VizType}, target)
}

// =============================================================================
// browseModel - document list with outline preview
// =============================================================================

// previewFunc lays out a document and returns its terminal outline.
type previewFunc func(*flowio.Document) (string, layout.Stats, error)

type browseKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Select   key.Binding
	Quit     key.Binding
}

var browseKeys = browseKeyMap{
	Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "scroll up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", " "), key.WithHelp("pgdn", "scroll down")),
	Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("⏎", "render")),
	Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// previewResult memoizes one document's preview.
type previewResult struct {
	outline string
	stats   layout.Stats
	err     error
}

type browseModel struct {
	docs     []*flowio.Document
	cursor   int
	offset   int
	rows     int // visible list rows
	width    int
	preview  viewport.Model
	render   previewFunc
	cache    map[*flowio.Document]*previewResult
	selected *flowio.Document
}

const (
	browseChrome  = 6  // title, help line and table borders
	browseMinRows = 3  // smallest list height
	browseListW   = 48 // list pane width including borders
)

var (
	browseHeaderStyle   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	browseCurrentStyle  = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	browseBrokenStyle   = lipgloss.NewStyle().Foreground(colorRed)
	browsePreviewBorder = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

func newBrowseModel(docs []*flowio.Document, render previewFunc) browseModel {
	m := browseModel{
		docs:   docs,
		rows:   15,
		width:  120,
		render: render,
		cache:  make(map[*flowio.Document]*previewResult, len(docs)),
	}
	m.preview.Width = m.previewWidth()
	m.preview.Height = m.rows
	m.refreshPreview()
	return m
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, browseKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, browseKeys.Up):
			m.move(-1)
		case key.Matches(msg, browseKeys.Down):
			m.move(1)
		case key.Matches(msg, browseKeys.PageUp):
			m.scroll(-m.preview.Height)
		case key.Matches(msg, browseKeys.PageDown):
			m.scroll(m.preview.Height)
		case key.Matches(msg, browseKeys.Select):
			m.selected = m.docs[m.cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.rows = max(msg.Height-browseChrome, browseMinRows)
		m.width = msg.Width
		m.preview.Width = m.previewWidth()
		m.preview.Height = m.rows
		m.clampOffset()
	}
	return m, nil
}

// move shifts the cursor by delta, keeping it visible, and loads the
// preview of the new selection.
func (m *browseModel) move(delta int) {
	next := min(max(m.cursor+delta, 0), len(m.docs)-1)
	if next == m.cursor {
		return
	}
	m.cursor = next
	m.clampOffset()
	m.refreshPreview()
}

func (m *browseModel) clampOffset() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.rows {
		m.offset = m.cursor - m.rows + 1
	}
}

// scroll moves the preview by delta lines within its content.
func (m *browseModel) scroll(delta int) {
	maxOffset := max(m.preview.TotalLineCount()-m.preview.Height, 0)
	m.preview.SetYOffset(min(max(m.preview.YOffset+delta, 0), maxOffset))
}

func (m *browseModel) previewWidth() int {
	return max(m.width-browseListW-4, 20)
}

func (m *browseModel) refreshPreview() {
	outline, _, err := m.previewFor(m.docs[m.cursor])
	if err != nil {
		outline = browseBrokenStyle.Render(errors.UserMessage(err))
	}
	m.preview.SetContent(outline)
	m.preview.GotoTop()
}

// previewFor returns the memoized preview of doc.
func (m browseModel) previewFor(doc *flowio.Document) (string, layout.Stats, error) {
	if r, ok := m.cache[doc]; ok {
		return r.outline, r.stats, r.err
	}
	outline, stats, err := m.render(doc)
	m.cache[doc] = &previewResult{outline: outline, stats: stats, err: err}
	return outline, stats, err
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Flow Definitions"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  pgup/pgdn scroll  ⏎ render  q quit"))
	b.WriteString("\n\n")

	list := m.listView()
	preview := browsePreviewBorder.Width(m.preview.Width).Render(m.preview.View())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, " ", preview))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.docs))))

	return b.String()
}

// listView renders the visible slice of the document table.
func (m browseModel) listView() string {
	end := min(m.offset+m.rows, len(m.docs))

	rows := make([][]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		doc := m.docs[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		nodes := "!"
		if _, stats, err := m.previewFor(doc); err == nil {
			nodes = strconv.Itoa(stats.Nodes)
		}
		rows = append(rows, []string{cursor, doc.Name, string(doc.Format), nodes})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Document", "Format", "Nodes").
		Rows(rows...).
		Width(browseListW).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 { // header
				return browseHeaderStyle
			}
			idx := m.offset + row
			if idx >= len(m.docs) {
				return lipgloss.NewStyle()
			}
			if _, _, err := m.previewFor(m.docs[idx]); err != nil {
				return browseBrokenStyle
			}
			if idx == m.cursor {
				return browseCurrentStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	return t.Render()
}
