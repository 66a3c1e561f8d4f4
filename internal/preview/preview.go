//nolint:revive // TUI code - interactive model patterns require specific structure
package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gada-doc/gada/internal/asciidoc"
)

// outlineEntry is one flattened, indented TOC line plus the section id it
// jumps to, built from asciidoc.TOCEntry by flattenOutline.
type outlineEntry struct {
	label string
	id    string
	level int
}

// flattenOutline walks a TOC tree depth-first into a flat, display-ordered
// slice, indenting each entry's label by its level so the sidebar can
// render it as a single scrolling list rather than a nested widget.
func flattenOutline(entries []*asciidoc.TOCEntry) []outlineEntry {
	var out []outlineEntry
	var walk func(es []*asciidoc.TOCEntry)
	walk = func(es []*asciidoc.TOCEntry) {
		for _, e := range es {
			indent := strings.Repeat("  ", maxInt(0, e.Level-1))
			out = append(out, outlineEntry{
				label: indent + asciidoc.PlainText(e.Title),
				id:    e.ID,
				level: e.Level,
			})
			walk(e.Children)
		}
	}
	walk(entries)
	return out
}

// SectionOffset resolves a rendered document's section anchors to line
// offsets within the rendered text, so selecting an outline entry can
// scroll the viewport to it. Backends populate this by emitting an HTML
// comment or other unambiguous marker at each section boundary; a
// renderer that embeds no such markers leaves lookups falling back to the
// anchor id's first literal occurrence.
type SectionOffset func(rendered string, id string) int

// Model is a split-pane preview: a scrollable rendered-output viewport on
// the right and a section-outline sidebar (built from the document's
// table of contents) on the left. Selecting an outline entry scrolls the
// viewport to that section.
type Model struct {
	doc      *asciidoc.Document
	rendered string
	outline  []outlineEntry
	resolve  SectionOffset

	cursor   int
	sidebarW int
	width    int
	height   int

	focusSidebar     bool
	countPrefixState CountPrefixState
	viewport         viewport.Model
	ready            bool
	result           *ActionResult
}

// NewModel builds a preview Model for doc, whose rendered form is the
// output of asciidoc.Render(doc, backend). resolve may be nil, in which
// case jumping scrolls to the first line containing the section's id.
func NewModel(doc *asciidoc.Document, rendered string, resolve SectionOffset) *Model {
	toc := asciidoc.BuildTOC(doc.Sections, tocDepthFor(doc))
	return &Model{
		doc:      doc,
		rendered: rendered,
		outline:  flattenOutline(toc),
		resolve:  resolve,
		sidebarW: defaultSidebarWidth,
	}
}

const defaultSidebarWidth = 28

// tocDepthFor mirrors the toclevels default (2) used by BuildTOC
// elsewhere in the evaluator, so the sidebar and a rendered TOC macro
// agree on depth.
func tocDepthFor(doc *asciidoc.Document) int {
	if lv, ok := doc.Attributes["toclevels"]; ok {
		var n int
		if _, err := fmt.Sscanf(lv, "%d", &n); err == nil && n > 0 {
			return n
		}
	}
	return 2
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpWidth := maxInt(10, m.width-m.sidebarW-1)
		if !m.ready {
			m.viewport = viewport.New(vpWidth, m.height)
			m.viewport.SetContent(m.rendered)
			m.ready = true
		} else {
			m.viewport.Width = vpWidth
			m.viewport.Height = m.height
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "q", keyCtrlC:
		m.result = &ActionResult{Quit: true}
		return m, tea.Quit
	case keyEsc:
		if m.countPrefixState.IsActive() {
			m.countPrefixState.Reset()
			return m, nil
		}
		m.result = &ActionResult{Cancelled: true}
		return m, tea.Quit
	case "tab":
		m.focusSidebar = !m.focusSidebar
		return m, nil
	case "enter":
		if m.focusSidebar && len(m.outline) > 0 {
			m.jumpToCursor()
		}
		return m, nil
	}

	if m.focusSidebar {
		count, isNavKey, handled := m.countPrefixState.HandleKey(msg)
		if handled && isNavKey {
			switch key {
			case keyUp, keyK:
				m.cursor = maxInt(0, m.cursor-count)
			case keyDown, keyJ:
				m.cursor = minInt(len(m.outline)-1, m.cursor+count)
			}
			return m, nil
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// jumpToCursor scrolls the viewport so the outline entry under the
// cursor's rendered section is visible.
func (m *Model) jumpToCursor() {
	entry := m.outline[m.cursor]
	var offset int
	if m.resolve != nil {
		offset = m.resolve(m.rendered, entry.id)
	} else {
		offset = firstLineContaining(m.rendered, entry.id)
	}
	if offset >= 0 {
		m.viewport.SetYOffset(offset)
		m.result = &ActionResult{ID: entry.id, JumpRequested: true}
	}
}

func firstLineContaining(rendered, needle string) int {
	if needle == "" {
		return -1
	}
	lines := strings.Split(rendered, "\n")
	for i, l := range lines {
		if strings.Contains(l, needle) {
			return i
		}
	}
	return -1
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return "loading preview...\n"
	}

	sidebar := m.renderSidebar()
	pane := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, m.viewport.View())
	help := HelpStyle().Render("tab: switch pane | j/k: move | enter: jump | q: quit")
	return pane + "\n" + help
}

func (m *Model) renderSidebar() string {
	var sb strings.Builder
	sb.WriteString(TitleStyle().Render("Outline"))
	sb.WriteString("\n")

	for i, e := range m.outline {
		line := TruncateString(e.label, m.sidebarW-2)
		if i == m.cursor && m.focusSidebar {
			sb.WriteString(SelectedStyle().Render(line))
		} else {
			sb.WriteString(ChoiceStyle().Render(line))
		}
		sb.WriteString("\n")
	}

	return lipgloss.NewStyle().
		Width(m.sidebarW).
		Height(m.height).
		Border(lipgloss.NormalBorder(), false, true, false, false).
		Render(sb.String())
}

// Result returns the final ActionResult after the program exits, or nil
// if the user quit without an action.
func (m *Model) Result() *ActionResult {
	return m.result
}

// Run runs the preview Model as a full-screen bubbletea program.
func Run(doc *asciidoc.Document, rendered string, resolve SectionOffset) (*ActionResult, error) {
	m := NewModel(doc, rendered, resolve)
	prog := tea.NewProgram(m, tea.WithAltScreen())
	final, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("error running preview: %w", err)
	}
	if fm, ok := final.(*Model); ok {
		return fm.result, nil
	}
	return nil, nil
}
