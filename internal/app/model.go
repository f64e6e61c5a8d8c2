package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"mergepick/internal/diffview"
	"mergepick/internal/report"
)

type focusPane int

const (
	focusFiles focusPane = iota
	focusDiff
)

const listWidthDefault = 40

// FileReview is one file's planned resolution as shown on screen.
type FileReview struct {
	Path    string
	Rows    []diffview.DiffRow
	Entries []report.Entry
}

// Model is the Bubble Tea state container for the review screen. The user either
// accepts every planned resolution or aborts; nothing is written from here.
type Model struct {
	keys  KeyMap
	focus focusPane

	width  int
	height int
	ready  bool

	files      []FileReview
	selected   int
	listW      int
	listHidden bool
	helpOpen   bool

	cursor  int
	oldView viewport.Model
	newView viewport.Model

	accepted bool
}

func NewModel(files []FileReview) Model {
	m := Model{
		keys:    defaultKeyMap(),
		focus:   focusDiff,
		files:   files,
		listW:   listWidthDefault,
		oldView: viewport.New(1, 1),
		newView: viewport.New(1, 1),
	}
	m.cursor = firstContentRow(m.rows())
	return m
}

// Accepted reports whether the user chose to write the resolutions.
func (m Model) Accepted() bool {
	return m.accepted
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.refreshDiffContent()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Abort):
			m.accepted = false
			return m, tea.Quit
		case key.Matches(msg, m.keys.Accept):
			m.accepted = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.helpOpen = !m.helpOpen
			return m, nil
		case key.Matches(msg, m.keys.ToggleFocus):
			if m.focus == focusFiles || m.listHidden {
				m.focus = focusDiff
			} else {
				m.focus = focusFiles
			}
			return m, nil
		case key.Matches(msg, m.keys.ToggleList):
			m.listHidden = !m.listHidden
			if m.listHidden {
				m.focus = focusDiff
			}
			m.refreshDiffContent()
			return m, nil
		}

		if m.focus == focusFiles {
			return m.updateFilesPane(msg)
		}
		return m.updateDiffPane(msg)
	}
	return m, nil
}

func (m Model) updateFilesPane(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next := m.selected
	switch {
	case key.Matches(msg, m.keys.Up):
		next--
	case key.Matches(msg, m.keys.Down):
		next++
	case key.Matches(msg, m.keys.Top):
		next = 0
	case key.Matches(msg, m.keys.Bottom):
		next = len(m.files) - 1
	default:
		return m, nil
	}
	m.selectFile(next)
	return m, nil
}

func (m Model) updateDiffPane(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.rows()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor--
	case key.Matches(msg, m.keys.Down):
		m.cursor++
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = len(rows) - 1
	default:
		return m, nil
	}
	m.clampCursor()
	m.refreshDiffContent()
	return m, nil
}

func (m *Model) selectFile(idx int) {
	if len(m.files) == 0 {
		return
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(m.files) {
		idx = len(m.files) - 1
	}
	if idx == m.selected {
		return
	}
	m.selected = idx
	m.cursor = firstContentRow(m.rows())
	m.oldView.GotoTop()
	m.newView.GotoTop()
	m.refreshDiffContent()
}

func (m Model) rows() []diffview.DiffRow {
	if len(m.files) == 0 {
		return nil
	}
	return m.files[m.selected].Rows
}

func (m *Model) clampCursor() {
	n := len(m.rows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) refreshDiffContent() {
	if !m.ready {
		return
	}
	l := computeLayout(m.width, m.height, m.listW, m.listHidden)
	viewH := maxInt(1, l.bodyH-2)
	m.oldView.Width, m.oldView.Height = l.oldW, viewH
	m.newView.Width, m.newView.Height = l.newW, viewH

	rows := m.rows()
	if len(rows) == 0 {
		m.oldView.SetContent("No conflicts to review.")
		m.newView.SetContent("No conflicts to review.")
		return
	}
	oldLines, newLines := diffview.RenderSplit(rows, l.oldW, l.newW, m.cursor)
	m.oldView.SetContent(strings.Join(oldLines, "\n"))
	m.newView.SetContent(strings.Join(newLines, "\n"))
	m.ensureCursorVisible()
}

func (m *Model) ensureCursorVisible() {
	height := m.oldView.Height
	if height <= 0 {
		return
	}
	if m.cursor < m.oldView.YOffset {
		m.oldView.SetYOffset(m.cursor)
		m.newView.SetYOffset(m.cursor)
		return
	}
	if bottom := m.oldView.YOffset + height - 1; m.cursor > bottom {
		next := m.cursor - height + 1
		m.oldView.SetYOffset(next)
		m.newView.SetYOffset(next)
	}
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	l := computeLayout(m.width, m.height, m.listW, m.listHidden)
	rightPane := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderDiffSidePane(l.oldW, l.bodyH, diffview.SideOld.Label(), m.oldView.View(), false),
		m.renderDiffSidePane(l.newW, l.bodyH, diffview.SideNew.Label(), m.newView.View(), true),
	)
	body := rightPane
	if !m.listHidden {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderFilesPane(l.listW, l.bodyH), rightPane)
	}

	footer := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Render(ansi.Truncate(m.helpText(), m.width, "")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true).Render(ansi.Truncate(m.statusText(), m.width, "")),
	)
	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

func (m Model) helpText() string {
	if !m.helpOpen {
		return "w write | q abort | tab focus | j/k move | g/G top/bottom | f files | ? help"
	}
	parts := make([]string, 0, len(m.keys.bindings()))
	for _, b := range m.keys.bindings() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " | ")
}

func (m Model) statusText() string {
	conflicts := 0
	for _, f := range m.files {
		conflicts += len(f.Entries)
	}
	return fmt.Sprintf("%d conflict(s) in %d file(s). Nothing is written until you press w.", conflicts, len(m.files))
}

func (m Model) renderFilesPane(width, height int) string {
	borderColor := lipgloss.Color("245")
	if m.focus == focusFiles {
		borderColor = lipgloss.Color("39")
	}

	lines := []string{lipgloss.NewStyle().Bold(true).Render("Files")}
	for i, f := range m.files {
		mark := "  "
		style := lipgloss.NewStyle()
		if i == m.selected {
			mark = "▸ "
			style = style.Foreground(lipgloss.Color("51")).Bold(true)
		}
		lines = append(lines, style.Render(ansi.Truncate(mark+f.Path, width, "…")))
		if i != m.selected {
			continue
		}
		for _, e := range f.Entries {
			lines = append(lines, ansi.Truncate("    "+decisionLabel(e), width, "…"))
		}
	}

	return lipgloss.NewStyle().
		Width(maxInt(1, width)).
		Height(maxInt(1, height)).
		Border(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Render(strings.Join(lines, "\n"))
}

func (m Model) renderDiffSidePane(width, height int, sideLabel, body string, withRightBorder bool) string {
	borderColor := lipgloss.Color("245")
	if m.focus == focusDiff {
		borderColor = lipgloss.Color("39")
	}

	paneStyle := lipgloss.NewStyle().
		Width(maxInt(1, width)).
		Height(maxInt(1, height)).
		Border(lipgloss.NormalBorder(), true, withRightBorder, true, true).
		BorderForeground(borderColor)

	title := sideLabel
	if len(m.files) > 0 {
		title += ": " + m.files[m.selected].Path
	}
	header := lipgloss.NewStyle().Bold(true).Width(maxInt(1, width)).MaxWidth(maxInt(1, width)).Render(title)
	return paneStyle.Render(header + "\n\n" + body)
}

func decisionLabel(e report.Entry) string {
	return fmt.Sprintf("line %d: %s", e.Offset, strings.ToUpper(string(e.Side)))
}

func firstContentRow(rows []diffview.DiffRow) int {
	for i, row := range rows {
		if !row.IsHeader() {
			return i
		}
	}
	return 0
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
