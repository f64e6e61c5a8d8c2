package diffview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const tabWidth = 4

var (
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true)
	lineNumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	deleteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	addStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
)

// RenderSplit renders rows into two panes of the given content widths. Both returned
// slices have one entry per row and every entry fits its width.
func RenderSplit(rows []DiffRow, oldWidth, newWidth, cursor int) ([]string, []string) {
	oldWidth = maxInt(1, oldWidth)
	newWidth = maxInt(1, newWidth)

	maxOld, maxNew := 0, 0
	for _, row := range rows {
		if row.OldLine != nil && *row.OldLine > maxOld {
			maxOld = *row.OldLine
		}
		if row.NewLine != nil && *row.NewLine > maxNew {
			maxNew = *row.NewLine
		}
	}
	oldNumW := maxInt(3, digits(maxOld))
	newNumW := maxInt(3, digits(maxNew))

	oldLines := make([]string, 0, len(rows))
	newLines := make([]string, 0, len(rows))
	for i, row := range rows {
		oldLines = append(oldLines, renderRowForSide(row, SideOld, oldWidth, oldNumW, i == cursor))
		newLines = append(newLines, renderRowForSide(row, SideNew, newWidth, newNumW, i == cursor))
	}
	return oldLines, newLines
}

func renderRowForSide(row DiffRow, side Side, width, numW int, isCursor bool) string {
	prefix := "  "
	if isCursor {
		prefix = cursorStyle.Render("▸") + " "
	}
	lineWidth := maxInt(1, width-2)

	if row.IsHeader() {
		header := row.OldText
		if header == "" {
			header = row.NewText
		}
		return fit(prefix+headerStyle.Render(truncateRunes(header, lineWidth)), width)
	}

	lineNo, text, marker, ok := sideContent(row, side)
	if !ok {
		return fit(prefix, width)
	}

	num := ""
	if lineNo != nil {
		num = fmt.Sprintf("%d", *lineNo)
	}
	meta := fmt.Sprintf("%c %*s ", marker, numW, num)
	text = expandTabs(text)

	var body string
	switch {
	case marker == '-':
		body = deleteStyle.Render(text)
	case marker == '+':
		body = addStyle.Render(text)
	default:
		body = highlight(row.Path, text)
	}
	return fit(prefix+lineNumStyle.Render(meta)+body, width)
}

func sideContent(row DiffRow, side Side) (*int, string, rune, bool) {
	switch side {
	case SideOld:
		if row.OldLine == nil {
			return nil, "", ' ', false
		}
		marker := ' '
		if row.Kind == RowDelete || row.Kind == RowChange {
			marker = '-'
		}
		return row.OldLine, row.OldText, marker, true

	case SideNew:
		if row.NewLine == nil {
			return nil, "", ' ', false
		}
		marker := ' '
		if row.Kind == RowAdd || row.Kind == RowChange {
			marker = '+'
		}
		return row.NewLine, row.NewText, marker, true
	}

	return nil, "", ' ', false
}

// fit truncates s to width display cells, keeping escape sequences intact, and pads it.
func fit(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	if w := lipgloss.Width(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

func expandTabs(s string) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}

func truncateRunes(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width])
}

func digits(n int) int {
	if n <= 0 {
		return 1
	}
	d := 0
	for n > 0 {
		d++
		n /= 10
	}
	return d
}
