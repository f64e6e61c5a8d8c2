package diffview

import (
	"fmt"
	"strings"

	sgdiff "github.com/sourcegraph/go-diff/diff"
)

// ParseUnifiedDiff turns unified diff text into split-view rows. Runs of removed lines
// followed by added lines are paired row by row.
func ParseUnifiedDiff(raw []byte) ([]DiffRow, error) {
	fileDiffs, err := sgdiff.ParseMultiFileDiff(raw)
	if err != nil {
		return nil, err
	}

	rows := make([]DiffRow, 0, 64)
	for _, fd := range fileDiffs {
		path := normalizePath(fd)
		rows = append(rows, DiffRow{
			Kind:    RowFileHeader,
			OldText: fmt.Sprintf("File: %s", path),
			Path:    path,
		})

		for hunkID, h := range fd.Hunks {
			b := rowBuilder{
				path:   path,
				hunkID: hunkID,
				oldLn:  int(h.OrigStartLine),
				newLn:  int(h.NewStartLine),
			}
			b.rows = append(rows, DiffRow{
				Kind:    RowHunkHeader,
				OldText: formatHunkHeader(h),
				Path:    path,
				HunkID:  hunkID,
			})
			if err := b.consume(splitHunkBody(h.Body)); err != nil {
				return nil, err
			}
			rows = b.rows
		}
	}
	return rows, nil
}

type rowBuilder struct {
	path   string
	hunkID int
	oldLn  int
	newLn  int
	rows   []DiffRow
}

func (b *rowBuilder) consume(lines []string) error {
	for i := 0; i < len(lines); {
		line := lines[i]
		if line == "" {
			i++
			continue
		}
		switch line[0] {
		case ' ':
			b.context(line[1:])
			i++
		case '-':
			dels, next := takeRun(lines, i, '-')
			adds, next := takeRun(lines, next, '+')
			b.edits(dels, adds)
			i = next
		case '+':
			adds, next := takeRun(lines, i, '+')
			b.edits(nil, adds)
			i = next
		case '\\':
			// "\ No newline at end of file"
			i++
		default:
			return fmt.Errorf("unexpected hunk line prefix %q", line)
		}
	}
	return nil
}

func (b *rowBuilder) context(text string) {
	b.rows = append(b.rows, DiffRow{
		Kind:    RowContext,
		OldLine: linePtr(b.oldLn),
		NewLine: linePtr(b.newLn),
		OldText: text,
		NewText: text,
		Path:    b.path,
		HunkID:  b.hunkID,
	})
	b.oldLn++
	b.newLn++
}

func (b *rowBuilder) edits(dels, adds []string) {
	for i := 0; i < maxInt(len(dels), len(adds)); i++ {
		row := DiffRow{Path: b.path, HunkID: b.hunkID}
		hasDel := i < len(dels)
		hasAdd := i < len(adds)
		if hasDel {
			row.OldLine = linePtr(b.oldLn)
			row.OldText = dels[i]
			b.oldLn++
		}
		if hasAdd {
			row.NewLine = linePtr(b.newLn)
			row.NewText = adds[i]
			b.newLn++
		}
		switch {
		case hasDel && hasAdd:
			row.Kind = RowChange
		case hasDel:
			row.Kind = RowDelete
		default:
			row.Kind = RowAdd
		}
		b.rows = append(b.rows, row)
	}
}

// takeRun collects consecutive lines starting at i with the given prefix, stripped.
func takeRun(lines []string, i int, prefix byte) ([]string, int) {
	var run []string
	for ; i < len(lines) && len(lines[i]) > 0 && lines[i][0] == prefix; i++ {
		run = append(run, lines[i][1:])
	}
	return run, i
}

func formatHunkHeader(h *sgdiff.Hunk) string {
	header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OrigStartLine, h.OrigLines, h.NewStartLine, h.NewLines)
	if h.Section != "" {
		header += " " + h.Section
	}
	return header
}

func normalizePath(fd *sgdiff.FileDiff) string {
	path := fd.NewName
	if path == "" || path == "/dev/null" {
		path = fd.OrigName
	}
	path = strings.TrimSpace(path)
	path = strings.TrimPrefix(path, "a/")
	path = strings.TrimPrefix(path, "b/")
	return path
}

func splitHunkBody(body []byte) []string {
	lines := strings.Split(strings.ReplaceAll(string(body), "\r\n", "\n"), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func linePtr(n int) *int {
	v := n
	return &v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
