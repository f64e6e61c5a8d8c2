package diffview

import (
	"fmt"
	"strings"

	sgdiff "github.com/sourcegraph/go-diff/diff"

	"mergepick/internal/resolver"
)

// BuildFileDiff describes a resolution as a unified diff: marker lines and the dropped
// side are removed, the kept side stays as context. Blocks whose context windows touch
// share one hunk. Returns nil when nothing was resolved.
func BuildFileDiff(path string, original []string, res resolver.Result, context int) *sgdiff.FileDiff {
	if len(res.Decisions) == 0 {
		return nil
	}
	if context < 0 {
		context = 0
	}

	fd := &sgdiff.FileDiff{
		OrigName: "a/" + path,
		NewName:  "b/" + path,
		Extended: []string{fmt.Sprintf("diff --git a/%s b/%s", path, path)},
	}

	removedBefore := 0
	for _, group := range groupDecisions(res.Decisions, context) {
		first, last := group[0].Block, group[len(group)-1].Block
		from := maxInt(0, first.Start-context)
		to := minInt(len(original)-1, last.End+context)

		var body strings.Builder
		var origLines, newLines int32
		removed := 0
		line := from
		for _, d := range group {
			for ; line < d.Block.Start; line++ {
				writeBodyLine(&body, ' ', original[line])
				origLines++
				newLines++
			}
			for ; line <= d.Block.End; line++ {
				if keepsLine(d, line) {
					writeBodyLine(&body, ' ', original[line])
					newLines++
				} else {
					writeBodyLine(&body, '-', original[line])
					removed++
				}
				origLines++
			}
		}
		for ; line <= to; line++ {
			writeBodyLine(&body, ' ', original[line])
			origLines++
			newLines++
		}

		fd.Hunks = append(fd.Hunks, &sgdiff.Hunk{
			OrigStartLine: int32(from + 1),
			OrigLines:     origLines,
			NewStartLine:  int32(from - removedBefore + 1),
			NewLines:      newLines,
			Section:       hunkSection(group),
			Body:          []byte(body.String()),
		})
		removedBefore += removed
	}
	return fd
}

// UnifiedDiff prints file diffs in git's unified format, skipping nil entries.
func UnifiedDiff(diffs ...*sgdiff.FileDiff) ([]byte, error) {
	nonNil := make([]*sgdiff.FileDiff, 0, len(diffs))
	for _, fd := range diffs {
		if fd != nil {
			nonNil = append(nonNil, fd)
		}
	}
	if len(nonNil) == 0 {
		return nil, nil
	}
	return sgdiff.PrintMultiFileDiff(nonNil)
}

func groupDecisions(decisions []resolver.Decision, context int) [][]resolver.Decision {
	var groups [][]resolver.Decision
	for _, d := range decisions {
		if n := len(groups); n > 0 {
			prev := groups[n-1][len(groups[n-1])-1]
			if d.Block.Start-prev.Block.End-1 <= 2*context {
				groups[n-1] = append(groups[n-1], d)
				continue
			}
		}
		groups = append(groups, []resolver.Decision{d})
	}
	return groups
}

// keepsLine reports whether original line offset survives the decision.
func keepsLine(d resolver.Decision, offset int) bool {
	b := d.Block
	if d.Side == resolver.KeepHead {
		return offset > b.Start && offset < b.Separator
	}
	return offset > b.Separator && offset < b.End
}

func hunkSection(group []resolver.Decision) string {
	parts := make([]string, 0, len(group))
	for _, d := range group {
		parts = append(parts, fmt.Sprintf("line %d kept %s", d.Offset, d.Side))
	}
	return strings.Join(parts, ", ")
}

// Terminators are normalised to "\n"; the preview does not track missing final
// newlines or CRLF endings.
func writeBodyLine(b *strings.Builder, prefix byte, line string) {
	b.WriteByte(prefix)
	b.WriteString(strings.TrimRight(line, "\r\n"))
	b.WriteByte('\n')
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// PreviewRows renders the given file diffs into split-view rows.
func PreviewRows(diffs ...*sgdiff.FileDiff) ([]DiffRow, error) {
	raw, err := UnifiedDiff(diffs...)
	if err != nil || raw == nil {
		return nil, err
	}
	return ParseUnifiedDiff(raw)
}
