package diffview

import (
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

func intPtr(n int) *int {
	return &n
}

func TestRenderSplitMarksCursorAndFitsWidth(t *testing.T) {
	rows := []DiffRow{
		{Kind: RowHunkHeader, Path: "a.txt", OldText: "@@ -1,3 +1,1 @@ line 1 kept head"},
		{Kind: RowContext, Path: "a.txt", OldLine: intPtr(1), NewLine: intPtr(1), OldText: "before", NewText: "before"},
		{Kind: RowDelete, Path: "a.txt", OldLine: intPtr(2), OldText: "<<<<<<< HEAD"},
	}

	oldLines, newLines := RenderSplit(rows, 30, 24, 1)
	if len(oldLines) != len(rows) || len(newLines) != len(rows) {
		t.Fatalf("line counts mismatch old=%d new=%d rows=%d", len(oldLines), len(newLines), len(rows))
	}

	if !strings.HasPrefix(stripANSI(oldLines[1]), "▸ ") {
		t.Fatalf("expected cursor marker on old row 1, got %q", oldLines[1])
	}
	if strings.HasPrefix(stripANSI(oldLines[0]), "▸") {
		t.Fatalf("cursor marker on wrong row: %q", oldLines[0])
	}

	for i := range rows {
		if w := lipgloss.Width(oldLines[i]); w != 30 {
			t.Fatalf("old line %d width = %d, want 30: %q", i, w, oldLines[i])
		}
		if w := lipgloss.Width(newLines[i]); w != 24 {
			t.Fatalf("new line %d width = %d, want 24: %q", i, w, newLines[i])
		}
	}
}

func TestRenderSplitDeleteRowsLeaveNewSideBlank(t *testing.T) {
	rows := []DiffRow{
		{Kind: RowDelete, Path: "a.txt", OldLine: intPtr(5), OldText: "======="},
		{Kind: RowAdd, Path: "a.txt", NewLine: intPtr(8), NewText: "new"},
	}

	oldLines, newLines := RenderSplit(rows, 40, 40, -1)
	if got := stripANSI(oldLines[0]); !strings.Contains(got, "-   5 =======") {
		t.Fatalf("expected removed marker in old pane, got %q", got)
	}
	if got := stripANSI(newLines[0]); strings.TrimSpace(got) != "" {
		t.Fatalf("expected blank new-side delete row, got %q", got)
	}
	if got := stripANSI(newLines[1]); !strings.Contains(got, "+   8 new") {
		t.Fatalf("expected added marker in new pane, got %q", got)
	}
}

func TestRenderSplitTruncatesLongLines(t *testing.T) {
	rows := []DiffRow{
		{Kind: RowContext, Path: "a.txt", OldLine: intPtr(1), NewLine: intPtr(1), OldText: strings.Repeat("x", 200), NewText: strings.Repeat("x", 200)},
	}

	oldLines, _ := RenderSplit(rows, 20, 20, 0)
	if w := lipgloss.Width(oldLines[0]); w != 20 {
		t.Fatalf("width = %d, want 20", w)
	}
}

func TestExpandTabs(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"\tx", "    x"},
		{"ab\tc", "ab  c"},
		{"abcd\te", "abcd    e"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := expandTabs(tt.in); got != tt.want {
			t.Fatalf("expandTabs(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSyntaxSpansClassifyGoKeywordsAndStrings(t *testing.T) {
	text := `if n == 1 { return "x" }`
	spans := syntaxSpans("example.go", text)
	if len(spans) == 0 {
		t.Fatalf("expected syntax spans for Go file")
	}

	var joined strings.Builder
	hasKeyword, hasString := false, false
	for _, span := range spans {
		joined.WriteString(span.Text)
		switch span.Class {
		case classKeyword:
			hasKeyword = true
		case classString:
			hasString = true
		}
	}
	if joined.String() != text {
		t.Fatalf("spans do not reproduce the line: %q", joined.String())
	}
	if !hasKeyword || !hasString {
		t.Fatalf("expected keyword and string spans, got %+v", spans)
	}
}

func TestSyntaxSpansUnknownExtension(t *testing.T) {
	if spans := syntaxSpans("notes.unknownext", "if x { return }"); spans != nil {
		t.Fatalf("expected no spans for unknown file type, got %+v", spans)
	}
	if got := highlight("notes.unknownext", "plain text"); got != "plain text" {
		t.Fatalf("highlight() = %q", got)
	}
}
