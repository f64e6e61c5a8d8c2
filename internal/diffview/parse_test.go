package diffview

import "testing"

func TestParseUnifiedDiffPairsDeleteAndAddRuns(t *testing.T) {
	raw := []byte(`diff --git a/sample.txt b/sample.txt
index 1111111..2222222 100644
--- a/sample.txt
+++ b/sample.txt
@@ -1,4 +1,5 @@
 keep
-oldA
-oldB
+newA
+newB
+newC
 tail
`)

	rows, err := ParseUnifiedDiff(raw)
	if err != nil {
		t.Fatalf("ParseUnifiedDiff returned error: %v", err)
	}
	if len(rows) != 7 {
		t.Fatalf("expected 7 rows, got %d", len(rows))
	}
	if rows[0].Kind != RowFileHeader || rows[0].Path != "sample.txt" {
		t.Fatalf("unexpected file header %+v", rows[0])
	}
	if rows[1].Kind != RowHunkHeader {
		t.Fatalf("row 1 kind = %v, want RowHunkHeader", rows[1].Kind)
	}

	content := rows[2:]
	wantKinds := []RowKind{RowContext, RowChange, RowChange, RowAdd, RowContext}
	for i, want := range wantKinds {
		if got := content[i].Kind; got != want {
			t.Fatalf("row %d kind = %v, want %v", i, got, want)
		}
	}

	assertLine(t, content[0].OldLine, 1)
	assertLine(t, content[0].NewLine, 1)
	assertLine(t, content[1].OldLine, 2)
	assertLine(t, content[1].NewLine, 2)
	assertLine(t, content[2].OldLine, 3)
	assertLine(t, content[2].NewLine, 3)
	if content[3].OldLine != nil {
		t.Fatalf("expected add row old line to be nil, got %d", *content[3].OldLine)
	}
	assertLine(t, content[3].NewLine, 4)
	assertLine(t, content[4].OldLine, 4)
	assertLine(t, content[4].NewLine, 5)
}

func TestParseUnifiedDiffDeleteOnlyRuns(t *testing.T) {
	raw := []byte(`diff --git a/x.go b/x.go
--- a/x.go
+++ b/x.go
@@ -1,5 +1,2 @@ line 1 kept head
 a
-<<<<<<< HEAD
 b
-=======
-c
`)

	rows, err := ParseUnifiedDiff(raw)
	if err != nil {
		t.Fatalf("ParseUnifiedDiff returned error: %v", err)
	}
	if got, want := rows[1].OldText, "@@ -1,5 +1,2 @@ line 1 kept head"; got != want {
		t.Fatalf("hunk header = %q, want %q", got, want)
	}

	content := rows[2:]
	if len(content) != 5 {
		t.Fatalf("expected 5 content rows, got %d", len(content))
	}
	if content[1].Kind != RowDelete || content[1].NewLine != nil {
		t.Fatalf("marker row should be a pure delete: %+v", content[1])
	}
	assertLine(t, content[2].OldLine, 3)
	assertLine(t, content[2].NewLine, 2)
	if content[4].Kind != RowDelete || content[4].OldText != "c" {
		t.Fatalf("unexpected last row %+v", content[4])
	}
}

func assertLine(t *testing.T, got *int, want int) {
	t.Helper()
	if got == nil {
		t.Fatalf("line = nil, want %d", want)
	}
	if *got != want {
		t.Fatalf("line = %d, want %d", *got, want)
	}
}
