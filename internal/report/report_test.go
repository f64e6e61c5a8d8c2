package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mergepick/internal/resolver"
	"mergepick/internal/rewrite"
)

var fixedTime = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func plannedFiles(t *testing.T) []rewrite.File {
	t.Helper()
	in := []string{"a\n", "<<<<<<< HEAD\n", "b\n", "=======\n", "c\n", "c2\n", ">>>>>>> feature/x\n"}
	for i := 0; i < 100; i++ {
		in = append(in, "pad\n")
	}
	in = append(in, "<<<<<<< HEAD\n", "=======\n", "z\n", ">>>>>>>\n")

	res, err := resolver.Default().Resolve(in)
	require.NoError(t, err)
	return []rewrite.File{{Path: "src/task.ts", Result: res}}
}

func TestRecordMatchesDecisionFormat(t *testing.T) {
	entries := FromFiles(plannedFiles(t), fixedTime)
	require.Len(t, entries, 2)

	assert.Equal(t, "Resolved conflict at line 1: KEPT HEAD (Imports)", Record(entries[0]))
	assert.Equal(t, "Resolved conflict at line 107: KEPT THEIRS (Body)", Record(entries[1]))

	assert.Equal(t, "feature/x", entries[0].Ref)
	assert.Equal(t, 1, entries[0].HeadLines)
	assert.Equal(t, 2, entries[0].TheirsLines)
	assert.Empty(t, entries[1].Ref)
}

func TestWriteText(t *testing.T) {
	entries := FromFiles(plannedFiles(t), fixedTime)

	var plain bytes.Buffer
	require.NoError(t, WriteText(&plain, entries, false))
	assert.Equal(t,
		"Resolved conflict at line 1: KEPT HEAD (Imports)\nResolved conflict at line 107: KEPT THEIRS (Body)\n",
		plain.String())

	var prefixed bytes.Buffer
	require.NoError(t, WriteText(&prefixed, entries[:1], true))
	assert.Equal(t, "src/task.ts: Resolved conflict at line 1: KEPT HEAD (Imports)\n", prefixed.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, FromFiles(plannedFiles(t), fixedTime)))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "src/task.ts", decoded[0]["path"])
	assert.Equal(t, float64(1), decoded[0]["offset"])
	assert.Equal(t, "head", decoded[0]["side"])
	assert.Equal(t, "theirs", decoded[1]["side"])
	assert.NotContains(t, decoded[1], "ref")

	buf.Reset()
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestSummary(t *testing.T) {
	entries := FromFiles(plannedFiles(t), fixedTime)
	assert.Equal(t, "Resolved 2 conflict(s) in 1 file(s): 1 head, 1 theirs", Summary(entries, 1, false))
	assert.Equal(t, "Would resolve 0 conflict(s) in 3 file(s): 0 head, 0 theirs", Summary(nil, 3, true))
}

func TestStoreRoundTripsLastRun(t *testing.T) {
	store := NewStore(t.TempDir())

	empty, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, empty)

	entries := FromFiles(plannedFiles(t), fixedTime)
	require.NoError(t, store.Save(entries))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, entries[1].Offset, loaded[1].Offset)
	assert.True(t, loaded[0].ResolvedAt.Equal(fixedTime))
}

func TestStoreSaveReplacesPreviousRun(t *testing.T) {
	gitDir := t.TempDir()
	store := NewStore(gitDir)
	entries := FromFiles(plannedFiles(t), fixedTime)

	require.NoError(t, store.Save(entries))
	require.NoError(t, store.Save(entries[:1]))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	dirEntries, err := os.ReadDir(filepath.Dir(store.Path()))
	require.NoError(t, err)
	require.Len(t, dirEntries, 1, "temp files left behind")
	assert.Equal(t, "last-run.json", dirEntries[0].Name())
}
