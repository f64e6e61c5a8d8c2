package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Record formats the decision line downstream tooling parses. Offset and side are the
// stable fields.
func Record(e Entry) string {
	return fmt.Sprintf("Resolved conflict at line %d: KEPT %s (%s)", e.Offset, strings.ToUpper(string(e.Side)), e.Label())
}

// WriteText writes one record per entry. With withPath set every record is prefixed by
// the file it belongs to.
func WriteText(w io.Writer, entries []Entry, withPath bool) error {
	for _, e := range entries {
		line := Record(e)
		if withPath {
			line = e.Path + ": " + line
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func WriteJSON(w io.Writer, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// Summary is the closing line printed after all records.
func Summary(entries []Entry, files int, dryRun bool) string {
	heads := 0
	for _, e := range entries {
		if e.Side == SideHead {
			heads++
		}
	}
	verb := "Resolved"
	if dryRun {
		verb = "Would resolve"
	}
	return fmt.Sprintf("%s %d conflict(s) in %d file(s): %d head, %d theirs", verb, len(entries), files, heads, len(entries)-heads)
}
