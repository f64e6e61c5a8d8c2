package report

import (
	"time"

	"mergepick/internal/resolver"
	"mergepick/internal/rewrite"
)

type Side string

const (
	SideHead   Side = "head"
	SideTheirs Side = "theirs"
)

func sideOf(s resolver.Side) Side {
	if s == resolver.KeepHead {
		return SideHead
	}
	return SideTheirs
}

// Entry is one resolved conflict block.
type Entry struct {
	Path        string    `json:"path"`
	Offset      int       `json:"offset"`
	Side        Side      `json:"side"`
	Ref         string    `json:"ref,omitempty"`
	HeadLines   int       `json:"head_lines"`
	TheirsLines int       `json:"theirs_lines"`
	ResolvedAt  time.Time `json:"resolved_at"`
}

// Label is the section name the positional rule assumes for the side.
func (e Entry) Label() string {
	if e.Side == SideHead {
		return "Imports"
	}
	return "Body"
}

func NewEntry(path string, d resolver.Decision, at time.Time) Entry {
	return Entry{
		Path:        path,
		Offset:      d.Offset,
		Side:        sideOf(d.Side),
		Ref:         d.Block.Ref,
		HeadLines:   len(d.Block.Head),
		TheirsLines: len(d.Block.Theirs),
		ResolvedAt:  at,
	}
}

// FromFiles flattens the decisions of every planned file in scan order.
func FromFiles(files []rewrite.File, at time.Time) []Entry {
	var out []Entry
	for _, f := range files {
		for _, d := range f.Result.Decisions {
			out = append(out, NewEntry(f.Path, d, at))
		}
	}
	return out
}
