package diffview

type Side int

const (
	SideOld Side = iota
	SideNew
)

func (s Side) Label() string {
	if s == SideOld {
		return "conflicted"
	}
	return "resolved"
}

type RowKind int

const (
	RowContext RowKind = iota
	RowDelete
	RowAdd
	RowChange
	RowHunkHeader
	RowFileHeader
)

// DiffRow is one aligned line of the split view. OldLine/NewLine are 1-based and nil
// when the row has no line on that side.
type DiffRow struct {
	Kind    RowKind
	OldLine *int
	NewLine *int
	OldText string
	NewText string
	Path    string
	HunkID  int
}

func (r DiffRow) IsHeader() bool {
	return r.Kind == RowFileHeader || r.Kind == RowHunkHeader
}
