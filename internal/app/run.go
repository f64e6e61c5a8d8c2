package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Review shows the planned resolutions full screen and reports whether the user accepted
// them.
func Review(files []FileReview, opts ...tea.ProgramOption) (bool, error) {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	final, err := tea.NewProgram(NewModel(files), opts...).Run()
	if err != nil {
		return false, fmt.Errorf("review screen: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return false, fmt.Errorf("review screen returned %T", final)
	}
	return m.Accepted(), nil
}
