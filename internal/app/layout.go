package app

// layout holds content sizes, borders excluded.
type layout struct {
	listW int
	oldW  int
	newW  int
	bodyH int
}

// footerHeight is the help line plus the status line.
const footerHeight = 2

func computeLayout(totalWidth, totalHeight, desiredList int, hideList bool) layout {
	listW, rightW := paneWidths(totalWidth, desiredList, hideList)
	oldW, newW := splitRightPanes(rightW)
	// Top and bottom borders.
	bodyH := totalHeight - footerHeight - 2
	if bodyH < 1 {
		bodyH = 1
	}
	return layout{listW: listW, oldW: oldW, newW: newW, bodyH: bodyH}
}

// paneWidths splits the total width between the decision list and the diff area.
// Border overhead:
//
//	list pane => 2 (left+right)
//	diff panes => 3 (outer left + shared divider + outer right)
func paneWidths(totalWidth int, desiredLeft int, hideLeft bool) (int, int) {
	if hideLeft {
		available := totalWidth - 3
		if available < 1 {
			return 0, 1
		}
		return 0, available
	}

	available := totalWidth - 5
	if available < 2 {
		return 1, 1
	}

	left := desiredLeft
	if left < 1 {
		left = 1
	}
	if left > available-1 {
		left = available - 1
	}
	right := available - left
	if right < 1 {
		right = 1
		left = available - right
	}
	return left, right
}

func splitRightPanes(totalWidth int) (int, int) {
	if totalWidth <= 1 {
		return 1, 1
	}
	left := totalWidth / 2
	right := totalWidth - left
	if left < 1 {
		left = 1
	}
	return left, right
}
