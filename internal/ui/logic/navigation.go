package logic

// Navigator handles cursor and viewport management for the result list
type Navigator struct {
	selectedIndex  int
	viewportOffset int
	viewportHeight int
	totalItems     int
}

// NewNavigator creates a new navigator
func NewNavigator() *Navigator {
	return &Navigator{viewportHeight: 10}
}

// UpdateState replaces the list size and viewport height, keeping the cursor in range
func (n *Navigator) UpdateState(totalItems, viewportHeight int) {
	n.totalItems = totalItems
	if viewportHeight < 1 {
		viewportHeight = 1
	}
	n.viewportHeight = viewportHeight
	n.clamp()
	n.ensureSelectedVisible()
}

// Reset moves the cursor back to the top, used when a new page arrives
func (n *Navigator) Reset(totalItems int) {
	n.totalItems = totalItems
	n.selectedIndex = 0
	n.viewportOffset = 0
}

// GetSelectedIndex returns the current selected index
func (n *Navigator) GetSelectedIndex() int {
	return n.selectedIndex
}

// GetViewportOffset returns the current viewport offset
func (n *Navigator) GetViewportOffset() int {
	return n.viewportOffset
}

// GetViewportHeight returns the number of rows the list may use
func (n *Navigator) GetViewportHeight() int {
	return n.viewportHeight
}

// SetSelectedIndex sets the selected index and ensures it's visible
func (n *Navigator) SetSelectedIndex(index int) (int, int) {
	n.selectedIndex = index
	n.clamp()
	n.ensureSelectedVisible()
	return n.selectedIndex, n.viewportOffset
}

// Navigate moves the cursor in the given direction
func (n *Navigator) Navigate(direction string) {
	switch direction {
	case "up":
		n.SetSelectedIndex(n.selectedIndex - 1)
	case "down":
		n.SetSelectedIndex(n.selectedIndex + 1)
	case "pageup":
		n.SetSelectedIndex(n.selectedIndex - n.viewportHeight)
	case "pagedown":
		n.SetSelectedIndex(n.selectedIndex + n.viewportHeight)
	case "home":
		n.SetSelectedIndex(0)
	case "end":
		n.SetSelectedIndex(n.totalItems - 1)
	}
}

// VisibleRange returns the half-open range of items inside the viewport
func (n *Navigator) VisibleRange() (int, int) {
	end := n.viewportOffset + n.viewportHeight
	if end > n.totalItems {
		end = n.totalItems
	}
	return n.viewportOffset, end
}

func (n *Navigator) clamp() {
	if n.selectedIndex >= n.totalItems {
		n.selectedIndex = n.totalItems - 1
	}
	if n.selectedIndex < 0 {
		n.selectedIndex = 0
	}
}

// ensureSelectedVisible adjusts the viewport to keep the selected item visible
func (n *Navigator) ensureSelectedVisible() {
	if n.selectedIndex < n.viewportOffset {
		n.viewportOffset = n.selectedIndex
	}
	if n.selectedIndex >= n.viewportOffset+n.viewportHeight {
		n.viewportOffset = n.selectedIndex - n.viewportHeight + 1
	}

	// Don't leave empty rows at the bottom when the list could fill them
	maxOffset := n.totalItems - n.viewportHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	if n.viewportOffset > maxOffset {
		n.viewportOffset = maxOffset
	}
	if n.viewportOffset < 0 {
		n.viewportOffset = 0
	}
}
