// Package list provides list display components for the TUI.
package list

import tea "github.com/charmbracelet/bubbletea"

// cursor tracks the selected row of a list of n items.
type cursor struct {
	selected int
	n        int
}

func (c *cursor) reset(n int) {
	c.n = n
	c.selected = 0
}

func (c *cursor) up() {
	if c.selected > 0 {
		c.selected--
	}
}

func (c *cursor) down() {
	if c.selected < c.n-1 {
		c.selected++
	}
}

func (c *cursor) set(index int) {
	if index >= 0 && index < c.n {
		c.selected = index
	}
}

// handleKey moves the cursor for arrow and j/k keys.
func (c *cursor) handleKey(msg tea.Msg) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return
	}
	switch keyMsg.String() {
	case "up", "k":
		c.up()
	case "down", "j":
		c.down()
	}
}

// window returns the visible range keeping the selection on screen.
func (c *cursor) window(visible int) (start, end int) {
	if visible < 1 {
		visible = 1
	}
	if c.selected >= visible {
		start = c.selected - visible + 1
	}
	end = start + visible
	if end > c.n {
		end = c.n
	}
	return start, end
}

func truncate(s string, n int) string {
	if n < 4 {
		n = 4
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
