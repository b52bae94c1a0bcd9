package ui

import (
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"mesongui/relay"
)

// maxConsoleLines bounds the lines kept in the console; older lines are
// dropped from the front.
const maxConsoleLines = 20000

// Console is the terminal-like output area. Append and Clear may be called
// from any goroutine. They update the line buffer and request a refresh;
// the widget itself is only touched by the update queue's consumer, and
// any number of appends between two refreshes cost one redraw.
type Console struct {
	updates *relay.Queue[func()]
	list    *widget.List

	mu       sync.Mutex
	lines    []string // complete lines keep their trailing newline
	maxLines int
	pending  bool
}

// NewConsole creates a console whose widget changes run on updates.
func NewConsole(updates *relay.Queue[func()]) *Console {
	c := &Console{updates: updates, maxLines: maxConsoleLines}
	c.list = widget.NewList(c.length, c.createRow, c.updateRow)
	return c
}

// Object returns the canvas object to place in a layout.
func (c *Console) Object() fyne.CanvasObject {
	return c.list
}

// Append adds msg to the end of the console and scrolls to it. A message
// without a trailing newline leaves the last line open for the next one.
func (c *Console) Append(msg string) {
	if msg == "" {
		return
	}
	c.mu.Lock()
	if n := len(c.lines); n > 0 && !strings.HasSuffix(c.lines[n-1], "\n") {
		i := strings.IndexByte(msg, '\n') + 1
		if i == 0 {
			i = len(msg)
		}
		c.lines[n-1] += msg[:i]
		msg = msg[i:]
	}
	for msg != "" {
		i := strings.IndexByte(msg, '\n') + 1
		if i == 0 {
			i = len(msg)
		}
		c.lines = append(c.lines, msg[:i])
		msg = msg[i:]
	}
	if over := len(c.lines) - c.maxLines; over > 0 {
		c.lines = append(c.lines[:0:0], c.lines[over:]...)
	}
	c.mu.Unlock()

	c.requestRefresh()
}

// Clear empties the console.
func (c *Console) Clear() {
	c.mu.Lock()
	c.lines = nil
	c.mu.Unlock()

	c.requestRefresh()
}

// Text returns the console content.
func (c *Console) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strings.Join(c.lines, "")
}

// Sync blocks until every refresh requested before it has been applied.
func (c *Console) Sync() {
	done := make(chan struct{})
	if !c.updates.Post(func() { close(done) }) {
		return
	}
	<-done
}

// requestRefresh posts a redraw unless one is already waiting.
func (c *Console) requestRefresh() {
	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		return
	}
	c.pending = true
	c.mu.Unlock()

	if !c.updates.Post(c.refresh) {
		c.mu.Lock()
		c.pending = false
		c.mu.Unlock()
	}
}

func (c *Console) refresh() {
	c.mu.Lock()
	c.pending = false
	c.mu.Unlock()

	c.list.Refresh()
	c.list.ScrollToBottom()
}

func (c *Console) length() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

func (c *Console) createRow() fyne.CanvasObject {
	row := widget.NewLabel("")
	row.TextStyle = fyne.TextStyle{Monospace: true}
	return row
}

func (c *Console) updateRow(id widget.ListItemID, obj fyne.CanvasObject) {
	c.mu.Lock()
	var text string
	if id >= 0 && id < len(c.lines) {
		text = strings.TrimSuffix(c.lines[id], "\n")
	}
	c.mu.Unlock()
	obj.(*widget.Label).SetText(text)
}
