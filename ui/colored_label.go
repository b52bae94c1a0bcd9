package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"mesongui/runner"
)

// StatusRunning marks an operation that has been dispatched but not finished.
const StatusRunning = "running"

var (
	idleColor      = color.NRGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xff}
	runningColor   = color.NRGBA{R: 0xff, G: 0xa5, B: 0x00, A: 0xff}
	completedColor = color.NRGBA{R: 0x2e, G: 0x7d, B: 0x32, A: 0xff}
	failedColor    = color.NRGBA{R: 0xc6, G: 0x28, B: 0x28, A: 0xff}
)

// statusStyle returns the badge text and background for a result status.
func statusStyle(status string) (string, color.Color) {
	switch status {
	case StatusRunning:
		return "Running", runningColor
	case runner.StatusCompleted:
		return "Done", completedColor
	case runner.StatusFailed:
		return "Failed", failedColor
	case runner.StatusError:
		return "Error", failedColor
	default:
		return "Idle", idleColor
	}
}

// StatusBadge shows the outcome of the last operation as coloured text
type StatusBadge struct {
	widget.BaseWidget
	status string
	text   string
	bg     color.Color
}

// NewStatusBadge creates an idle badge
func NewStatusBadge() *StatusBadge {
	b := &StatusBadge{}
	b.text, b.bg = statusStyle("")
	b.ExtendBaseWidget(b)
	return b
}

// SetStatus updates the badge for a runner status or StatusRunning
func (b *StatusBadge) SetStatus(status string) {
	b.status = status
	b.text, b.bg = statusStyle(status)
	b.Refresh()
}

// Status returns the status last set
func (b *StatusBadge) Status() string {
	return b.status
}

// CreateRenderer implements fyne.Widget
func (b *StatusBadge) CreateRenderer() fyne.WidgetRenderer {
	text := canvas.NewText(b.text, color.White)
	text.TextStyle = fyne.TextStyle{Bold: true}
	text.Alignment = fyne.TextAlignCenter
	bg := canvas.NewRectangle(b.bg)

	return &statusBadgeRenderer{
		badge:     b,
		container: container.NewStack(bg, container.NewPadded(text)),
		bg:        bg,
		text:      text,
	}
}

type statusBadgeRenderer struct {
	badge     *StatusBadge
	container *fyne.Container
	bg        *canvas.Rectangle
	text      *canvas.Text
}

func (r *statusBadgeRenderer) MinSize() fyne.Size {
	return r.container.MinSize()
}

func (r *statusBadgeRenderer) Layout(size fyne.Size) {
	r.container.Resize(size)
}

func (r *statusBadgeRenderer) Refresh() {
	r.text.Text = r.badge.text
	r.bg.FillColor = r.badge.bg
	r.text.Refresh()
	r.bg.Refresh()
}

func (r *statusBadgeRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.container}
}

func (r *statusBadgeRenderer) Destroy() {}
