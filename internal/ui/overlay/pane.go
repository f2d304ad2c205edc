package overlay

import (
	"image/color"

	"duotimer/internal/core/duo"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// timerPane draws one timer and reports pointer interaction on it.
type timerPane struct {
	widget.BaseWidget

	id   duo.TimerID
	text *canvas.Text

	onTapped          func(duo.TimerID)
	onDoubleTapped    func(duo.TimerID)
	onTappedSecondary func(duo.TimerID, fyne.Position)
}

var (
	_ fyne.Tappable          = (*timerPane)(nil)
	_ fyne.DoubleTappable    = (*timerPane)(nil)
	_ fyne.SecondaryTappable = (*timerPane)(nil)
)

func newTimerPane(id duo.TimerID, fill color.Color) *timerPane {
	text := canvas.NewText("0.00", fill)
	text.Alignment = fyne.TextAlignCenter
	text.TextStyle = fyne.TextStyle{Bold: true}

	pane := &timerPane{id: id, text: text}
	pane.ExtendBaseWidget(pane)
	return pane
}

func (pane *timerPane) setView(value string, fill color.Color) {
	if pane.text.Text == value && pane.text.Color == fill {
		return
	}
	pane.text.Text = value
	pane.text.Color = fill
	pane.text.Refresh()
}

func (pane *timerPane) Tapped(*fyne.PointEvent) {
	if pane.onTapped != nil {
		pane.onTapped(pane.id)
	}
}

func (pane *timerPane) DoubleTapped(*fyne.PointEvent) {
	if pane.onDoubleTapped != nil {
		pane.onDoubleTapped(pane.id)
	}
}

func (pane *timerPane) TappedSecondary(event *fyne.PointEvent) {
	if pane.onTappedSecondary != nil {
		pane.onTappedSecondary(pane.id, event.AbsolutePosition)
	}
}

func (pane *timerPane) CreateRenderer() fyne.WidgetRenderer {
	return &timerPaneRenderer{pane: pane, measure: measureSample(pane.text.TextStyle)}
}

type timerPaneRenderer struct {
	pane    *timerPane
	measure func(float32) fyne.Size
}

func (renderer *timerPaneRenderer) Layout(size fyne.Size) {
	text := renderer.pane.text
	text.TextSize = fitTextSize(size, renderer.measure)

	height := text.MinSize().Height
	y := (size.Height - height) / 2
	if y < 0 {
		y = 0
	}
	text.Move(fyne.NewPos(0, y))
	text.Resize(fyne.NewSize(size.Width, height))
}

func (renderer *timerPaneRenderer) MinSize() fyne.Size {
	return renderer.measure(minTextSize)
}

func (renderer *timerPaneRenderer) Refresh() {
	renderer.Layout(renderer.pane.Size())
	canvas.Refresh(renderer.pane.text)
}

func (renderer *timerPaneRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{renderer.pane.text}
}

func (renderer *timerPaneRenderer) Destroy() {}
