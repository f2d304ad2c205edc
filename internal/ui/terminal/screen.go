package terminal

import (
	"context"
	"fmt"
	"strings"

	"duotimer/internal/core/duo"
	"duotimer/internal/ui/hotkeys"
	"duotimer/internal/ui/preferences"

	"fyne.io/fyne/v2"
	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
)

// Controller is the part of duo.Controller the terminal drives.
type Controller interface {
	Handle(action duo.Action)
	Select(id duo.TimerID)
	Toggle(id duo.TimerID)
	Frame() duo.Frame
}

// Palette holds terminal colors.
type Palette struct {
	Timer       tcell.Color
	Selected    tcell.Color
	LastSeconds tcell.Color
	Background  tcell.Color
}

// PaletteFromSettings converts stored #RRGGBB colors to terminal colors.
func PaletteFromSettings(settings preferences.Settings) (Palette, error) {
	var palette Palette
	targets := []struct {
		value  string
		target *tcell.Color
	}{
		{settings.Colors.Timer, &palette.Timer},
		{settings.Colors.Selected, &palette.Selected},
		{settings.Colors.LastSeconds, &palette.LastSeconds},
		{settings.Colors.Background, &palette.Background},
	}
	for _, entry := range targets {
		parsed, err := preferences.ParseColor(entry.value)
		if err != nil {
			return Palette{}, fmt.Errorf("terminal palette: %w", err)
		}
		*entry.target = tcell.NewRGBColor(int32(parsed.R), int32(parsed.G), int32(parsed.B))
	}
	return palette, nil
}

const helpLine = "click: select  right-click: start/stop  esc: quit"

// Screen renders both timers on a tcell screen.
type Screen struct {
	screen     tcell.Screen
	controller Controller
	keymap     *hotkeys.Keymap
	palette    Palette
	frame      duo.Frame

	// buttons held at the previous mouse event; drags repeat them.
	buttons tcell.ButtonMask
}

// New creates a terminal frontend. The screen must already be initialised.
func New(screen tcell.Screen, controller Controller, keymap *hotkeys.Keymap, palette Palette) *Screen {
	return &Screen{
		screen:     screen,
		controller: controller,
		keymap:     keymap,
		palette:    palette,
	}
}

// Run draws frames and dispatches input until ctx ends or the user quits.
func (term *Screen) Run(ctx context.Context, events <-chan duo.Event) error {
	term.screen.EnableMouse()
	term.draw(term.controller.Frame())

	input := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			event := term.screen.PollEvent()
			if event == nil {
				return
			}
			select {
			case input <- event:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			term.draw(event.Frame)
		case event := <-input:
			if term.handleEvent(event) {
				return nil
			}
		}
	}
}

// handleEvent applies one input event and reports whether to quit.
func (term *Screen) handleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventResize:
		term.screen.Sync()
		term.draw(term.frame)
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return true
		}
		name, ok := keyName(ev)
		if !ok {
			return false
		}
		if action, bound := term.keymap.Resolve(name); bound {
			logrus.WithFields(logrus.Fields{"key": name, "action": action}).Debug("terminal hotkey")
			term.controller.Handle(action)
		}
	case *tcell.EventMouse:
		pressed := ev.Buttons() &^ term.buttons
		term.buttons = ev.Buttons()
		if pressed == tcell.ButtonNone {
			return false
		}
		x, _ := ev.Position()
		width, _ := term.screen.Size()
		id := duo.TimerFirst
		if x >= width/2 {
			id = duo.TimerSecond
		}
		switch {
		case pressed&tcell.Button1 != 0:
			term.controller.Select(id)
		case pressed&tcell.Button2 != 0:
			term.controller.Toggle(id)
		}
	}
	return false
}

func (term *Screen) draw(frame duo.Frame) {
	term.frame = frame
	width, height := term.screen.Size()
	base := tcell.StyleDefault.Background(term.palette.Background)

	term.screen.SetStyle(base)
	term.screen.Clear()

	half := width / 2
	row := height / 2
	if height > 1 && row == height-1 {
		row--
	}
	for _, view := range frame.Timers {
		if !view.ID.Valid() {
			continue
		}
		left := 0
		span := half
		if view.ID == duo.TimerSecond {
			left = half
			span = width - half
		}
		style := base.Foreground(term.color(view.Highlight)).Bold(true)
		putCentered(term.screen, left, span, row, view.Text, style)
	}
	if height > 2 {
		putCentered(term.screen, 0, width, height-1, helpLine, base.Foreground(term.palette.Timer).Dim(true))
	}
	term.screen.Show()
}

func (term *Screen) color(highlight duo.Highlight) tcell.Color {
	switch highlight {
	case duo.HighlightSelected:
		return term.palette.Selected
	case duo.HighlightLastSeconds:
		return term.palette.LastSeconds
	default:
		return term.palette.Timer
	}
}

func putCentered(screen tcell.Screen, left, span, row int, text string, style tcell.Style) {
	runes := []rune(text)
	if len(runes) > span {
		runes = runes[:span]
	}
	x := left + (span-len(runes))/2
	for offset, r := range runes {
		screen.SetContent(x+offset, row, r, nil, style)
	}
}

var functionKeys = map[tcell.Key]fyne.KeyName{
	tcell.KeyF1: fyne.KeyF1, tcell.KeyF2: fyne.KeyF2, tcell.KeyF3: fyne.KeyF3,
	tcell.KeyF4: fyne.KeyF4, tcell.KeyF5: fyne.KeyF5, tcell.KeyF6: fyne.KeyF6,
	tcell.KeyF7: fyne.KeyF7, tcell.KeyF8: fyne.KeyF8, tcell.KeyF9: fyne.KeyF9,
	tcell.KeyF10: fyne.KeyF10, tcell.KeyF11: fyne.KeyF11, tcell.KeyF12: fyne.KeyF12,
	tcell.KeyEnter: fyne.KeyReturn, tcell.KeyTab: fyne.KeyTab,
	tcell.KeyBackspace: fyne.KeyBackspace, tcell.KeyBackspace2: fyne.KeyBackspace,
	tcell.KeyInsert: fyne.KeyInsert, tcell.KeyDelete: fyne.KeyDelete,
	tcell.KeyHome: fyne.KeyHome, tcell.KeyEnd: fyne.KeyEnd,
	tcell.KeyPgUp: fyne.KeyPageUp, tcell.KeyPgDn: fyne.KeyPageDown,
	tcell.KeyUp: fyne.KeyUp, tcell.KeyDown: fyne.KeyDown,
	tcell.KeyLeft: fyne.KeyLeft, tcell.KeyRight: fyne.KeyRight,
}

// keyName maps a terminal key to the shared key-name vocabulary.
func keyName(event *tcell.EventKey) (fyne.KeyName, bool) {
	if event.Key() != tcell.KeyRune {
		name, ok := functionKeys[event.Key()]
		return name, ok
	}
	r := event.Rune()
	switch {
	case r == ' ':
		return fyne.KeySpace, true
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return fyne.KeyName(strings.ToUpper(string(r))), true
	}
	return "", false
}
