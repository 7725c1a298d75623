// Package terminal implements the FrameSink and InputSource adapters used
// by the default (non-sdl2) build: a tcell.Screen rendering the 160x144
// framebuffer as half-block Unicode cells, and tcell key events translated
// to joypad button transitions.
package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/mbrannon/gbcore/hostio"
	"github.com/mbrannon/gbcore/memory"
	"github.com/mbrannon/gbcore/video"
)

// Backend renders to a tcell.Screen and polls it for key events. It
// implements both hostio.FrameSink and hostio.InputSource.
type Backend struct {
	screen tcell.Screen
}

// New initializes a tcell screen. Present draws the 160x144 frame at two
// vertical pixels per terminal cell, into 160 columns by 72 rows.
func New() (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("io-error: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("io-error: %w", err)
	}
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()
	return &Backend{screen: screen}, nil
}

// Close tears down the terminal screen.
func (b *Backend) Close() {
	b.screen.Fini()
}

// Present renders frame as 72 rows of 160 half-block cells: each cell's
// foreground color is the even (top) scanline pixel and its background is
// the odd (bottom) one, so one terminal row carries two pixel rows.
func (b *Backend) Present(frame *video.FrameBuffer) error {
	for y := 0; y < video.Height; y += 2 {
		for x := 0; x < video.Width; x++ {
			top := frame.At(x, y)
			bottom := top
			if y+1 < video.Height {
				bottom = frame.At(x, y+1)
			}

			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			b.screen.SetContent(x, y/2, '▀', nil, style)
		}
	}
	b.screen.Show()
	return nil
}

// keyButtons maps the fixed terminal key layout to joypad buttons.
var keyButtons = map[tcell.Key]memory.Button{
	tcell.KeyUp:    memory.ButtonUp,
	tcell.KeyDown:  memory.ButtonDown,
	tcell.KeyLeft:  memory.ButtonLeft,
	tcell.KeyRight: memory.ButtonRight,
	tcell.KeyEnter: memory.ButtonStart,
	tcell.KeyTab:   memory.ButtonSelect,
}

var runeButtons = map[rune]memory.Button{
	'z': memory.ButtonA,
	'x': memory.ButtonB,
}

// Poll drains every pending tcell event since the last call. A terminal
// has no key-release signal, so each recognized keypress is reported as
// an immediate press followed by a release within the same batch.
func (b *Backend) Poll() ([]hostio.ButtonEvent, bool) {
	var events []hostio.ButtonEvent
	quit := false

	for b.screen.HasPendingEvent() {
		ev := b.screen.PollEvent()
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}

		if key.Key() == tcell.KeyEscape || key.Key() == tcell.KeyCtrlC {
			quit = true
			continue
		}

		button, found := keyButtons[key.Key()]
		if !found && key.Key() == tcell.KeyRune {
			button, found = runeButtons[key.Rune()]
		}
		if !found {
			continue
		}

		events = append(events,
			hostio.ButtonEvent{Button: button, Pressed: true},
			hostio.ButtonEvent{Button: button, Pressed: false},
		)
	}

	return events, quit
}
