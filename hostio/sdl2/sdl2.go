//go:build sdl2

// Package sdl2 implements the FrameSink and InputSource adapters for the
// optional windowed backend, built only when the sdl2 tag is set so the
// default build never requires cgo.
package sdl2

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/mbrannon/gbcore/hostio"
	"github.com/mbrannon/gbcore/memory"
	"github.com/mbrannon/gbcore/video"
)

// scale is the integer window-to-LCD pixel scale factor.
const scale = 3

// Backend blits the framebuffer into an sdl.Texture each frame and polls
// sdl.PollEvent for real (not synthesized) key-down/key-up transitions.
// It implements both hostio.FrameSink and hostio.InputSource.
type Backend struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
}

// New opens an SDL window sized to the LCD at scale and a streaming
// texture to blit frames into.
func New() (*Backend, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("io-error: %w", err)
	}

	window, renderer, err := sdl.CreateWindowAndRenderer(
		video.Width*scale, video.Height*scale, sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, fmt.Errorf("io-error: %w", err)
	}
	window.SetTitle("gbcore")

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_RGB24, sdl.TEXTUREACCESS_STREAMING, video.Width, video.Height)
	if err != nil {
		return nil, fmt.Errorf("io-error: %w", err)
	}

	return &Backend{window: window, renderer: renderer, texture: texture}, nil
}

// Close tears down the SDL window, renderer, and texture.
func (b *Backend) Close() {
	b.texture.Destroy()
	b.renderer.Destroy()
	b.window.Destroy()
	sdl.Quit()
}

// Present uploads frame into the streaming texture and blits it scaled
// to the window.
func (b *Backend) Present(frame *video.FrameBuffer) error {
	pixels := frame.Pixels()
	raw := make([]byte, 0, len(pixels)*3)
	for _, p := range pixels {
		raw = append(raw, p.R, p.G, p.B)
	}

	if err := b.texture.Update(nil, raw, video.Width*3); err != nil {
		return fmt.Errorf("io-error: %w", err)
	}
	b.renderer.Clear()
	b.renderer.Copy(b.texture, nil, nil)
	b.renderer.Present()
	return nil
}

// keyButtons maps SDL keycodes to joypad buttons.
var keyButtons = map[sdl.Keycode]memory.Button{
	sdl.K_UP:     memory.ButtonUp,
	sdl.K_DOWN:   memory.ButtonDown,
	sdl.K_LEFT:   memory.ButtonLeft,
	sdl.K_RIGHT:  memory.ButtonRight,
	sdl.K_RETURN: memory.ButtonStart,
	sdl.K_TAB:    memory.ButtonSelect,
	sdl.K_z:      memory.ButtonA,
	sdl.K_x:      memory.ButtonB,
}

// Poll drains every pending SDL event since the last call, translating
// real key-down/key-up pairs (unlike the terminal backend, SDL reports
// these separately) to button transitions.
func (b *Backend) Poll() ([]hostio.ButtonEvent, bool) {
	var events []hostio.ButtonEvent
	quit := false

	for {
		event := sdl.PollEvent()
		if event == nil {
			break
		}

		switch e := event.(type) {
		case *sdl.QuitEvent:
			quit = true
		case *sdl.KeyboardEvent:
			button, found := keyButtons[e.Keysym.Sym]
			if !found {
				continue
			}
			events = append(events, hostio.ButtonEvent{
				Button:  button,
				Pressed: e.Type == sdl.KEYDOWN,
			})
		}
	}

	return events, quit
}
