// Package hostio defines the frame-buffer sink and input source
// interfaces: the boundary between the core and whatever terminal,
// window, or test double is driving it.
package hostio

import (
	"github.com/mbrannon/gbcore/memory"
	"github.com/mbrannon/gbcore/video"
)

// ButtonEvent is a single button transition reported by an InputSource.
type ButtonEvent struct {
	Button  memory.Button
	Pressed bool
}

// FrameSink receives one composited frame at the end of every scheduler
// pass.
type FrameSink interface {
	Present(frame *video.FrameBuffer) error
}

// InputSource is polled once between frames for any button transitions
// since the last poll, plus a quit signal.
type InputSource interface {
	Poll() (events []ButtonEvent, quit bool)
}
