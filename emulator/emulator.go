// Package emulator wires the interpreter, memory bus, and PPU into a
// single cooperative frame loop, and owns ROM loading: the one place
// cartridge-unsupported and io-error surface.
package emulator

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mbrannon/gbcore/cpu"
	"github.com/mbrannon/gbcore/memory"
	"github.com/mbrannon/gbcore/video"
)

// cyclesPerFrame is the CPU-cycle budget of one 70224-cycle DMG frame.
const cyclesPerFrame = 70224

// Emulator is the single owning aggregate: it holds the CPU, the memory
// bus, and the PPU, and drives them through one frame's worth of steps.
type Emulator struct {
	CPU    *cpu.CPU
	Bus    *memory.MMU
	PPU    *video.PPU
	logger *slog.Logger
}

// New loads rom and returns a ready-to-run Emulator, or a wrapped
// cartridge-unsupported error if the header is invalid.
func New(rom []byte) (*Emulator, error) {
	cart, err := memory.Load(rom)
	if err != nil {
		return nil, err
	}

	bus := memory.New(cart)
	e := &Emulator{
		CPU:    cpu.New(bus),
		Bus:    bus,
		PPU:    video.New(bus),
		logger: slog.Default(),
	}
	return e, nil
}

// NewFromFile reads path and loads it as a cartridge, wrapping any read
// failure as an io-error.
func NewFromFile(path string) (*Emulator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("io-error: %w", err)
	}
	return New(data)
}

// RunFrame steps the CPU, ticks the bus and PPU, and services pending
// interrupts until at least one full frame (70224 cycles) has elapsed,
// then returns the composited frame.
func (e *Emulator) RunFrame() *video.FrameBuffer {
	cyclesThisFrame := 0
	for cyclesThisFrame < cyclesPerFrame {
		cycles := e.CPU.Step()
		cyclesThisFrame += cycles

		e.Bus.Tick(cycles)
		e.PPU.Tick(cycles)

		cpu.Service(e.CPU)
	}
	e.logger.Debug("frame complete", "cycles", cyclesThisFrame)
	return &e.PPU.Frame
}

// Press forwards a button press to the joypad.
func (e *Emulator) Press(b memory.Button) { e.Bus.Joypad.Press(b) }

// Release forwards a button release to the joypad.
func (e *Emulator) Release(b memory.Button) { e.Bus.Joypad.Release(b) }
