package emulator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mbrannon/gbcore/hostio"
	"github.com/mbrannon/gbcore/memory"
)

func blankROM() []byte {
	return make([]byte, 0x8000) // cart type 0x00 -> no-MBC, all NOPs
}

func TestNewRejectsUnsupportedCartridge(t *testing.T) {
	rom := make([]byte, 0x8000)
	rom[0x147] = 0xFE
	_, err := New(rom)
	assert.Error(t, err)
}

func TestRunFrameAdvancesExactlyOneFrameOfCycles(t *testing.T) {
	e, err := New(blankROM())
	assert.NoError(t, err)

	e.Bus.Write(0xFF40, 0x80) // LCDC: display enabled, so LY advances
	e.RunFrame()
	assert.Equal(t, uint8(0), e.Bus.Read(0xFF44), "LY wraps back to 0 after a full 70224-cycle frame")
}

func TestPressRequestsJoypadInterrupt(t *testing.T) {
	e, err := New(blankROM())
	assert.NoError(t, err)

	e.Bus.Write(0xFF00, 0x20) // select direction group
	e.Press(memory.ButtonUp)

	assert.Equal(t, uint8(0x10), e.Bus.Read(0xFF0F)&0x10)
}

// fakeInputSource feeds a scripted sequence of button events, exercising
// the hostio.InputSource contract without a real terminal/SDL backend.
type fakeInputSource struct {
	events []hostio.ButtonEvent
}

func (f *fakeInputSource) Poll() ([]hostio.ButtonEvent, bool) {
	events := f.events
	f.events = nil
	return events, false
}

func TestInputSourceAdapterMatchesDirectJoypadCalls(t *testing.T) {
	viaAdapter, err := New(blankROM())
	assert.NoError(t, err)
	viaDirect, err := New(blankROM())
	assert.NoError(t, err)

	viaAdapter.Bus.Write(0xFF00, 0x20)
	viaDirect.Bus.Write(0xFF00, 0x20)

	source := &fakeInputSource{events: []hostio.ButtonEvent{
		{Button: memory.ButtonUp, Pressed: true},
	}}
	events, _ := source.Poll()
	for _, ev := range events {
		if ev.Pressed {
			viaAdapter.Press(ev.Button)
		} else {
			viaAdapter.Release(ev.Button)
		}
	}

	viaDirect.Press(memory.ButtonUp)

	assert.Equal(t, viaDirect.Bus.Read(0xFF0F), viaAdapter.Bus.Read(0xFF0F))
}
