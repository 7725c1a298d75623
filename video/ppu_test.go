package video

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mbrannon/gbcore/addr"
)

// fakeBus is a flat 64 KiB image satisfying Bus, sufficient to drive the
// PPU against addresses it actually reads (LCDC/STAT/VRAM/OAM/palette
// registers never go through cartridge banking).
type fakeBus struct {
	mem       [0x10000]byte
	requested []addr.Interrupt
}

func (b *fakeBus) Peek(address uint16) uint8        { return b.mem[address] }
func (b *fakeBus) Poke(address uint16, value uint8) { b.mem[address] = value }
func (b *fakeBus) RequestInterrupt(i addr.Interrupt) {
	b.requested = append(b.requested, i)
	b.mem[addr.IF] = b.mem[addr.IF] | i.Bit()
}

func TestLYAdvancesOncePerScanline(t *testing.T) {
	bus := &fakeBus{}
	bus.mem[addr.LCDC] = 0x80 // display enabled, nothing else
	p := New(bus)

	p.Tick(456)
	assert.Equal(t, uint8(1), bus.mem[addr.LY])
}

func TestFrameTraversesAllScanlinesOnce(t *testing.T) {
	bus := &fakeBus{}
	bus.mem[addr.LCDC] = 0x80
	p := New(bus)

	const cyclesPerFrame = 70224
	spent := 0
	for spent < cyclesPerFrame {
		p.Tick(4)
		spent += 4
	}

	assert.Equal(t, uint8(0), bus.mem[addr.LY], "LY wraps back to 0 after 154 lines")
}

func TestVBlankInterruptRequestedAtLine144(t *testing.T) {
	bus := &fakeBus{}
	bus.mem[addr.LCDC] = 0x80
	p := New(bus)

	for i := 0; i < 144; i++ {
		p.Tick(456)
	}

	assert.Equal(t, uint8(0x01), bus.mem[addr.IF]&0x01)
}

func TestDisplayDisabledFreezesLY(t *testing.T) {
	bus := &fakeBus{}
	bus.mem[addr.LCDC] = 0x00 // display disabled
	p := New(bus)

	p.Tick(456 * 10)
	assert.Equal(t, uint8(0), bus.mem[addr.LY])
}

func TestPaletteResolvesShadesInOrder(t *testing.T) {
	// BGP = 0xE4 = 11_10_01_00: index 0->shade0, 1->shade1, 2->shade2, 3->shade3
	for index, want := range shadeColors {
		assert.Equal(t, want, resolvePalette(0xE4, uint8(index)))
	}
}
