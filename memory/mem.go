// Package memory implements the 64 KiB DMG address space: cartridge ROM/RAM
// banking, work RAM and its echo, OAM, I/O registers, and HRAM, unified
// behind a single MMU so that every guest memory access — including the
// ones issued mid-instruction by the interpreter — exercises banking, DMA,
// timer, and joypad side effects identically to hardware.
package memory

import (
	"fmt"

	"github.com/mbrannon/gbcore/addr"
	"github.com/mbrannon/gbcore/bit"
	"github.com/mbrannon/gbcore/serial"
)

// SerialPort is the minimal interface a serial device must satisfy.
// Implementations must only be asked to read/write addr.SB and addr.SC.
type SerialPort interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
	Tick(cycles int)
}

// MMU is the memory-mapped I/O bus: cartridge banking, echo RAM, and the
// timer/joypad/serial peripheral registers all route through it.
type MMU struct {
	cart *Cartridge
	mbc  MBC
	mem  [0x10000]byte

	Timer  *Timer
	Joypad *Joypad
	Serial SerialPort
}

// New creates an MMU with the given cartridge loaded and fresh I/O state.
func New(cart *Cartridge) *MMU {
	m := &MMU{
		cart:   cart,
		mbc:    NewMBC(cart),
		Timer:  NewTimer(),
		Joypad: NewJoypad(),
	}
	m.Timer.RequestInterrupt = func() { m.RequestInterrupt(addr.TimerInterrupt) }
	m.Joypad.RequestInterrupt = func() { m.RequestInterrupt(addr.JoypadInterrupt) }
	m.Serial = serial.NewLogSink(func() { m.RequestInterrupt(addr.SerialInterrupt) })
	return m
}

// Cartridge returns the loaded cartridge (for host tooling: title display, etc).
func (m *MMU) Cartridge() *Cartridge { return m.cart }

// Tick advances the timer and serial port by cycles CPU cycles. The PPU is
// ticked separately by the scheduler, since it is not owned by the bus.
func (m *MMU) Tick(cycles int) {
	m.Timer.Tick(cycles)
	if m.Serial != nil {
		m.Serial.Tick(cycles)
	}
}

// RequestInterrupt sets the given interrupt's bit in IF (0xFF0F).
func (m *MMU) RequestInterrupt(i addr.Interrupt) {
	m.mem[addr.IF] = bit.Set(uint8(i), m.mem[addr.IF])
}

// Read resolves a guest-visible read.
func (m *MMU) Read(address uint16) uint8 {
	switch {
	case address <= 0x7FFF, address >= 0xA000 && address <= 0xBFFF:
		return m.mbc.Read(address)
	case address == addr.P1:
		return m.Joypad.Read()
	case address == addr.SB || address == addr.SC:
		return m.Serial.Read(address)
	case address == addr.DIV || address == addr.TIMA || address == addr.TMA || address == addr.TAC:
		return m.Timer.Read(address)
	case address >= 0xE000 && address <= 0xFDFF:
		return m.mem[address-0x2000]
	case address >= 0xFEA0 && address <= 0xFEFE:
		return 0xFF // unusable range, unspecified read value
	default:
		return m.mem[address]
	}
}

// Write resolves a guest-visible write.
func (m *MMU) Write(address uint16, value uint8) {
	switch {
	case address <= 0x7FFF, address >= 0xA000 && address <= 0xBFFF:
		m.mbc.Write(address, value)
	case address == addr.P1:
		m.Joypad.Write(value)
	case address == addr.SB || address == addr.SC:
		m.Serial.Write(address, value)
	case address == addr.DIV || address == addr.TIMA || address == addr.TMA || address == addr.TAC:
		m.Timer.Write(address, value)
	case address >= 0xC000 && address <= 0xDDFF:
		m.mem[address] = value
		m.mem[address+0x2000] = value
	case address >= 0xE000 && address <= 0xFDFF:
		m.mem[address-0x2000] = value
	case address >= 0xFEA0 && address <= 0xFEFE:
		// unusable range, writes silently discarded
	case address == addr.LY:
		m.mem[address] = 0 // the guest cannot set the current scanline
	case address == addr.DMA:
		m.mem[address] = value
		m.runDMA(value)
	default:
		m.mem[address] = value
	}
}

// runDMA copies 0xA0 bytes from source*0x100 into OAM (0xFE00).
func (m *MMU) runDMA(source uint8) {
	base := uint16(source) << 8
	for i := uint16(0); i < 0xA0; i++ {
		m.mem[addr.OAMStart+i] = m.Read(base + i)
	}
}

// ReadBit reports whether the given bit of the byte at address is set.
func (m *MMU) ReadBit(index uint8, address uint16) bool {
	return bit.IsSet(index, m.Read(address))
}

// Poke performs a raw write that bypasses guest-write side effects
// (LY reset-to-zero, DMA trigger, bank-control decoding). It exists so
// the PPU can update LCD-status registers (LY, STAT) that the guest may
// only read, never set directly.
func (m *MMU) Poke(address uint16, value uint8) {
	m.mem[address] = value
}

// Peek performs a raw read of the flat I/O/VRAM/OAM/HRAM image, bypassing
// cartridge/timer/joypad/serial routing. Used by the PPU to read VRAM,
// OAM, and LCD registers without re-deriving bus routing for addresses
// that are never banked.
func (m *MMU) Peek(address uint16) uint8 {
	return m.mem[address]
}

// String implements fmt.Stringer for debugging convenience.
func (m *MMU) String() string {
	return fmt.Sprintf("MMU{cart=%q}", m.cart.Title)
}
