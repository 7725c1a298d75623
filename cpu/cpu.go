// Package cpu implements the Sharp LR35902 instruction interpreter: the
// 256-entry base opcode table, the 256-entry CB-prefixed table, the
// interrupt-service sequence, and HALT/STOP handling.
package cpu

import (
	"fmt"

	"github.com/mbrannon/gbcore/bit"
)

// Bus is the subset of memory.MMU the interpreter needs. Defined as an
// interface so the CPU package can be tested against fakes without
// depending on the full MMU.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// CPU is the main struct holding Z80-ish state: the register file plus
// the bus it executes against and the interrupt/halt bookkeeping that
// only the interpreter (not the InterruptController) can mutate mid-step.
type CPU struct {
	Registers
	bus Bus

	halted    bool
	ime       bool
	imeDelay  int // instructions until a pending EI takes effect; -1 = none scheduled
}

// New returns a CPU wired to bus and reset to the documented power-on state.
func New(bus Bus) *CPU {
	c := &CPU{bus: bus, imeDelay: -1}
	c.Reset()
	return c
}

// Reset seeds registers to their power-on values and clears halt/IME state.
func (c *CPU) Reset() {
	c.Registers.Reset()
	c.halted = false
	c.ime = false
	c.imeDelay = -1
}

// IME reports whether the interrupt master enable flag is currently set.
func (c *CPU) IME() bool { return c.ime }

// Halted reports whether the CPU is in the HALT low-power state.
func (c *CPU) Halted() bool { return c.halted }

// Step fetches, decodes, and executes a single instruction, returning the
// number of CPU cycles it consumed.
func (c *CPU) Step() int {
	if c.imeDelay > 0 {
		c.imeDelay--
		if c.imeDelay == 0 {
			c.ime = true
		}
	}

	if c.halted {
		return 4
	}

	opcode := c.fetch()
	if opcode == 0xCB {
		cb := c.fetch()
		op := cbOpcodeTable[cb]
		if op == nil {
			panic(fmt.Sprintf("illegal-opcode: 0xCB%02X", cb))
		}
		return op(c)
	}

	op := opcodeTable[opcode]
	if op == nil {
		panic(fmt.Sprintf("illegal-opcode: 0x%02X", opcode))
	}
	return op(c)
}

// fetch reads the byte at PC and advances PC by one.
func (c *CPU) fetch() uint8 {
	value := c.bus.Read(c.pc)
	c.pc++
	return value
}

// fetch16 reads a little-endian 16-bit immediate and advances PC by two.
func (c *CPU) fetch16() uint16 {
	low := c.fetch()
	high := c.fetch()
	return bit.Combine(high, low)
}

// push writes a 16-bit value to the stack, high byte first: SP-=1;
// write high byte; SP-=1; write low byte.
func (c *CPU) push(value uint16) {
	c.sp--
	c.bus.Write(c.sp, bit.High(value))
	c.sp--
	c.bus.Write(c.sp, bit.Low(value))
}

// pop reads a 16-bit value off the stack.
func (c *CPU) pop() uint16 {
	low := c.bus.Read(c.sp)
	c.sp++
	high := c.bus.Read(c.sp)
	c.sp++
	return bit.Combine(high, low)
}

// scheduleEI arms IME to become set at the top of the next Step, so that
// Service first sees it once the instruction following EI has executed. DI takes effect
// immediately and cancels any pending EI.
func (c *CPU) scheduleEI() {
	c.imeDelay = 1
}

func (c *CPU) disableInterrupts() {
	c.ime = false
	c.imeDelay = -1
}

// wake clears the HALT state; used by Service when an interrupt becomes
// pending even with IME clear.
func (c *CPU) wake() { c.halted = false }
