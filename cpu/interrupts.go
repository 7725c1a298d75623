package cpu

import (
	"github.com/mbrannon/gbcore/addr"
	"github.com/mbrannon/gbcore/bit"
)

// interruptOrder lists the five interrupt sources in their fixed hardware
// priority, lowest bit first.
var interruptOrder = [5]addr.Interrupt{
	addr.VBlankInterrupt,
	addr.LCDSTATInterrupt,
	addr.TimerInterrupt,
	addr.SerialInterrupt,
	addr.JoypadInterrupt,
}

// Service runs one interrupt-dispatch check against c. It is a free
// function taking the CPU explicitly rather than a method on
// an InterruptController type that holds a back-pointer to the CPU: the
// scheduler calls it once per step, after ticking the timer and PPU.
//
// A HALTed CPU wakes on any pending-and-enabled interrupt even with IME
// clear, but only jumps to its vector when IME is also set. Returns true
// if an interrupt was serviced (so the caller can charge the dispatch's
// extra cycles).
func Service(c *CPU) bool {
	pending := c.bus.Read(addr.IF) & c.bus.Read(addr.IE) & 0x1F
	if pending == 0 {
		return false
	}

	if c.halted {
		c.wake()
	}

	if !c.ime {
		return false
	}

	for _, i := range interruptOrder {
		if !bit.IsSet(uint8(i), pending) {
			continue
		}

		c.ime = false
		c.bus.Write(addr.IF, bit.Reset(uint8(i), c.bus.Read(addr.IF)))
		c.push(c.PC())
		c.SetPC(i.Vector())
		return true
	}

	return false
}
