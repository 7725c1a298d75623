package cpu

// This file centralizes the flag-computation formulas for each arithmetic
// family, so each opcode implementation just calls the shared helper
// instead of re-deriving half-carry/carry logic at every call site.

// addA adds value (plus an optional carry-in, for ADC) into A and sets
// Z/N/H/C accordingly.
func (c *CPU) addA(value uint8, carryIn uint8) {
	a := c.a
	sum := uint16(a) + uint16(value) + uint16(carryIn)
	result := uint8(sum)

	c.setFlag(FlagZ, result == 0)
	c.setFlag(FlagN, false)
	c.setFlag(FlagH, (a&0xF)+(value&0xF)+carryIn > 0xF)
	c.setFlag(FlagC, sum > 0xFF)

	c.a = result
}

// subA subtracts value (plus an optional borrow-in, for SBC) from A and
// sets Z/N/H/C. When cp is true, A is left unmodified (used by CP).
func (c *CPU) subA(value uint8, borrowIn uint8, cp bool) uint8 {
	a := c.a
	diff := int(a) - int(value) - int(borrowIn)
	result := uint8(diff)

	c.setFlag(FlagZ, result == 0)
	c.setFlag(FlagN, true)
	c.setFlag(FlagH, (int(a)&0xF)-(int(value)&0xF)-int(borrowIn) < 0)
	c.setFlag(FlagC, diff < 0)

	if !cp {
		c.a = result
	}
	return result
}

func (c *CPU) andA(value uint8) {
	c.a &= value
	c.setFlag(FlagZ, c.a == 0)
	c.setFlag(FlagN, false)
	c.setFlag(FlagH, true)
	c.setFlag(FlagC, false)
}

func (c *CPU) orA(value uint8) {
	c.a |= value
	c.setFlag(FlagZ, c.a == 0)
	c.setFlag(FlagN, false)
	c.setFlag(FlagH, false)
	c.setFlag(FlagC, false)
}

func (c *CPU) xorA(value uint8) {
	c.a ^= value
	c.setFlag(FlagZ, c.a == 0)
	c.setFlag(FlagN, false)
	c.setFlag(FlagH, false)
	c.setFlag(FlagC, false)
}

// incReg8 returns value+1 and sets Z/N/H from it. C is left untouched.
func (c *CPU) incReg8(value uint8) uint8 {
	result := value + 1
	c.setFlag(FlagZ, result == 0)
	c.setFlag(FlagN, false)
	c.setFlag(FlagH, value&0xF == 0xF)
	return result
}

// decReg8 returns value-1 and sets Z/N/H from it. C is left untouched.
func (c *CPU) decReg8(value uint8) uint8 {
	result := value - 1
	c.setFlag(FlagZ, result == 0)
	c.setFlag(FlagN, true)
	c.setFlag(FlagH, value&0xF == 0x00)
	return result
}

// addHL adds a 16-bit value into HL. Z is left untouched.
func (c *CPU) addHL(value uint16) {
	hl := c.hl()
	result := uint32(hl) + uint32(value)

	c.setFlag(FlagN, false)
	c.setFlag(FlagH, (hl&0xFFF)+(value&0xFFF) > 0xFFF)
	c.setFlag(FlagC, result > 0xFFFF)

	c.setHL(uint16(result))
}

// addSPSigned implements the shared operand handling for ADD SP,e8 and
// LD HL,SP+e8: Z=0, N=0, H/C derived from the unsigned low byte addition.
func (c *CPU) addSPSigned(e int8) uint16 {
	sp := c.sp
	value := uint16(int32(sp) + int32(e))

	lowSum := uint16(uint8(sp)) + uint16(uint8(e))

	c.setFlag(FlagZ, false)
	c.setFlag(FlagN, false)
	c.setFlag(FlagH, (uint8(sp)&0xF)+(uint8(e)&0xF) > 0xF)
	c.setFlag(FlagC, lowSum > 0xFF)

	return value
}

// rotateLeft rotates value left by one bit. If throughCarry is true, the
// incoming carry flag feeds bit 0 and the outgoing bit 7 sets C (RL); if
// false, the outgoing bit 7 feeds both bit 0 and C (RLC). forceZeroFlag
// matches the non-prefixed accumulator variants (RLCA/RLA), which always
// clear Z regardless of the result.
func (c *CPU) rotateLeft(value uint8, throughCarry, forceZeroFlag bool) uint8 {
	bit7 := value&0x80 != 0
	var carryIn uint8
	if throughCarry && c.flag(FlagC) {
		carryIn = 1
	} else if !throughCarry && bit7 {
		carryIn = 1
	}

	result := (value << 1) | carryIn

	c.setFlag(FlagZ, !forceZeroFlag && result == 0)
	c.setFlag(FlagN, false)
	c.setFlag(FlagH, false)
	c.setFlag(FlagC, bit7)

	return result
}

// rotateRight is the mirror of rotateLeft for RRC/RR/RRCA/RRA.
func (c *CPU) rotateRight(value uint8, throughCarry, forceZeroFlag bool) uint8 {
	bit0 := value&0x01 != 0
	var carryIn uint8
	if throughCarry && c.flag(FlagC) {
		carryIn = 0x80
	} else if !throughCarry && bit0 {
		carryIn = 0x80
	}

	result := (value >> 1) | carryIn

	c.setFlag(FlagZ, !forceZeroFlag && result == 0)
	c.setFlag(FlagN, false)
	c.setFlag(FlagH, false)
	c.setFlag(FlagC, bit0)

	return result
}

// shiftLeftArithmetic implements SLA: shift left, 0 into bit 0, bit 7 into C.
func (c *CPU) shiftLeftArithmetic(value uint8) uint8 {
	result := value << 1
	c.setFlag(FlagZ, result == 0)
	c.setFlag(FlagN, false)
	c.setFlag(FlagH, false)
	c.setFlag(FlagC, value&0x80 != 0)
	return result
}

// shiftRightArithmetic implements SRA: shift right, bit 7 preserved, bit 0 into C.
func (c *CPU) shiftRightArithmetic(value uint8) uint8 {
	result := (value >> 1) | (value & 0x80)
	c.setFlag(FlagZ, result == 0)
	c.setFlag(FlagN, false)
	c.setFlag(FlagH, false)
	c.setFlag(FlagC, value&0x01 != 0)
	return result
}

// shiftRightLogical implements SRL: shift right, 0 into bit 7, bit 0 into C.
func (c *CPU) shiftRightLogical(value uint8) uint8 {
	result := value >> 1
	c.setFlag(FlagZ, result == 0)
	c.setFlag(FlagN, false)
	c.setFlag(FlagH, false)
	c.setFlag(FlagC, value&0x01 != 0)
	return result
}

// swapNibbles implements SWAP.
func (c *CPU) swapNibbles(value uint8) uint8 {
	result := (value << 4) | (value >> 4)
	c.setFlag(FlagZ, result == 0)
	c.setFlag(FlagN, false)
	c.setFlag(FlagH, false)
	c.setFlag(FlagC, false)
	return result
}

// testBit implements BIT b,n: Z=!bit, N=0, H=1, C untouched.
func (c *CPU) testBit(bitIndex uint8, value uint8) {
	c.setFlag(FlagZ, value&(1<<bitIndex) == 0)
	c.setFlag(FlagN, false)
	c.setFlag(FlagH, true)
}

// daa adjusts A into packed BCD after an 8-bit add/sub, per the standard
// Game Boy DAA algorithm (the subtract path's 0x60 adjustment is the part
// earlier drafts in the wild are known to drop; it is implemented here).
func (c *CPU) daa() {
	a := c.a
	if !c.flag(FlagN) {
		if c.flag(FlagC) || a > 0x99 {
			a += 0x60
			c.setFlag(FlagC, true)
		}
		if c.flag(FlagH) || (a&0x0F) > 0x09 {
			a += 0x06
		}
	} else {
		if c.flag(FlagC) {
			a -= 0x60
		}
		if c.flag(FlagH) {
			a -= 0x06
		}
	}

	c.setFlag(FlagH, false)
	c.setFlag(FlagZ, a == 0)
	c.a = a
}
