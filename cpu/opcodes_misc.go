package cpu

import "github.com/mbrannon/gbcore/bit"

// opcodeTable and cbOpcodeTable are the interpreter's two dispatch tables.
// Entries are populated here (for everything that doesn't fit the
// cross-product shape) and in opcodes_generated.go (for the blocks that
// do). A nil entry means the byte encodes no defined instruction.
var opcodeTable [256]Opcode
var cbOpcodeTable [256]Opcode

func init() {
	opcodeTable[0x00] = opNOP
	opcodeTable[0x01] = opLoadImm16(reg16BC)
	opcodeTable[0x02] = opStoreAIndirect(reg16BC)
	opcodeTable[0x03] = opIncReg16(reg16BC)
	opcodeTable[0x04] = opIncReg8(reg8B)
	opcodeTable[0x05] = opDecReg8(reg8B)
	opcodeTable[0x06] = opLoadImm8(reg8B)
	opcodeTable[0x07] = opRLCA
	opcodeTable[0x08] = opStoreSPIndirect
	opcodeTable[0x09] = opAddHL(reg16BC)
	opcodeTable[0x0A] = opLoadAIndirect(reg16BC)
	opcodeTable[0x0B] = opDecReg16(reg16BC)
	opcodeTable[0x0C] = opIncReg8(reg8C)
	opcodeTable[0x0D] = opDecReg8(reg8C)
	opcodeTable[0x0E] = opLoadImm8(reg8C)
	opcodeTable[0x0F] = opRRCA

	opcodeTable[0x10] = opSTOP
	opcodeTable[0x11] = opLoadImm16(reg16DE)
	opcodeTable[0x12] = opStoreAIndirect(reg16DE)
	opcodeTable[0x13] = opIncReg16(reg16DE)
	opcodeTable[0x14] = opIncReg8(reg8D)
	opcodeTable[0x15] = opDecReg8(reg8D)
	opcodeTable[0x16] = opLoadImm8(reg8D)
	opcodeTable[0x17] = opRLA
	opcodeTable[0x18] = opJR(condAlways)
	opcodeTable[0x19] = opAddHL(reg16DE)
	opcodeTable[0x1A] = opLoadAIndirect(reg16DE)
	opcodeTable[0x1B] = opDecReg16(reg16DE)
	opcodeTable[0x1C] = opIncReg8(reg8E)
	opcodeTable[0x1D] = opDecReg8(reg8E)
	opcodeTable[0x1E] = opLoadImm8(reg8E)
	opcodeTable[0x1F] = opRRA

	opcodeTable[0x20] = opJR(condNZ)
	opcodeTable[0x21] = opLoadImm16(reg16HL)
	opcodeTable[0x22] = opLoadAHLI
	opcodeTable[0x23] = opIncReg16(reg16HL)
	opcodeTable[0x24] = opIncReg8(reg8H)
	opcodeTable[0x25] = opDecReg8(reg8H)
	opcodeTable[0x26] = opLoadImm8(reg8H)
	opcodeTable[0x27] = opDAA
	opcodeTable[0x28] = opJR(condZ)
	opcodeTable[0x29] = opAddHL(reg16HL)
	opcodeTable[0x2A] = opLoadHLIA
	opcodeTable[0x2B] = opDecReg16(reg16HL)
	opcodeTable[0x2C] = opIncReg8(reg8L)
	opcodeTable[0x2D] = opDecReg8(reg8L)
	opcodeTable[0x2E] = opLoadImm8(reg8L)
	opcodeTable[0x2F] = opCPL

	opcodeTable[0x30] = opJR(condNC)
	opcodeTable[0x31] = opLoadImm16(reg16SP)
	opcodeTable[0x32] = opLoadAHLD
	opcodeTable[0x33] = opIncReg16(reg16SP)
	opcodeTable[0x34] = opIncHLInd
	opcodeTable[0x35] = opDecHLInd
	opcodeTable[0x36] = opLoadImm8(reg8HLInd)
	opcodeTable[0x37] = opSCF
	opcodeTable[0x38] = opJR(condC)
	opcodeTable[0x39] = opAddHL(reg16SP)
	opcodeTable[0x3A] = opLoadHLDA
	opcodeTable[0x3B] = opDecReg16(reg16SP)
	opcodeTable[0x3C] = opIncReg8(reg8A)
	opcodeTable[0x3D] = opDecReg8(reg8A)
	opcodeTable[0x3E] = opLoadImm8(reg8A)
	opcodeTable[0x3F] = opCCF

	opcodeTable[0x76] = opHALT

	opcodeTable[0xC0] = opRet(condNZ)
	opcodeTable[0xC1] = opPop(reg16StackBC)
	opcodeTable[0xC2] = opJP(condNZ)
	opcodeTable[0xC3] = opJP(condAlways)
	opcodeTable[0xC4] = opCall(condNZ)
	opcodeTable[0xC5] = opPush(reg16StackBC)
	opcodeTable[0xC6] = opALUImm(aluAdd)
	opcodeTable[0xC7] = opRST(0x00)
	opcodeTable[0xC8] = opRet(condZ)
	opcodeTable[0xC9] = opRETNoCond
	opcodeTable[0xCA] = opJP(condZ)
	opcodeTable[0xCC] = opCall(condZ)
	opcodeTable[0xCD] = opCall(condAlways)
	opcodeTable[0xCE] = opALUImm(aluAdc)
	opcodeTable[0xCF] = opRST(0x08)

	opcodeTable[0xD0] = opRet(condNC)
	opcodeTable[0xD1] = opPop(reg16StackDE)
	opcodeTable[0xD2] = opJP(condNC)
	opcodeTable[0xD4] = opCall(condNC)
	opcodeTable[0xD5] = opPush(reg16StackDE)
	opcodeTable[0xD6] = opALUImm(aluSub)
	opcodeTable[0xD7] = opRST(0x10)
	opcodeTable[0xD8] = opRet(condC)
	opcodeTable[0xD9] = opRETI
	opcodeTable[0xDA] = opJP(condC)
	opcodeTable[0xDC] = opCall(condC)
	opcodeTable[0xDE] = opALUImm(aluSbc)
	opcodeTable[0xDF] = opRST(0x18)

	opcodeTable[0xE0] = opLDHStore
	opcodeTable[0xE1] = opPop(reg16StackHL)
	opcodeTable[0xE2] = opLoadCIndA
	opcodeTable[0xE5] = opPush(reg16StackHL)
	opcodeTable[0xE6] = opALUImm(aluAnd)
	opcodeTable[0xE7] = opRST(0x20)
	opcodeTable[0xE8] = opAddSP
	opcodeTable[0xE9] = opJPHL
	opcodeTable[0xEA] = opStoreAImm16
	opcodeTable[0xEE] = opALUImm(aluXor)
	opcodeTable[0xEF] = opRST(0x28)

	opcodeTable[0xF0] = opLDHLoad
	opcodeTable[0xF1] = opPop(reg16StackAF)
	opcodeTable[0xF2] = opLoadACIndirect
	opcodeTable[0xF3] = opDI
	opcodeTable[0xF5] = opPush(reg16StackAF)
	opcodeTable[0xF6] = opALUImm(aluOr)
	opcodeTable[0xF7] = opRST(0x30)
	opcodeTable[0xF8] = opLoadHLSPOffset
	opcodeTable[0xF9] = opLoadSPHL
	opcodeTable[0xFA] = opLoadAImm16
	opcodeTable[0xFB] = opEI
	opcodeTable[0xFE] = opALUImm(aluCp)
	opcodeTable[0xFF] = opRST(0x38)
}

func opNOP(c *CPU) int { return 4 }

func opLoadImm16(dst reg16) Opcode {
	return func(c *CPU) int {
		writeReg16(c, dst, c.fetch16())
		return 12
	}
}

func opStoreAIndirect(src reg16) Opcode {
	return func(c *CPU) int {
		c.bus.Write(readReg16(c, src), c.A())
		return 8
	}
}

func opLoadAIndirect(src reg16) Opcode {
	return func(c *CPU) int {
		c.SetA(c.bus.Read(readReg16(c, src)))
		return 8
	}
}

func opIncReg16(r reg16) Opcode {
	return func(c *CPU) int {
		writeReg16(c, r, readReg16(c, r)+1)
		return 8
	}
}

func opDecReg16(r reg16) Opcode {
	return func(c *CPU) int {
		writeReg16(c, r, readReg16(c, r)-1)
		return 8
	}
}

func opIncReg8(r reg8) Opcode {
	return func(c *CPU) int {
		writeReg8(c, r, c.incReg8(readReg8(c, r)))
		return 4
	}
}

func opDecReg8(r reg8) Opcode {
	return func(c *CPU) int {
		writeReg8(c, r, c.decReg8(readReg8(c, r)))
		return 4
	}
}

func opLoadImm8(dst reg8) Opcode {
	return func(c *CPU) int {
		imm := c.fetch()
		writeReg8(c, dst, imm)
		if dst == reg8HLInd {
			return 12
		}
		return 8
	}
}

func opIncHLInd(c *CPU) int {
	addr := c.HL()
	c.bus.Write(addr, c.incReg8(c.bus.Read(addr)))
	return 12
}

func opDecHLInd(c *CPU) int {
	addr := c.HL()
	c.bus.Write(addr, c.decReg8(c.bus.Read(addr)))
	return 12
}

func opAddHL(src reg16) Opcode {
	return func(c *CPU) int {
		c.addHL(readReg16(c, src))
		return 8
	}
}

func opRLCA(c *CPU) int { c.SetA(c.rotateLeft(c.A(), false, true)); return 4 }
func opRRCA(c *CPU) int { c.SetA(c.rotateRight(c.A(), false, true)); return 4 }
func opRLA(c *CPU) int  { c.SetA(c.rotateLeft(c.A(), true, true)); return 4 }
func opRRA(c *CPU) int  { c.SetA(c.rotateRight(c.A(), true, true)); return 4 }

func opStoreSPIndirect(c *CPU) int {
	addr := c.fetch16()
	c.bus.Write(addr, bit.Low(c.SP()))
	c.bus.Write(addr+1, bit.High(c.SP()))
	return 20
}

// opSTOP implements the two-byte STOP opcode (0x10 0x00). Actual low-power
// entry/exit is outside this interpreter's scope; the second byte is
// simply consumed and STOP behaves as a 4-cycle NOP (it does not halt).
func opSTOP(c *CPU) int {
	c.fetch()
	return 4
}

func opLoadAHLI(c *CPU) int {
	c.bus.Write(c.HL(), c.A())
	c.SetHL(c.HL() + 1)
	return 8
}

func opLoadHLIA(c *CPU) int {
	c.SetA(c.bus.Read(c.HL()))
	c.SetHL(c.HL() + 1)
	return 8
}

func opLoadAHLD(c *CPU) int {
	c.bus.Write(c.HL(), c.A())
	c.SetHL(c.HL() - 1)
	return 8
}

func opLoadHLDA(c *CPU) int {
	c.SetA(c.bus.Read(c.HL()))
	c.SetHL(c.HL() - 1)
	return 8
}

func opDAA(c *CPU) int { c.daa(); return 4 }

func opCPL(c *CPU) int {
	c.SetA(^c.A())
	c.SetFlag(FlagN, true)
	c.SetFlag(FlagH, true)
	return 4
}

func opSCF(c *CPU) int {
	c.SetFlag(FlagN, false)
	c.SetFlag(FlagH, false)
	c.SetFlag(FlagC, true)
	return 4
}

func opCCF(c *CPU) int {
	c.SetFlag(FlagN, false)
	c.SetFlag(FlagH, false)
	c.SetFlag(FlagC, !c.Flag(FlagC))
	return 4
}

func opHALT(c *CPU) int {
	c.halted = true
	return 4
}

func opDI(c *CPU) int {
	c.disableInterrupts()
	return 4
}

func opEI(c *CPU) int {
	c.scheduleEI()
	return 4
}

// condition identifies one of the four branch predicates shared by
// JR/JP/CALL/RET.
type condition uint8

const (
	condAlways condition = iota
	condNZ
	condZ
	condNC
	condC
)

func (c *CPU) checkCond(cond condition) bool {
	switch cond {
	case condNZ:
		return !c.Flag(FlagZ)
	case condZ:
		return c.Flag(FlagZ)
	case condNC:
		return !c.Flag(FlagC)
	case condC:
		return c.Flag(FlagC)
	default:
		return true
	}
}

func opJR(cond condition) Opcode {
	return func(c *CPU) int {
		offset := int8(c.fetch())
		if !c.checkCond(cond) {
			return 8
		}
		c.SetPC(uint16(int32(c.PC()) + int32(offset)))
		return 12
	}
}

func opJP(cond condition) Opcode {
	return func(c *CPU) int {
		target := c.fetch16()
		if !c.checkCond(cond) {
			return 12
		}
		c.SetPC(target)
		return 16
	}
}

func opJPHL(c *CPU) int {
	c.SetPC(c.HL())
	return 4
}

func opCall(cond condition) Opcode {
	return func(c *CPU) int {
		target := c.fetch16()
		if !c.checkCond(cond) {
			return 12
		}
		c.push(c.PC())
		c.SetPC(target)
		return 24
	}
}

func opRet(cond condition) Opcode {
	return func(c *CPU) int {
		if !c.checkCond(cond) {
			return 8
		}
		c.SetPC(c.pop())
		return 20
	}
}

func opRETNoCond(c *CPU) int {
	c.SetPC(c.pop())
	return 16
}

func opRETI(c *CPU) int {
	c.SetPC(c.pop())
	c.ime = true
	c.imeDelay = -1
	return 16
}

func opRST(target uint16) Opcode {
	return func(c *CPU) int {
		c.push(c.PC())
		c.SetPC(target)
		return 16
	}
}

func opPush(src reg16Stack) Opcode {
	return func(c *CPU) int {
		c.push(readReg16Stack(c, src))
		return 16
	}
}

func opPop(dst reg16Stack) Opcode {
	return func(c *CPU) int {
		writeReg16Stack(c, dst, c.pop())
		return 12
	}
}

func opALUImm(op aluOp) Opcode {
	return func(c *CPU) int {
		c.applyALU(op, c.fetch())
		return 8
	}
}

func opLDHStore(c *CPU) int {
	offset := c.fetch()
	c.bus.Write(0xFF00+uint16(offset), c.A())
	return 12
}

func opLDHLoad(c *CPU) int {
	offset := c.fetch()
	c.SetA(c.bus.Read(0xFF00 + uint16(offset)))
	return 12
}

func opLoadCIndA(c *CPU) int {
	c.bus.Write(0xFF00+uint16(c.C()), c.A())
	return 8
}

func opLoadACIndirect(c *CPU) int {
	c.SetA(c.bus.Read(0xFF00 + uint16(c.C())))
	return 8
}

func opStoreAImm16(c *CPU) int {
	addr := c.fetch16()
	c.bus.Write(addr, c.A())
	return 16
}

func opLoadAImm16(c *CPU) int {
	addr := c.fetch16()
	c.SetA(c.bus.Read(addr))
	return 16
}

func opAddSP(c *CPU) int {
	e := int8(c.fetch())
	c.SetSP(c.addSPSigned(e))
	return 16
}

func opLoadHLSPOffset(c *CPU) int {
	e := int8(c.fetch())
	c.SetHL(c.addSPSigned(e))
	return 12
}

func opLoadSPHL(c *CPU) int {
	c.SetSP(c.HL())
	return 8
}
