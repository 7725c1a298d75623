package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneratedLoadBlock(t *testing.T) {
	c, _ := newTestCPU()
	c.SetB(0x42)

	cycles := opcodeTable[0x78](c) // LD A,B
	assert.Equal(t, uint8(0x42), c.A())
	assert.Equal(t, 4, cycles)
}

func TestGeneratedLoadBlockThroughHLIsMoreExpensive(t *testing.T) {
	c, bus := newTestCPU()
	c.SetHL(0xC000)
	bus.mem[0xC000] = 0x99

	cycles := opcodeTable[0x7E](c) // LD A,(HL)
	assert.Equal(t, uint8(0x99), c.A())
	assert.Equal(t, 8, cycles)
}

func TestHaltOpcodeIsNotLoadHLHL(t *testing.T) {
	c, _ := newTestCPU()
	c.SetPC(0x0100)
	cycles := opcodeTable[0x76](c)
	assert.True(t, c.Halted())
	assert.Equal(t, 4, cycles)
}

func TestGeneratedALUBlockCP(t *testing.T) {
	c, _ := newTestCPU()
	c.SetA(0x10)
	c.SetB(0x10)

	opcodeTable[0xB8](c) // CP A,B
	assert.Equal(t, uint8(0x10), c.A(), "CP must not modify A")
	assert.True(t, c.Flag(FlagZ))
}

func TestGeneratedRotateShiftBlock(t *testing.T) {
	c, _ := newTestCPU()
	c.SetC(0x80)

	cbOpcodeTable[0x01](c) // RLC C
	assert.Equal(t, uint8(0x01), c.C())
	assert.True(t, c.Flag(FlagC))
}

func TestGeneratedBitBlock(t *testing.T) {
	c, _ := newTestCPU()
	c.SetD(0x00)

	cbOpcodeTable[0x52](c) // BIT 2,D (0x40 + 2<<3 + reg8D(2) = 0x52)
	assert.True(t, c.Flag(FlagZ))
}

func TestGeneratedResSetBlock(t *testing.T) {
	c, _ := newTestCPU()
	c.SetE(0x00)

	cbOpcodeTable[0xDB](c) // SET 3,E (0xC0 + 3<<3 + reg8E(3) = 0xDB)
	assert.Equal(t, uint8(0x08), c.E())

	cbOpcodeTable[0x9B](c) // RES 3,E (0x80 + 3<<3 + reg8E(3) = 0x9B)
	assert.Equal(t, uint8(0x00), c.E())
}
