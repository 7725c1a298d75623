package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestMMU(t *testing.T, romSize int) *MMU {
	t.Helper()
	rom := make([]byte, romSize)
	cart, err := Load(rom)
	assert.NoError(t, err)
	return New(cart)
}

func TestEchoRAMMirroring(t *testing.T) {
	m := newTestMMU(t, 0x8000)

	m.Write(0xC123, 0x42)
	assert.Equal(t, uint8(0x42), m.Read(0xE123))

	m.Write(0xE456, 0x99)
	assert.Equal(t, uint8(0x99), m.Read(0xC456))
}

func TestUnusableMemoryDiscardsWrites(t *testing.T) {
	m := newTestMMU(t, 0x8000)

	m.Write(0xFEA0, 0x55)
	assert.Equal(t, uint8(0xFF), m.Read(0xFEA0))
}

func TestLYWriteForcedToZero(t *testing.T) {
	m := newTestMMU(t, 0x8000)
	m.Poke(0xFF44, 99)
	m.Write(0xFF44, 42)
	assert.Equal(t, uint8(0), m.Read(0xFF44))
}

func TestDMACopiesIntoOAM(t *testing.T) {
	m := newTestMMU(t, 0x8000)
	for i := uint16(0); i < 0xA0; i++ {
		m.Write(0xC000+i, byte(i))
	}

	m.Write(0xFF46, 0xC0) // source = 0xC000

	for i := uint16(0); i < 0xA0; i++ {
		assert.Equal(t, byte(i), m.Read(0xFE00+i))
	}
}

func TestRequestInterruptSetsIFBit(t *testing.T) {
	m := newTestMMU(t, 0x8000)
	m.RequestInterrupt(2)
	assert.Equal(t, uint8(0x04), m.Read(0xFF0F)&0x04)
}
