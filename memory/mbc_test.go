package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeROM(banks int) []byte {
	rom := make([]byte, banks*romBankSize)
	for b := 0; b < banks; b++ {
		for i := 0; i < romBankSize; i++ {
			rom[b*romBankSize+i] = byte(b)
		}
	}
	return rom
}

func TestMBC1BankSwitch(t *testing.T) {
	rom := makeROM(8) // 128 KiB, enough for 8 banks
	m := newMBC1(rom, 0)

	m.Write(0x2000, 0x05)
	assert.Equal(t, rom[5*romBankSize], m.Read(0x4000))

	m.Write(0x2000, 0x00) // auto-corrects to bank 1
	assert.Equal(t, rom[1*romBankSize], m.Read(0x4000))
}

func TestMBC1RAMEnableGate(t *testing.T) {
	rom := makeROM(2)
	m := newMBC1(rom, 1)

	m.Write(0xA000, 0x42) // RAM disabled by default, write discarded
	assert.Equal(t, uint8(0xFF), m.Read(0xA000))

	m.Write(0x0000, 0x0A) // enable RAM
	m.Write(0xA000, 0x42)
	assert.Equal(t, uint8(0x42), m.Read(0xA000))
}

func TestMBC1RAMBankingMode(t *testing.T) {
	rom := makeROM(2)
	m := newMBC1(rom, 4)
	m.Write(0x0000, 0x0A) // enable RAM
	m.Write(0x6000, 0x01) // RAM banking mode

	m.Write(0x4000, 0x02) // select RAM bank 2
	m.Write(0xA000, 0x77)

	m.Write(0x4000, 0x00) // back to RAM bank 0
	assert.NotEqual(t, uint8(0x77), m.Read(0xA000))

	m.Write(0x4000, 0x02)
	assert.Equal(t, uint8(0x77), m.Read(0xA000))
}

func TestMBC2RAMEnableGatedByAddressBit8(t *testing.T) {
	rom := makeROM(4)
	m := newMBC2(rom)

	m.Write(0x0000, 0x0A) // bit 8 clear -> RAM enable
	m.Write(0xA000, 0x07)
	assert.Equal(t, uint8(0xF7), m.Read(0xA000), "only the low nibble is meaningful, high reads as 1s")

	m.Write(0x0100, 0x03) // bit 8 set -> ROM bank select, not RAM enable
	assert.Equal(t, rom[3*romBankSize], m.Read(0x4000))
}

func TestMBC3RTCStorage(t *testing.T) {
	rom := makeROM(2)
	m := newMBC3(rom, 1)
	m.Write(0x0000, 0x0A) // enable RAM/RTC
	m.Write(0x4000, 0x08) // select RTC seconds register
	m.Write(0xA000, 30)

	assert.Equal(t, uint8(30), m.Read(0xA000))
}

func TestNoMBCDiscardsWrites(t *testing.T) {
	rom := makeROM(1)
	m := newNoMBC(rom)
	m.Write(0x2000, 0xFF)
	assert.Equal(t, rom[0x2000], m.Read(0x2000))
}
