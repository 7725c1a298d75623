package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimerOverflowReloadsFromTMA(t *testing.T) {
	timer := NewTimer()
	requested := false
	timer.RequestInterrupt = func() { requested = true }

	timer.Write(0xFF07, 0x05) // TAC: enabled, frequency select 01 -> period 16
	timer.Write(0xFF06, 0x42) // TMA
	timer.Write(0xFF05, 0xFF) // TIMA about to overflow

	timer.Tick(16)

	assert.Equal(t, uint8(0x42), timer.Read(0xFF05))
	assert.True(t, requested)
}

func TestTimerDisabledIgnoresTIMA(t *testing.T) {
	timer := NewTimer()
	timer.Write(0xFF07, 0x00) // disabled
	timer.Write(0xFF05, 0x10)

	timer.Tick(10000)

	assert.Equal(t, uint8(0x10), timer.Read(0xFF05))
}

func TestDIVIncrementsEvery256Cycles(t *testing.T) {
	timer := NewTimer()
	timer.Tick(256)
	assert.Equal(t, uint8(1), timer.Read(0xFF04))
}

func TestDIVWriteResetsToZero(t *testing.T) {
	timer := NewTimer()
	timer.Tick(256)
	timer.Write(0xFF04, 0x99) // any write resets DIV regardless of value
	assert.Equal(t, uint8(0), timer.Read(0xFF04))
}

func TestTACFrequencyChangeResetsTIMACounter(t *testing.T) {
	timer := NewTimer()
	timer.Write(0xFF07, 0x04) // enabled, frequency select 00 -> period 1024
	timer.Tick(500)           // partway through the 1024-cycle period

	timer.Write(0xFF07, 0x05) // switch to period 16; counter must reset
	timer.Write(0xFF05, 0xFE)
	timer.Tick(16)

	assert.Equal(t, uint8(0xFF), timer.Read(0xFF05))
}
