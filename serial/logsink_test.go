package serial

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mbrannon/gbcore/addr"
)

func TestTransferCompletesAfterFixedCycleCount(t *testing.T) {
	requested := false
	s := NewLogSink(func() { requested = true })

	s.Write(addr.SB, 0x41)
	s.Write(addr.SC, 0x81) // start bit + internal clock

	s.Tick(transferCycles - 1)
	assert.False(t, requested, "transfer should not complete early")

	s.Tick(1)
	assert.True(t, requested)
	assert.Equal(t, uint8(0xFF), s.Read(addr.SB), "no peer connected, SB resets to 0xFF")
	assert.False(t, s.Read(addr.SC)&0x80 != 0, "SC bit 7 clears on completion")
}

func TestTransferRequiresStartAndInternalClockBits(t *testing.T) {
	requested := false
	s := NewLogSink(func() { requested = true })

	s.Write(addr.SB, 0x41)
	s.Write(addr.SC, 0x80) // start bit set but external clock selected
	s.Tick(transferCycles)

	assert.False(t, requested)
}

func TestResetClearsInFlightTransfer(t *testing.T) {
	s := NewLogSink(nil)
	s.Write(addr.SC, 0x81)
	s.Reset()

	assert.Equal(t, uint8(0xFF), s.Read(addr.SB))
	assert.False(t, s.Read(addr.SC)&0x80 != 0)
}
