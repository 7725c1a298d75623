// Package serial implements the register-level behavior of the DMG serial
// port (SB/SC). No physical link partner is modeled; transfers complete
// on a fixed cycle count and log the byte rather than exchanging it with
// anything.
package serial

import (
	"log/slog"

	"github.com/mbrannon/gbcore/addr"
	"github.com/mbrannon/gbcore/bit"
)

// transferCycles is the approximate DMG internal-clock cost of shifting out
// one byte (8 bits at ~8192 Hz relative to a 4.194304 MHz CPU clock).
const transferCycles = 4096

// LogSink is a minimal SerialPort implementation that logs transmitted
// bytes and completes transfers after a fixed cycle countdown.
type LogSink struct {
	sb, sc    uint8
	active    bool
	countdown int
	onComplete func()
	logger    *slog.Logger
	line      []byte
}

// NewLogSink creates a serial device that calls onComplete (expected to
// request the Serial interrupt) whenever a transfer finishes.
func NewLogSink(onComplete func()) *LogSink {
	return &LogSink{
		sb:         0xFF,
		onComplete: onComplete,
		logger:     slog.Default(),
	}
}

func (s *LogSink) Read(address uint16) uint8 {
	switch address {
	case addr.SB:
		return s.sb
	case addr.SC:
		return s.sc | 0x7E // bits 6-1 always read as 1 on DMG
	default:
		return 0xFF
	}
}

func (s *LogSink) Write(address uint16, value uint8) {
	switch address {
	case addr.SB:
		s.sb = value
	case addr.SC:
		s.sc = value
		s.maybeStart()
	}
}

func (s *LogSink) maybeStart() {
	if s.active {
		return
	}
	if !bit.IsSet(7, s.sc) || !bit.IsSet(0, s.sc) {
		return
	}

	b := s.sb
	if b == 0 || b == '\n' || b == '\r' {
		if len(s.line) > 0 {
			s.logger.Debug("serial", "line", string(s.line))
			s.line = s.line[:0]
		}
	} else {
		s.line = append(s.line, b)
	}

	s.active = true
	s.countdown = transferCycles
}

// Tick advances any in-progress transfer by cycles CPU cycles.
func (s *LogSink) Tick(cycles int) {
	if !s.active {
		return
	}
	s.countdown -= cycles
	if s.countdown <= 0 {
		s.complete()
	}
}

func (s *LogSink) complete() {
	s.sb = 0xFF // no peer connected
	s.sc = bit.Reset(7, s.sc)
	s.active = false
	s.countdown = 0
	if s.onComplete != nil {
		s.onComplete()
	}
}

// Reset returns the sink to its power-on state.
func (s *LogSink) Reset() {
	s.sb = 0xFF
	s.sc = 0
	s.active = false
	s.countdown = 0
	s.line = s.line[:0]
}
