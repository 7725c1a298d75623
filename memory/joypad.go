package memory

import "github.com/mbrannon/gbcore/bit"

// Button identifies one of the eight physical Game Boy buttons.
type Button uint8

const (
	ButtonRight Button = iota
	ButtonLeft
	ButtonUp
	ButtonDown
	ButtonA
	ButtonB
	ButtonSelect
	ButtonStart
)

// isDirection reports whether a button belongs to the direction group
// (lower nibble) as opposed to the action group (upper nibble).
func (b Button) isDirection() bool {
	return b <= ButtonDown
}

func (b Button) bitIndex() uint8 {
	switch b {
	case ButtonRight, ButtonA:
		return 0
	case ButtonLeft, ButtonB:
		return 1
	case ButtonUp, ButtonSelect:
		return 2
	default: // ButtonDown, ButtonStart
		return 3
	}
}

// Joypad holds the 8-bit "released" shadow for each button group and the
// group-selection bits last written to P1.
type Joypad struct {
	directions uint8 // bit=1 means released
	actions    uint8
	selection  uint8 // bits 4-5 of P1, as last written

	// RequestInterrupt is invoked when a selected button transitions to pressed.
	RequestInterrupt func()
}

// NewJoypad returns a Joypad with every button in the released state.
func NewJoypad() *Joypad {
	return &Joypad{directions: 0x0F, actions: 0x0F}
}

// Read computes the live P1 register value: bits 4-5 reflect the last
// selection write, bits 0-3 reflect the currently selected group.
func (j *Joypad) Read() uint8 {
	result := uint8(0xC0) | j.selection
	selectDpad := !bit.IsSet(4, j.selection)
	selectButtons := !bit.IsSet(5, j.selection)

	switch {
	case selectDpad && selectButtons:
		result |= j.directions & j.actions
	case selectDpad:
		result |= j.directions
	case selectButtons:
		result |= j.actions
	default:
		result |= 0x0F
	}
	return result
}

// Write updates the group-selection bits (the only writable bits of P1).
func (j *Joypad) Write(value uint8) {
	j.selection = value & 0x30
}

// Press clears the bit for the given button in its group's shadow and, if
// that group is currently selected, requests the joypad interrupt.
func (j *Joypad) Press(b Button) {
	if b.isDirection() {
		j.directions = bit.Reset(b.bitIndex(), j.directions)
		if !bit.IsSet(4, j.selection) && j.RequestInterrupt != nil {
			j.RequestInterrupt()
		}
		return
	}
	j.actions = bit.Reset(b.bitIndex(), j.actions)
	if !bit.IsSet(5, j.selection) && j.RequestInterrupt != nil {
		j.RequestInterrupt()
	}
}

// Release sets the bit for the given button in its group's shadow.
func (j *Joypad) Release(b Button) {
	if b.isDirection() {
		j.directions = bit.Set(b.bitIndex(), j.directions)
		return
	}
	j.actions = bit.Set(b.bitIndex(), j.actions)
}
