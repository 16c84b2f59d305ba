// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Vaktlabs

// Package gauge holds the instrument-side state model: the register file a
// gauge exposes, the command interpreter that maps protocol verbs onto it,
// a full virtual-device emulator, and a host-side client speaking the same
// verbs over an injected byte transport.
package gauge

// Pair is two adjacent 16-bit registers read and written together as one
// unsigned 32-bit value, high word first.
type Pair [2]uint16

// Uint32 combines the pair into its 32-bit value.
func (p Pair) Uint32() uint32 {
	return uint32(p[0])<<16 | uint32(p[1])
}

// SetUint32 splits v across the pair, high word first.
func (p *Pair) SetUint32(v uint32) {
	p[0] = uint16(v >> 16)
	p[1] = uint16(v)
}

// Registers is the state of one gauge. The wide values hold the raw
// decimal wire codes (six-digit pressure codes, fixed-point calibration
// codes) as integers; conversion to physical quantities happens only at
// the codec boundary.
type Registers struct {
	Pressure  Pair
	Setpoint1 Pair
	Setpoint2 Pair
	Cal1      Pair
	Cal2      Pair

	PenningState uint16
	PenningSync  uint16
}

// setpoint returns the addressed setpoint pair, or nil for an index the
// instrument does not have.
func (r *Registers) setpoint(index int) *Pair {
	switch index {
	case 1:
		return &r.Setpoint1
	case 2:
		return &r.Setpoint2
	default:
		return nil
	}
}

// calibration returns the addressed calibration pair, or nil.
func (r *Registers) calibration(index int) *Pair {
	switch index {
	case 1:
		return &r.Cal1
	case 2:
		return &r.Cal2
	default:
		return nil
	}
}
