// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Vaktlabs

package thyra1

// Verb identifies a gauge operation. The wire carries a single ASCII
// byte; unrecognized bytes resolve to VerbUnknown and fall through to the
// pass-through echo behavior rather than erroring.
type Verb int

const (
	VerbUnknown Verb = iota
	VerbNone         // empty payload: pass-through echo

	VerbModel            // 'T' read instrument model identifier
	VerbReadPressure     // 'M' read measurement
	VerbWritePressure    // 'm' write measurement register
	VerbReadSetpoint     // 'S' read setpoint by index
	VerbSetpoint         // 's' select setpoint, then write it
	VerbReadCalibration  // 'C' read calibration factor by index
	VerbCalibration      // 'c' select calibration factor, then write it
	VerbReadPenning      // 'I' read Penning on/off state
	VerbWritePenning     // 'i' write Penning on/off state
	VerbReadPenningSync  // 'W' read Penning synchronization
	VerbWritePenningSync // 'w' write Penning synchronization
	VerbAdjust           // 'j' latch/apply atmosphere or zero adjustment
)

// VerbOf resolves a wire byte to its verb variant.
func VerbOf(b byte) Verb {
	switch b {
	case 0:
		return VerbNone
	case 'T':
		return VerbModel
	case 'M':
		return VerbReadPressure
	case 'm':
		return VerbWritePressure
	case 'S':
		return VerbReadSetpoint
	case 's':
		return VerbSetpoint
	case 'C':
		return VerbReadCalibration
	case 'c':
		return VerbCalibration
	case 'I':
		return VerbReadPenning
	case 'i':
		return VerbWritePenning
	case 'W':
		return VerbReadPenningSync
	case 'w':
		return VerbWritePenningSync
	case 'j':
		return VerbAdjust
	default:
		return VerbUnknown
	}
}

// Byte returns the wire byte for a verb (0 for VerbNone and VerbUnknown).
func (v Verb) Byte() byte {
	switch v {
	case VerbModel:
		return 'T'
	case VerbReadPressure:
		return 'M'
	case VerbWritePressure:
		return 'm'
	case VerbReadSetpoint:
		return 'S'
	case VerbSetpoint:
		return 's'
	case VerbReadCalibration:
		return 'C'
	case VerbCalibration:
		return 'c'
	case VerbReadPenning:
		return 'I'
	case VerbWritePenning:
		return 'i'
	case VerbReadPenningSync:
		return 'W'
	case VerbWritePenningSync:
		return 'w'
	case VerbAdjust:
		return 'j'
	default:
		return 0
	}
}

func (v Verb) String() string {
	switch v {
	case VerbNone:
		return "NONE"
	case VerbModel:
		return "MODEL"
	case VerbReadPressure:
		return "READ_PRESSURE"
	case VerbWritePressure:
		return "WRITE_PRESSURE"
	case VerbReadSetpoint:
		return "READ_SETPOINT"
	case VerbSetpoint:
		return "SETPOINT"
	case VerbReadCalibration:
		return "READ_CALIBRATION"
	case VerbCalibration:
		return "CALIBRATION"
	case VerbReadPenning:
		return "READ_PENNING"
	case VerbWritePenning:
		return "WRITE_PENNING"
	case VerbReadPenningSync:
		return "READ_PENNING_SYNC"
	case VerbWritePenningSync:
		return "WRITE_PENNING_SYNC"
	case VerbAdjust:
		return "ADJUST"
	default:
		return "UNKNOWN"
	}
}
