// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Vaktlabs

package thyra2

// Device error mnemonics carried in the data field of an Error PDU.
const (
	ErrNoDef      = "NO_DEF" // command mnemonic not defined
	ErrLogic      = "_LOGIC" // access code not allowed for this command
	ErrRange      = "_RANGE" // data out of range
	ErrSensor     = "ERROR1" // sensor defect or measurement error
	ErrSyntax     = "SYNTAX" // malformed command
	ErrLength     = "LENGTH" // declared length out of bounds
	ErrChecksum   = "_CD_RE" // checksum mismatch reported by the device
	ErrParity     = "_EP_RE" // parity error reported by the device
	ErrUnsupport  = "_UNSUP" // unsupported hardware or option
	ErrSensorsDis = "_SEDIS" // sensor element disabled
)

// Description expands a device error mnemonic for display. Unknown
// mnemonics come back unchanged so raw traffic stays legible.
func Description(mnemonic string) string {
	switch mnemonic {
	case ErrNoDef:
		return "command not defined"
	case ErrLogic:
		return "access code not allowed"
	case ErrRange:
		return "value out of range"
	case ErrSensor:
		return "sensor defect or measurement error"
	case ErrSyntax:
		return "command syntax error"
	case ErrLength:
		return "invalid data length"
	case ErrChecksum:
		return "checksum error"
	case ErrParity:
		return "parity error"
	case ErrUnsupport:
		return "unsupported hardware"
	case ErrSensorsDis:
		return "sensor element disabled"
	default:
		return mnemonic
	}
}
