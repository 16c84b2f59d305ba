// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Vaktlabs

package gauge

import (
	"fmt"
	"strconv"

	"github.com/vaktlabs/thyragauge/pkg/thyra"
	"github.com/vaktlabs/thyragauge/pkg/thyra1"
)

// ModelName is the fixed instrument identifier returned for a model query.
const ModelName = "MTM09D"

// Adjustment codes the instrument accepts once the matching latch is set.
// Atmosphere is the code for 1000 mbar; zero is all zeros.
const (
	AtmosphereCode = "100023"
	ZeroCode       = "000000"
)

// latchKind is the select state between a select command and the write it
// arms. Exactly one selection can be armed at a time.
type latchKind int

const (
	latchIdle latchKind = iota
	latchSetpoint
	latchCalibration
	latchAtmosphere
	latchZero
)

type latch struct {
	kind latchKind
	slot int // setpoint or calibration index, 1-based
}

// Interpreter dispatches decoded commands against one register file. It is
// single-threaded by contract: one interpreter serves one command stream.
type Interpreter struct {
	regs  *Registers
	latch latch
}

// NewInterpreter builds an interpreter over regs. The register file is
// shared with the caller; the interpreter never copies it.
func NewInterpreter(regs *Registers) *Interpreter {
	return &Interpreter{regs: regs}
}

// Execute applies one command and returns the reply data. Writes are
// all-or-nothing: semantically invalid data (bad numeric string, unknown
// index) echoes the input back with the registers untouched. Unknown verbs
// also echo, so unrecognized traffic passes through instead of erroring.
func (it *Interpreter) Execute(req thyra1.Request) string {
	data := req.Data()

	switch req.Verb() {
	case thyra1.VerbModel:
		return ModelName

	case thyra1.VerbReadPressure:
		return fmt.Sprintf("%06d", it.regs.Pressure.Uint32())

	case thyra1.VerbWritePressure:
		if code, ok := pressureCode(data); ok {
			it.regs.Pressure.SetUint32(code)
		}
		return data

	case thyra1.VerbReadSetpoint:
		if p := it.regs.setpoint(atoiIndex(data)); p != nil {
			return fmt.Sprintf("%06d", p.Uint32())
		}
		return data

	case thyra1.VerbSetpoint:
		if len(data) == 1 {
			if it.regs.setpoint(atoiIndex(data)) != nil {
				it.latch = latch{kind: latchSetpoint, slot: atoiIndex(data)}
			}
			return data
		}
		if it.latch.kind == latchSetpoint {
			if code, ok := pressureCode(data); ok {
				it.regs.setpoint(it.latch.slot).SetUint32(code)
				it.latch = latch{}
			}
		}
		return data

	case thyra1.VerbReadCalibration:
		if p := it.regs.calibration(atoiIndex(data)); p != nil {
			return fmt.Sprintf("%06d", p.Uint32())
		}
		return data

	case thyra1.VerbCalibration:
		if len(data) == 1 {
			if it.regs.calibration(atoiIndex(data)) != nil {
				it.latch = latch{kind: latchCalibration, slot: atoiIndex(data)}
			}
			return data
		}
		if it.latch.kind == latchCalibration {
			if code, ok := calibrationCode(data); ok {
				it.regs.calibration(it.latch.slot).SetUint32(code)
				it.latch = latch{}
			}
		}
		return data

	case thyra1.VerbReadPenning:
		return fmt.Sprintf("%06d", it.regs.PenningState)

	case thyra1.VerbWritePenning:
		if v, err := strconv.Atoi(data); err == nil && v >= 0 {
			it.regs.PenningState = uint16(v)
		}
		return data

	case thyra1.VerbReadPenningSync:
		return fmt.Sprintf("%06d", it.regs.PenningSync)

	case thyra1.VerbWritePenningSync:
		if v, err := strconv.Atoi(data); err == nil && v >= 0 {
			it.regs.PenningSync = uint16(v)
		}
		return data

	case thyra1.VerbAdjust:
		return it.adjust(data)

	default:
		return data
	}
}

// adjust drives the two-step atmosphere/zero adjustment. A one-digit
// command arms the latch; the follow-up must carry the exact adjustment
// code or the command is rejected with an empty reply.
func (it *Interpreter) adjust(data string) string {
	switch data {
	case "1":
		it.latch = latch{kind: latchAtmosphere}
		return data
	case "0":
		it.latch = latch{kind: latchZero}
		return data
	}

	switch {
	case it.latch.kind == latchAtmosphere && data == AtmosphereCode:
		code, _ := pressureCode(data)
		it.regs.Pressure.SetUint32(code)
	case it.latch.kind == latchZero && data == ZeroCode:
		it.regs.Pressure.SetUint32(0)
	default:
		return ""
	}
	it.latch = latch{}
	return data
}

// pressureCode validates data as a pressure code and returns its integer
// register value.
func pressureCode(data string) (uint32, bool) {
	if _, ok := thyra.DecodePressure(data); !ok {
		return 0, false
	}
	n, err := strconv.Atoi(data)
	if err != nil || n < 0 {
		return 0, false
	}
	return uint32(n), true
}

// calibrationCode validates data as a calibration code and returns its
// integer register value.
func calibrationCode(data string) (uint32, bool) {
	if _, ok := thyra.DecodeCalibration(data); !ok {
		return 0, false
	}
	n, err := strconv.Atoi(data)
	if err != nil || n < 0 {
		return 0, false
	}
	return uint32(n), true
}

// atoiIndex parses a one-digit register index; anything else maps to 0,
// which no register answers to.
func atoiIndex(data string) int {
	if len(data) != 1 || data[0] < '0' || data[0] > '9' {
		return 0
	}
	return int(data[0] - '0')
}
